package services

import (
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-service/folio_service/internal/domain/entities"
)

var pathDataRe = regexp.MustCompile(`d="(M [^"]+)"`)

func TestRenderStandaloneSVGLayout(t *testing.T) {
	positions := chartPositions(60, 30, 10)
	svg := RenderStandaloneSVG(positions, ChartOptions{IncludeBackground: true})

	assert.True(t, strings.HasPrefix(svg, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))

	// Default 280px chart on a 480x400 canvas
	assert.Contains(t, svg, `<svg width="480" height="400" viewBox="0 0 480 400"`)
	assert.Contains(t, svg, `<rect width="480" height="400" fill="#f8fafc" rx="12"/>`)
	assert.Contains(t, svg, `<g transform="rotate(-90 240 200)">`)
	assert.Contains(t, svg, `stroke-linecap="round"`)
	assert.Contains(t, svg, `>Portfolio</text>`)
	assert.Contains(t, svg, `>3+ Assets</text>`)

	assert.Equal(t, 3, strings.Count(svg, `class="chart-text"`))
	assert.Contains(t, svg, chartPalette[0])
	assert.Contains(t, svg, chartPalette[1])
	assert.Contains(t, svg, chartPalette[2])
}

func TestRenderStandaloneSVGDarkTheme(t *testing.T) {
	svg := RenderStandaloneSVG(chartPositions(100), ChartOptions{IncludeBackground: true, Theme: "dark"})

	assert.Contains(t, svg, `fill="#1f2937"`)
	assert.Contains(t, svg, `stroke="#374151"`)
	assert.NotContains(t, svg, "#f8fafc")
}

func TestRenderStandaloneSVGNoBackground(t *testing.T) {
	svg := RenderStandaloneSVG(chartPositions(100), ChartOptions{})
	assert.NotContains(t, svg, "<rect")
}

func TestRenderStandaloneSVGLabelThreshold(t *testing.T) {
	// Only segments above 3% get an outer label
	positions := chartPositions(95, 3, 2)
	svg := RenderStandaloneSVG(positions, ChartOptions{})

	assert.Contains(t, svg, ">T0</text>")
	assert.NotContains(t, svg, ">T1</text>")
	assert.NotContains(t, svg, ">T2</text>")
}

func TestRenderStandaloneSVGEmptyState(t *testing.T) {
	svg := RenderStandaloneSVG(nil, ChartOptions{})

	assert.Contains(t, svg, ">No positions</text>")
	assert.Contains(t, svg, `r="120"`)
	assert.NotContains(t, svg, "<path")
}

func TestRenderInteractiveSVGLayout(t *testing.T) {
	positions := chartPositions(60, 30, 10)
	svg := RenderInteractiveSVG(positions, ChartOptions{})

	assert.Contains(t, svg, `<svg width="240" height="240"`)
	// Hover widens the stroke by four pixels
	assert.Contains(t, svg, "stroke-width: 44;")
	assert.Contains(t, svg, `id="segment-0"`)
	assert.Contains(t, svg, `id="center-0"`)
	assert.Contains(t, svg, `id="center-default"`)
	assert.Contains(t, svg, ">3 Assets</text>")
	assert.Contains(t, svg, "<title>T0 60.0% ($600.00)</title>")
}

func TestRenderInteractiveSVGEmptyState(t *testing.T) {
	svg := RenderInteractiveSVG(nil, ChartOptions{})
	assert.Contains(t, svg, ">No positions</text>")
	assert.NotContains(t, svg, "<path")
}

func TestRenderTargetsShareGeometry(t *testing.T) {
	// Same positions at matching dimensions produce identical arc data
	positions := chartPositions(45.5, 30.25, 24.25)
	opts := ChartOptions{Size: 240, StrokeWidth: 40}

	standalone := RenderStandaloneSVG(positions, opts)
	interactive := RenderInteractiveSVG(positions, opts)

	// The standalone canvas is offset, so compare angles via a common center
	segments := BuildSegments(positions)
	radius := float64(240-40) / 2

	for _, segment := range segments {
		want := arcPath(120, 120, radius, segment.StartAngle, segment.EndAngle)
		assert.Contains(t, interactive, want)
	}

	standalonePaths := pathDataRe.FindAllString(standalone, -1)
	interactivePaths := pathDataRe.FindAllString(interactive, -1)
	require.Len(t, standalonePaths, len(segments))
	require.Len(t, interactivePaths, len(segments))
}

func TestRenderEscapesMarkup(t *testing.T) {
	positions := []entities.Position{{
		Symbol:     "A<B&C",
		Name:       "Weird <Token>",
		Value:      100,
		Percentage: 100,
	}}

	svg := RenderStandaloneSVG(positions, ChartOptions{})
	assert.Contains(t, svg, "A&lt;B&amp;C")
	assert.NotContains(t, svg, "A<B&C")
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "short", truncateName("short", 20))
	assert.Equal(t, "a very long token...", truncateName("a very long token name indeed", 20))
	assert.Len(t, truncateName("a very long token name indeed", 20), 20)

	// Multibyte runes must never be split at the cut point
	truncated := truncateName("Super Mega Tokené Deluxe Edition", 20)
	assert.True(t, utf8.ValidString(truncated), truncated)
	assert.Equal(t, 20, utf8.RuneCountInString(truncated))
	assert.Equal(t, "Super Mega Tokené...", truncated)
}

func TestRenderInteractiveSVGMultibyteName(t *testing.T) {
	positions := []entities.Position{{
		Symbol:     "TKÉ",
		Name:       "Süper Mega Tokené Deluxe Edition",
		Value:      100,
		Percentage: 100,
	}}

	svg := RenderInteractiveSVG(positions, ChartOptions{})
	assert.True(t, utf8.ValidString(svg))
	assert.NotContains(t, svg, "�")
}

func TestRenderClampsRadiusForOversizedStroke(t *testing.T) {
	positions := chartPositions(60, 40)
	opts := ChartOptions{Size: 10, StrokeWidth: 45}

	for _, svg := range []string{
		RenderStandaloneSVG(positions, opts),
		RenderInteractiveSVG(positions, opts),
	} {
		assert.NotContains(t, svg, `r="-`)
		assert.NotContains(t, svg, "A -")
	}
}
