package services

import (
	"fmt"
	"strings"

	"github.com/folio-service/folio_service/internal/domain/entities"
	"github.com/folio-service/folio_service/pkg/format"
)

// Default dimensions per render target
const (
	DefaultStandaloneSize        = 280
	DefaultStandaloneStrokeWidth = 45
	DefaultInteractiveSize       = 240
	DefaultInteractiveStroke     = 40

	hoverStrokeWidening = 4
	labelOffset         = 25
	maxCenterNameLen    = 20
)

// ChartOptions parameterizes a single chart render
type ChartOptions struct {
	Size              int
	StrokeWidth       int
	IncludeBackground bool
	Theme             string
}

type themeColors struct {
	background      string
	chartBackground string
	text            string
	textSecondary   string
}

func getThemeColors(theme string) themeColors {
	if theme == "dark" {
		return themeColors{
			background:      "#1f2937",
			chartBackground: "#374151",
			text:            "#f9fafb",
			textSecondary:   "#9ca3af",
		}
	}
	return themeColors{
		background:      "#f8fafc",
		chartBackground: "#e2e8f0",
		text:            "#1e293b",
		textSecondary:   "#64748b",
	}
}

// RenderStandaloneSVG produces a complete self-contained vector document
// for the given positions: the donut ring, outer symbol labels for
// segments above the visibility threshold, and an asset-count center.
// An empty position list renders the explicit no-positions state.
func RenderStandaloneSVG(positions []entities.Position, opts ChartOptions) string {
	size := opts.Size
	if size <= 0 {
		size = DefaultStandaloneSize
	}
	strokeWidth := opts.StrokeWidth
	if strokeWidth <= 0 {
		strokeWidth = DefaultStandaloneStrokeWidth
	}
	theme := opts.Theme
	if theme == "" {
		theme = "light"
	}

	if len(positions) == 0 {
		return renderEmptySVG(size, theme)
	}

	radius := ringRadius(size, strokeWidth)
	segments := BuildSegments(positions)

	svgWidth := size + 200
	svgHeight := size + 120
	svgCenter := float64(svgWidth) / 2
	chartCenterY := float64(svgHeight) / 2

	colors := getThemeColors(theme)

	var b strings.Builder
	fmt.Fprintf(&b, `<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">
  <defs>
    <style>
      .chart-text {
        font-family: system-ui, -apple-system, sans-serif;
        font-weight: 600;
        font-size: 11px;
        text-anchor: middle;
        dominant-baseline: middle;
        fill: %s;
      }
      .center-text-small {
        font-family: system-ui, -apple-system, sans-serif;
        font-weight: 500;
        font-size: 10px;
        text-anchor: middle;
        dominant-baseline: middle;
        fill: %s;
        text-transform: uppercase;
        letter-spacing: 0.05em;
      }
      .center-text-large {
        font-family: system-ui, -apple-system, sans-serif;
        font-weight: 700;
        font-size: 16px;
        text-anchor: middle;
        dominant-baseline: middle;
        fill: %s;
      }
    </style>
  </defs>
`, svgWidth, svgHeight, svgWidth, svgHeight, colors.text, colors.textSecondary, colors.text)

	if opts.IncludeBackground {
		fmt.Fprintf(&b, "  <rect width=\"%d\" height=\"%d\" fill=\"%s\" rx=\"12\"/>\n",
			svgWidth, svgHeight, colors.background)
	}

	fmt.Fprintf(&b, "  <circle cx=\"%s\" cy=\"%s\" r=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"%d\"/>\n",
		svgNum(svgCenter), svgNum(chartCenterY), svgNum(radius), colors.chartBackground, strokeWidth)

	fmt.Fprintf(&b, "  <g transform=\"rotate(-90 %s %s)\">\n", svgNum(svgCenter), svgNum(chartCenterY))
	for _, segment := range segments {
		path := arcPath(svgCenter, chartCenterY, radius, segment.StartAngle, segment.EndAngle)
		fmt.Fprintf(&b, "    <path d=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"%d\" stroke-linecap=\"round\"/>\n",
			path, segment.Color, strokeWidth)
	}
	b.WriteString("  </g>\n")

	for _, segment := range segments {
		if segment.Position.Percentage <= LabelVisibilityThreshold {
			continue
		}
		midAngle := (segment.StartAngle + segment.EndAngle) / 2
		labelRadius := radius + float64(strokeWidth) + labelOffset
		labelX, labelY := polarToCartesian(svgCenter, chartCenterY, labelRadius, midAngle)
		fmt.Fprintf(&b, "    <text x=\"%s\" y=\"%s\" class=\"chart-text\">%s</text>\n",
			svgNum(labelX), svgNum(labelY), escapeText(segment.Position.Symbol))
	}

	fmt.Fprintf(&b, "  <text x=\"%s\" y=\"%s\" class=\"center-text-small\">Portfolio</text>\n",
		svgNum(svgCenter), svgNum(chartCenterY-8))
	fmt.Fprintf(&b, "  <text x=\"%s\" y=\"%s\" class=\"center-text-large\">%d+ Assets</text>\n",
		svgNum(svgCenter), svgNum(chartCenterY+8), len(positions))

	b.WriteString("</svg>")
	return b.String()
}

func renderEmptySVG(size int, theme string) string {
	svgWidth := size + 200
	svgHeight := size + 120
	svgCenter := float64(svgWidth) / 2
	chartCenterY := float64(svgHeight) / 2

	colors := getThemeColors(theme)

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">
  <defs>
    <style>
      .empty-text {
        font-family: system-ui, -apple-system, sans-serif;
        font-weight: 400;
        font-size: 12px;
        text-anchor: middle;
        dominant-baseline: middle;
        fill: %s;
      }
    </style>
  </defs>
  <rect width="%d" height="%d" fill="%s" rx="12"/>
  <circle cx="%s" cy="%s" r="%s" fill="%s" />
  <text x="%s" y="%s" class="empty-text">No positions</text>
</svg>`,
		svgWidth, svgHeight, svgWidth, svgHeight,
		colors.textSecondary,
		svgWidth, svgHeight, colors.background,
		svgNum(svgCenter), svgNum(chartCenterY), svgNum(float64(size-40)/2), colors.chartBackground,
		svgNum(svgCenter), svgNum(chartCenterY))
}

// RenderInteractiveSVG produces the inline chart variant. Hovering a
// segment widens its stroke and swaps the center content from the
// aggregate summary to that segment's symbol, percentage, and name.
// The hover behavior is driven entirely by CSS within the document, so
// the arcs stay geometrically identical to the standalone render.
func RenderInteractiveSVG(positions []entities.Position, opts ChartOptions) string {
	size := opts.Size
	if size <= 0 {
		size = DefaultInteractiveSize
	}
	strokeWidth := opts.StrokeWidth
	if strokeWidth <= 0 {
		strokeWidth = DefaultInteractiveStroke
	}
	theme := opts.Theme
	if theme == "" {
		theme = "light"
	}

	colors := getThemeColors(theme)
	center := float64(size) / 2

	if len(positions) == 0 {
		return fmt.Sprintf(`<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">
  <circle cx="%s" cy="%s" r="%s" fill="%s"/>
  <text x="%s" y="%s" text-anchor="middle" dominant-baseline="middle" font-family="system-ui, sans-serif" font-size="12" fill="%s">No positions</text>
</svg>`,
			size, size, size, size,
			svgNum(center), svgNum(center), svgNum(float64(size)/2), colors.chartBackground,
			svgNum(center), svgNum(center), colors.textSecondary)
	}

	radius := ringRadius(size, strokeWidth)
	segments := BuildSegments(positions)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">
  <defs>
    <style>
      .segment {
        transition: stroke-width 0.2s;
        cursor: pointer;
      }
      .segment:hover {
        stroke-width: %d;
      }
      .center-label {
        opacity: 0;
        pointer-events: none;
      }
      #center-default {
        opacity: 1;
      }
      text {
        font-family: system-ui, -apple-system, sans-serif;
        text-anchor: middle;
        dominant-baseline: middle;
      }
`, size, size, size, size, strokeWidth+hoverStrokeWidening)

	for i := range segments {
		fmt.Fprintf(&b, "      #segment-%d:hover ~ #center-%d { opacity: 1; }\n", i, i)
		fmt.Fprintf(&b, "      #segment-%d:hover ~ #center-default { opacity: 0; }\n", i)
	}
	b.WriteString("    </style>\n  </defs>\n")

	fmt.Fprintf(&b, "  <circle cx=\"%s\" cy=\"%s\" r=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"%d\"/>\n",
		svgNum(center), svgNum(center), svgNum(radius), colors.chartBackground, strokeWidth)

	rotate := fmt.Sprintf("rotate(-90 %s %s)", svgNum(center), svgNum(center))
	for i, segment := range segments {
		path := arcPath(center, center, radius, segment.StartAngle, segment.EndAngle)
		fmt.Fprintf(&b, "  <path id=\"segment-%d\" class=\"segment\" transform=\"%s\" d=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"%d\" stroke-linecap=\"round\">\n",
			i, rotate, path, segment.Color, strokeWidth)
		fmt.Fprintf(&b, "    <title>%s %s (%s)</title>\n",
			escapeText(segment.Position.Symbol),
			format.Percentage(segment.Position.Percentage),
			format.Value(segment.Position.Value))
		b.WriteString("  </path>\n")
	}

	for i, segment := range segments {
		fmt.Fprintf(&b, "  <g id=\"center-%d\" class=\"center-label\">\n", i)
		fmt.Fprintf(&b, "    <text x=\"%s\" y=\"%s\" font-size=\"13\" font-weight=\"500\" fill=\"%s\">%s</text>\n",
			svgNum(center), svgNum(center-20), colors.textSecondary, escapeText(segment.Position.Symbol))
		fmt.Fprintf(&b, "    <text x=\"%s\" y=\"%s\" font-size=\"18\" font-weight=\"700\" fill=\"%s\">%s</text>\n",
			svgNum(center), svgNum(center), colors.text, format.Percentage(segment.Position.Percentage))
		fmt.Fprintf(&b, "    <text x=\"%s\" y=\"%s\" font-size=\"11\" fill=\"%s\">%s</text>\n",
			svgNum(center), svgNum(center+18), colors.textSecondary, escapeText(truncateName(segment.Position.Name, maxCenterNameLen)))
		b.WriteString("  </g>\n")
	}

	fmt.Fprintf(&b, "  <g id=\"center-default\" class=\"center-label\">\n")
	fmt.Fprintf(&b, "    <text x=\"%s\" y=\"%s\" font-size=\"11\" font-weight=\"500\" fill=\"%s\" style=\"text-transform: uppercase; letter-spacing: 0.05em;\">Portfolio</text>\n",
		svgNum(center), svgNum(center-10), colors.textSecondary)
	fmt.Fprintf(&b, "    <text x=\"%s\" y=\"%s\" font-size=\"18\" font-weight=\"700\" fill=\"%s\">%d Assets</text>\n",
		svgNum(center), svgNum(center+10), colors.text, len(positions))
	b.WriteString("  </g>\n</svg>")

	return b.String()
}

// ringRadius computes the donut ring radius, clamped to stay positive
// when the stroke width meets or exceeds the chart size.
func ringRadius(size, strokeWidth int) float64 {
	radius := float64(size-strokeWidth) / 2
	if radius < 1 {
		return 1
	}
	return radius
}

// truncateName shortens a display name to at most max runes. Slicing by
// runes keeps multibyte names valid UTF-8.
func truncateName(name string, max int) string {
	runes := []rune(name)
	if len(runes) <= max {
		return name
	}
	return string(runes[:max-3]) + "..."
}

// escapeText escapes the XML special characters in text content
func escapeText(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
