package services

import (
	"fmt"
	"math"
	"strconv"

	"github.com/folio-service/folio_service/internal/domain/entities"
)

// LabelVisibilityThreshold is the minimum segment percentage that gets a
// text label. Fixed, not configurable.
const LabelVisibilityThreshold = 3.0

// chartPalette is the qualitative palette for segment colors, ordered.
// The last entry is the muted gray used by the "Others" aggregate when
// it lands in position seven.
var chartPalette = []string{
	"#3B82F6", // blue
	"#10B981", // green
	"#F59E0B", // yellow
	"#EF4444", // red
	"#8B5CF6", // purple
	"#06B6D4", // cyan
	"#6B7280", // gray
}

// SegmentColor returns the palette color for the segment at the given
// index. Indexes beyond the palette wrap around cyclically.
func SegmentColor(index int) string {
	return chartPalette[index%len(chartPalette)]
}

// PaletteSize returns the number of distinct segment colors
func PaletteSize() int {
	return len(chartPalette)
}

// BuildSegments converts an ordered position list into contiguous chart
// segments. Each percentage maps linearly to degrees (100% = 360), with
// a running accumulator starting at 0. Input order is preserved.
func BuildSegments(positions []entities.Position) []entities.ChartSegment {
	segments := make([]entities.ChartSegment, 0, len(positions))

	currentAngle := 0.0
	for i, pos := range positions {
		startAngle := currentAngle
		endAngle := currentAngle + pos.Percentage*3.6
		currentAngle = endAngle

		segments = append(segments, entities.ChartSegment{
			Position:   pos,
			StartAngle: startAngle,
			EndAngle:   endAngle,
			Color:      SegmentColor(i),
		})
	}

	return segments
}

// polarToCartesian projects a polar coordinate into the chart plane.
// 0 degrees maps to the top of the circle.
func polarToCartesian(centerX, centerY, radius, angleInDegrees float64) (x, y float64) {
	angleInRadians := (angleInDegrees - 90) * math.Pi / 180.0
	return centerX + radius*math.Cos(angleInRadians), centerY + radius*math.Sin(angleInRadians)
}

// arcPath builds the SVG path data for one donut segment. The sweep flag
// is always 0; the large-arc flag is set for spans over 180 degrees.
func arcPath(cx, cy, radius, startAngle, endAngle float64) string {
	startX, startY := polarToCartesian(cx, cy, radius, endAngle)
	endX, endY := polarToCartesian(cx, cy, radius, startAngle)

	largeArcFlag := "0"
	if endAngle-startAngle > 180 {
		largeArcFlag = "1"
	}

	return fmt.Sprintf("M %s %s A %s %s 0 %s 0 %s %s",
		svgNum(startX), svgNum(startY),
		svgNum(radius), svgNum(radius),
		largeArcFlag,
		svgNum(endX), svgNum(endY))
}

// svgNum renders a coordinate with the shortest decimal form that
// round-trips, so whole numbers stay free of trailing zeros.
func svgNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
