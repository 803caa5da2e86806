package momentum

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KaavyaOfficial/momentum-fc/internal/models/domain"
)

// Chart presets. The full chart renders on the match dashboard, the
// sparkline on list cards.
const (
	ChartWidth   = 600
	ChartHeight  = 200
	ChartPadding = 20
	ChartColor   = "#a855f7"

	SparklineWidth   = 120
	SparklineHeight  = 40
	SparklinePadding = 5
	SparklineColor   = "#22c55e"
)

// ChartSVG renders the snapshot history as a self-contained SVG polyline
// with a dashed zero-reference line and a horizontal gradient stroke.
// Pressure 0 maps to the vertical center, +-100 to the padded extremes.
// Empty input renders nothing.
func ChartSVG(snapshots []*domain.Snapshot, width, height, padding int, color string) string {
	if len(snapshots) == 0 {
		return ""
	}

	w := float64(width)
	h := float64(height)
	pad := float64(padding)

	span := float64(len(snapshots) - 1)
	if span < 1 {
		span = 1
	}

	points := make([]string, 0, len(snapshots))
	for i, s := range snapshots {
		x := pad + float64(i)*(w-2*pad)/span
		y := h/2 - s.PressureIndex*(h/2-pad)/100
		points = append(points, formatCoord(x)+","+formatCoord(y))
	}
	polyline := strings.Join(points, " ")

	gradID := "grad-" + strings.TrimPrefix(color, "#")

	var b strings.Builder
	fmt.Fprintf(&b, `<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`, width, height, width, height)
	b.WriteString(`<defs>`)
	fmt.Fprintf(&b, `<linearGradient id="%s" x1="0%%" y1="0%%" x2="100%%" y2="0%%">`, gradID)
	fmt.Fprintf(&b, `<stop offset="0%%" style="stop-color:%s;stop-opacity:0.2" />`, color)
	fmt.Fprintf(&b, `<stop offset="100%%" style="stop-color:%s;stop-opacity:1" />`, color)
	b.WriteString(`</linearGradient>`)
	b.WriteString(`</defs>`)
	fmt.Fprintf(&b, `<line x1="%d" y1="%s" x2="%d" y2="%s" stroke="rgba(255,255,255,0.1)" stroke-dasharray="4"/>`,
		padding, formatCoord(h/2), width-padding, formatCoord(h/2))
	fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="url(#%s)" stroke-width="3" stroke-linejoin="round" />`, polyline, gradID)
	b.WriteString(`</svg>`)

	return b.String()
}

// Chart renders the full dashboard chart.
func Chart(snapshots []*domain.Snapshot) string {
	return ChartSVG(snapshots, ChartWidth, ChartHeight, ChartPadding, ChartColor)
}

// Sparkline renders the compact list-card variant.
func Sparkline(snapshots []*domain.Snapshot) string {
	return ChartSVG(snapshots, SparklineWidth, SparklineHeight, SparklinePadding, SparklineColor)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
