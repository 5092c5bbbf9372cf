// Package components provides reusable console rendering components.
package components

import (
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/windsurf-analytics-exporter/internal/services/aggregate"
	"github.com/j-veylop/windsurf-analytics-exporter/internal/ui/styles"
)

// RenderTrendChart plots accepted lines and messages sent per day.
func RenderTrendChart(points []aggregate.DayPoint, width, height int) string {
	if len(points) == 0 {
		return styles.HelpStyle.Render("No daily data available")
	}

	accepted := make([]float64, len(points))
	messages := make([]float64, len(points))
	for i, p := range points {
		accepted[i] = float64(p.LinesAccepted)
		messages[i] = float64(p.MessagesSent)
	}

	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	caption := "lines accepted (green) / messages sent (blue), " +
		points[0].Day + " to " + points[len(points)-1].Day

	// asciigraph needs at least two samples to draw a line.
	if len(points) == 1 {
		accepted = append(accepted, accepted[0])
		messages = append(messages, messages[0])
	}

	return asciigraph.PlotMany([][]float64{accepted, messages},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(
			asciigraph.Green,
			asciigraph.Blue,
		),
	)
}
