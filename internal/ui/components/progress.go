package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/windsurf-analytics-exporter/internal/ui/styles"
)

// ProgressBar renders a static progress line for sequential work.
type ProgressBar struct {
	bar        progress.Model
	labelWidth int
}

// NewProgressBar creates a progress bar of the given width.
func NewProgressBar(width int) ProgressBar {
	if width < 10 {
		width = 10
	}
	return ProgressBar{
		bar: progress.New(
			progress.WithScaledGradient("#5A56E0", "#51cf66"),
			progress.WithWidth(width),
			progress.WithoutPercentage(),
		),
		labelWidth: 32,
	}
}

// Line renders the bar for done of total, followed by a counter and label.
func (p ProgressBar) Line(done, total int, label string) string {
	percent := 0.0
	if total > 0 {
		percent = float64(done) / float64(total)
	}
	if percent > 1 {
		percent = 1
	}

	counter := styles.ProgressCountStyle.Render(fmt.Sprintf("%d/%d", done, total))
	text := styles.ProgressLabelStyle.Render(ansi.Truncate(label, p.labelWidth, "…"))

	return p.bar.ViewAs(percent) + " " + counter + " " + text
}
