// Package styles defines the visual styling for console output.
package styles

import "github.com/charmbracelet/lipgloss"

// Color definitions for the exporter theme.
var (
	// Primary colors
	Primary   = lipgloss.Color("39")  // Windsurf blue
	Secondary = lipgloss.Color("63")  // Purple
	Subtle    = lipgloss.Color("240") // Gray

	// Status colors
	Success = lipgloss.Color("42")  // Green
	Error   = lipgloss.Color("196") // Red
	Warning = lipgloss.Color("220") // Yellow

	// Text colors
	TextPrimary   = lipgloss.Color("252")
	TextSecondary = lipgloss.Color("245")
	TextMuted     = lipgloss.Color("240")
)

// TitleStyle is used for main headings.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	MarginBottom(1)

// SubTitleStyle is used for section headings.
var SubTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Secondary)

// CardStyle creates a bordered card container.
var CardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Subtle).
	Padding(0, 1)

// ProgressLabelStyle styles progress bar labels.
var ProgressLabelStyle = lipgloss.NewStyle().
	Foreground(TextSecondary)

// ProgressCountStyle styles the i/total counter next to a progress bar.
var ProgressCountStyle = lipgloss.NewStyle().
	Foreground(TextPrimary).
	Align(lipgloss.Right)

// HelpStyle is the base style for secondary text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(TextMuted)

// TableHeaderStyle styles table headers.
var TableHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	Padding(0, 1)

// TableCellStyle styles table cells.
var TableCellStyle = lipgloss.NewStyle().
	Padding(0, 1)

// TableNumberStyle right-aligns numeric cells.
var TableNumberStyle = TableCellStyle.
	Align(lipgloss.Right)

// Acceptance rate styles.
var (
	RateHighStyle   = lipgloss.NewStyle().Foreground(Success)
	RateMediumStyle = lipgloss.NewStyle().Foreground(Warning)
	RateLowStyle    = lipgloss.NewStyle().Foreground(Error)
)

// ErrorTextStyle for error messages.
var ErrorTextStyle = lipgloss.NewStyle().
	Foreground(Error)

// SuccessTextStyle for success messages.
var SuccessTextStyle = lipgloss.NewStyle().
	Foreground(Success)

// WarningTextStyle for warning messages.
var WarningTextStyle = lipgloss.NewStyle().
	Foreground(Warning)

// GetRateStyle returns the style for an acceptance rate percentage.
func GetRateStyle(percent float64) lipgloss.Style {
	switch {
	case percent >= 40:
		return RateHighStyle
	case percent >= 20:
		return RateMediumStyle
	default:
		return RateLowStyle
	}
}
