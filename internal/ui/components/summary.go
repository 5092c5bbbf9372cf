package components

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/windsurf-analytics-exporter/internal/models"
	"github.com/j-veylop/windsurf-analytics-exporter/internal/services/aggregate"
	"github.com/j-veylop/windsurf-analytics-exporter/internal/ui/styles"
)

// SummaryData is what the end-of-run summary shows.
type SummaryData struct {
	OutputPath    string
	Records       []models.Record
	Trend         []aggregate.DayPoint
	FailedMetrics int
	// TopUsers caps the user table; zero means 10.
	TopUsers int
	Width    int
}

// Overview are team-wide totals over all records.
type Overview struct {
	AcceptanceRate string
	Credits        string
	Tools          map[string]int64
	LinesSuggested int64
	LinesAccepted  int64
	MessagesSent   int64
	PromptsCents   int64
	Cascades       int
}

// Summarize sums the records of a run.
func Summarize(records []models.Record) Overview {
	o := Overview{Tools: make(map[string]int64)}
	for _, r := range records {
		o.LinesSuggested += r.TotalLinesSuggested
		o.LinesAccepted += r.TotalLinesAccepted
		o.MessagesSent += r.TotalMessagesSent
		o.PromptsCents += r.TotalPromptsUsedCents
		o.Cascades += r.TotalUniqueCascades
		for tool, count := range r.Tools {
			o.Tools[strings.ToLower(tool)] += count
		}
	}
	o.AcceptanceRate = aggregate.AcceptanceRate(o.LinesAccepted, o.LinesSuggested)
	o.Credits = aggregate.Credits(o.PromptsCents)
	return o
}

// RenderSummary renders the overview card, the busiest users and the daily
// trend chart.
func RenderSummary(data SummaryData) string {
	width := data.Width
	if width <= 0 {
		width = 80
	}

	o := Summarize(data.Records)

	var sections []string
	sections = append(sections, styles.TitleStyle.Render("Windsurf Analytics Export"))
	sections = append(sections, renderOverview(data, o))

	if len(data.Records) > 0 {
		sections = append(sections,
			styles.SubTitleStyle.Render("Top users by accepted lines"),
			renderUserTable(data.Records, data.TopUsers),
		)
	}

	if len(o.Tools) > 0 {
		sections = append(sections,
			styles.SubTitleStyle.Render("Tool usage"),
			renderTools(o.Tools),
		)
	}

	sections = append(sections,
		styles.SubTitleStyle.Render("Daily activity"),
		RenderTrendChart(data.Trend, width-12, 8),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderOverview(data SummaryData, o Overview) string {
	lines := []string{
		fmt.Sprintf("Users exported:   %d", len(data.Records)),
		fmt.Sprintf("Lines accepted:   %d of %d (%s)", o.LinesAccepted, o.LinesSuggested, rateText(o.AcceptanceRate)),
		fmt.Sprintf("Messages sent:    %d", o.MessagesSent),
		fmt.Sprintf("Credits used:     %s", o.Credits),
		fmt.Sprintf("Cascade sessions: %d", o.Cascades),
	}
	if data.FailedMetrics > 0 {
		lines = append(lines, styles.WarningTextStyle.Render(
			fmt.Sprintf("Metrics failed:   %d (exported with zero usage)", data.FailedMetrics)))
	}
	if data.OutputPath != "" && len(data.Records) > 0 {
		lines = append(lines, styles.SuccessTextStyle.Render("Written to:       "+data.OutputPath))
	}
	return styles.CardStyle.Render(strings.Join(lines, "\n"))
}

func renderUserTable(records []models.Record, limit int) string {
	if limit <= 0 {
		limit = 10
	}

	sorted := make([]models.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalLinesAccepted > sorted[j].TotalLinesAccepted
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	rows := make([][]string, 0, len(sorted))
	for _, r := range sorted {
		rows = append(rows, []string{
			ansi.Truncate(r.Email, 36, "…"),
			strconv.FormatInt(r.TotalLinesAccepted, 10),
			rateText(r.AcceptanceRate),
			strconv.FormatInt(r.TotalMessagesSent, 10),
			r.TotalPromptsUsedCredits,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Subtle)).
		Headers("EMAIL", "ACCEPTED", "RATE", "MESSAGES", "CREDITS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.TableHeaderStyle
			case col == 0:
				return styles.TableCellStyle
			default:
				return styles.TableNumberStyle
			}
		})

	return t.String()
}

func renderTools(tools map[string]int64) string {
	names := make([]string, 0, len(tools))
	for name := range tools {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if tools[names[i]] != tools[names[j]] {
			return tools[names[i]] > tools[names[j]]
		}
		return names[i] < names[j]
	})

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s %d", name, tools[name]))
	}
	return styles.HelpStyle.Render(strings.Join(parts, "  "))
}

// rateText colors an acceptance rate string such as "40.00%".
func rateText(rate string) string {
	percent, err := strconv.ParseFloat(strings.TrimSuffix(rate, "%"), 64)
	if err != nil {
		return rate
	}
	return styles.GetRateStyle(percent).Render(rate)
}
