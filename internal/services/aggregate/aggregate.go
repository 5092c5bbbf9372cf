// Package aggregate turns a roster user and that user's cascade analytics into
// one report record.
package aggregate

import (
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/j-veylop/windsurf-analytics-exporter/internal/models"
)

// ZeroAcceptanceRate is reported when no lines were suggested.
const ZeroAcceptanceRate = "0%"

var hundred = decimal.NewFromInt(100)

// DayLines holds the line counts of one day.
type DayLines struct {
	Suggested int64
	Accepted  int64
}

// DayRuns holds the run counts of one day.
type DayRuns struct {
	Cascades     map[string]struct{}
	MessagesSent int64
	PromptsUsed  int64
}

// Breakdown is a metrics response grouped by day and tool.
type Breakdown struct {
	Lines map[string]*DayLines
	Runs  map[string]*DayRuns
	Tools map[string]int64
}

// Totals are whole-run sums over every day bucket of a Breakdown.
type Totals struct {
	LinesSuggested int64
	LinesAccepted  int64
	MessagesSent   int64
	PromptsUsed    int64
	UniqueCascades int
}

// NewBreakdown groups the result sets of resp. Each result entry is classified
// by the first category it carries, in lines, runs, tool usage order.
func NewBreakdown(resp *models.MetricsResponse) Breakdown {
	b := Breakdown{
		Lines: make(map[string]*DayLines),
		Runs:  make(map[string]*DayRuns),
		Tools: make(map[string]int64),
	}
	if resp == nil {
		return b
	}

	for _, result := range resp.QueryResults {
		switch {
		case result.CascadeLines != nil:
			for _, stat := range result.CascadeLines.CascadeLines {
				day := b.lineDay(stat.Day)
				day.Suggested += int64(stat.LinesSuggested)
				day.Accepted += int64(stat.LinesAccepted)
			}
		case result.CascadeRuns != nil:
			for _, stat := range result.CascadeRuns.CascadeRuns {
				day := b.runDay(stat.Day)
				day.MessagesSent += int64(stat.MessagesSent)
				day.PromptsUsed += int64(stat.PromptsUsed)
				if stat.CascadeID != "" {
					day.Cascades[stat.CascadeID] = struct{}{}
				}
			}
		case result.CascadeToolUsage != nil:
			for _, stat := range result.CascadeToolUsage.CascadeToolUsage {
				b.Tools[stat.Tool] += int64(stat.Count)
			}
		}
	}

	return b
}

func (b Breakdown) lineDay(day string) *DayLines {
	d, ok := b.Lines[day]
	if !ok {
		d = &DayLines{}
		b.Lines[day] = d
	}
	return d
}

func (b Breakdown) runDay(day string) *DayRuns {
	d, ok := b.Runs[day]
	if !ok {
		d = &DayRuns{Cascades: make(map[string]struct{})}
		b.Runs[day] = d
	}
	return d
}

// Totals sums every day bucket. A cascade seen on several days counts once.
func (b Breakdown) Totals() Totals {
	var t Totals
	for _, d := range b.Lines {
		t.LinesSuggested += d.Suggested
		t.LinesAccepted += d.Accepted
	}

	cascades := make(map[string]struct{})
	for _, d := range b.Runs {
		t.MessagesSent += d.MessagesSent
		t.PromptsUsed += d.PromptsUsed
		for id := range d.Cascades {
			cascades[id] = struct{}{}
		}
	}
	t.UniqueCascades = len(cascades)

	return t
}

// Days returns every day seen in either line or run stats, sorted.
func (b Breakdown) Days() []string {
	days := lo.Union(lo.Keys(b.Lines), lo.Keys(b.Runs))
	sort.Strings(days)
	return days
}

// AcceptanceRate formats accepted/suggested as a percentage with two decimals.
func AcceptanceRate(accepted, suggested int64) string {
	if suggested == 0 {
		return ZeroAcceptanceRate
	}
	rate := decimal.NewFromInt(accepted).Mul(hundred).Div(decimal.NewFromInt(suggested))
	return rate.StringFixed(2) + "%"
}

// Credits converts prompt usage, reported in hundredths of a credit, to credits.
func Credits(promptsUsedCents int64) string {
	return decimal.New(promptsUsedCents, -2).StringFixed(2)
}

// Aggregate builds the record for user. A failed fetch yields a record with
// all aggregates at zero.
func Aggregate(user models.User, result models.MetricsResult) models.Record {
	return RecordFor(user, FromResult(result))
}

// FromResult groups a metrics result. A failed fetch gives an empty breakdown.
func FromResult(result models.MetricsResult) Breakdown {
	if result.Failed() {
		return NewBreakdown(nil)
	}
	return NewBreakdown(result.Response)
}

// RecordFor combines user with the totals and tool counts of b.
func RecordFor(user models.User, b Breakdown) models.Record {
	totals := b.Totals()

	return models.Record{
		Email:                   user.Email,
		Name:                    user.Name,
		ActiveDays:              int64(user.ActiveDays),
		LastUpdateTime:          user.LastUpdateTime,
		LastAutocompleteUsage:   user.LastAutocompleteUsageTime,
		LastChatUsage:           user.LastChatUsageTime,
		LastCommandUsage:        user.LastCommandUsageTime,
		TotalLinesSuggested:     totals.LinesSuggested,
		TotalLinesAccepted:      totals.LinesAccepted,
		AcceptanceRate:          AcceptanceRate(totals.LinesAccepted, totals.LinesSuggested),
		TotalMessagesSent:       totals.MessagesSent,
		TotalPromptsUsedCents:   totals.PromptsUsed,
		TotalPromptsUsedCredits: Credits(totals.PromptsUsed),
		TotalUniqueCascades:     totals.UniqueCascades,
		Tools:                   b.Tools,
	}
}
