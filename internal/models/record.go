// Package models defines data structures and domain types.
package models

import "strings"

// ToolColumnPrefix prefixes the per-tool columns of the report.
const ToolColumnPrefix = "tool_"

// Report column names for the fixed fields of a Record.
const (
	ColEmail                 = "email"
	ColName                  = "name"
	ColActiveDays            = "active_days"
	ColLastUpdateTime        = "last_update_time"
	ColLastAutocompleteUsage = "last_autocomplete_usage"
	ColLastChatUsage         = "last_chat_usage"
	ColLastCommandUsage      = "last_command_usage"
	ColTotalLinesSuggested   = "total_lines_suggested"
	ColTotalLinesAccepted    = "total_lines_accepted"
	ColAcceptanceRate        = "acceptance_rate"
	ColTotalMessagesSent     = "total_messages_sent"
	ColTotalPromptsCents     = "total_prompts_used_cents"
	ColTotalPromptsCredits   = "total_prompts_used_credits"
	ColTotalUniqueCascades   = "total_unique_cascades"
)

// Record is one output row: a user's identity plus aggregated cascade usage.
// Tools holds one entry per distinct tool seen for the user; it only becomes
// columns when records are merged at the report boundary.
type Record struct {
	Tools                   map[string]int64
	Email                   string
	Name                    string
	LastUpdateTime          string
	LastAutocompleteUsage   string
	LastChatUsage           string
	LastCommandUsage        string
	AcceptanceRate          string
	TotalPromptsUsedCredits string
	ActiveDays              int64
	TotalLinesSuggested     int64
	TotalLinesAccepted      int64
	TotalMessagesSent       int64
	TotalPromptsUsedCents   int64
	TotalUniqueCascades     int
}

// ToolColumn returns the column name used for a tool.
func ToolColumn(tool string) string {
	return ToolColumnPrefix + strings.ToLower(tool)
}

// Fields flattens the record into column -> value. Values are either string
// or int64.
func (r Record) Fields() map[string]any {
	fields := map[string]any{
		ColEmail:                 r.Email,
		ColName:                  r.Name,
		ColActiveDays:            r.ActiveDays,
		ColLastUpdateTime:        r.LastUpdateTime,
		ColLastAutocompleteUsage: r.LastAutocompleteUsage,
		ColLastChatUsage:         r.LastChatUsage,
		ColLastCommandUsage:      r.LastCommandUsage,
		ColTotalLinesSuggested:   r.TotalLinesSuggested,
		ColTotalLinesAccepted:    r.TotalLinesAccepted,
		ColAcceptanceRate:        r.AcceptanceRate,
		ColTotalMessagesSent:     r.TotalMessagesSent,
		ColTotalPromptsCents:     r.TotalPromptsUsedCents,
		ColTotalPromptsCredits:   r.TotalPromptsUsedCredits,
		ColTotalUniqueCascades:   int64(r.TotalUniqueCascades),
	}

	// Tools whose names differ only by case share a column.
	for tool, count := range r.Tools {
		col := ToolColumn(tool)
		if existing, ok := fields[col].(int64); ok {
			count += existing
		}
		fields[col] = count
	}

	return fields
}
