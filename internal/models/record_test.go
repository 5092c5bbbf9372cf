package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Fields(t *testing.T) {
	rec := Record{
		Email:                   "a@x.com",
		Name:                    "A",
		ActiveDays:              5,
		AcceptanceRate:          "40.00%",
		TotalPromptsUsedCredits: "2.50",
		TotalLinesSuggested:     100,
		TotalUniqueCascades:     1,
		Tools:                   map[string]int64{"Search": 7},
	}

	fields := rec.Fields()

	assert.Equal(t, "a@x.com", fields[ColEmail])
	assert.Equal(t, int64(5), fields[ColActiveDays])
	assert.Equal(t, "40.00%", fields[ColAcceptanceRate])
	assert.Equal(t, int64(100), fields[ColTotalLinesSuggested])
	assert.Equal(t, int64(1), fields[ColTotalUniqueCascades])
	assert.Equal(t, int64(7), fields["tool_search"])
	assert.Len(t, fields, 15)
}

func TestRecord_FieldsMergesCaseVariants(t *testing.T) {
	rec := Record{Tools: map[string]int64{"Search": 2, "SEARCH": 3}}

	assert.Equal(t, int64(5), rec.Fields()["tool_search"])
}

func TestToolColumn(t *testing.T) {
	assert.Equal(t, "tool_run_command", ToolColumn("RUN_COMMAND"))
	assert.Equal(t, "tool_", ToolColumn(""))
}

func TestIndexByEmail(t *testing.T) {
	users := []User{
		{Email: "a@x.com", Name: "first"},
		{Email: ""},
		{Email: "b@x.com", Name: "B"},
		{Email: "a@x.com", Name: "second"},
	}

	index := IndexByEmail(users)

	require.Len(t, index, 2)
	assert.Equal(t, "first", index["a@x.com"].Name)
	assert.Equal(t, "B", index["b@x.com"].Name)
}

func TestMetricsResult(t *testing.T) {
	ok := MetricsOK(nil)
	assert.False(t, ok.Failed())
	assert.NotNil(t, ok.Response)

	failed := MetricsFailed(errors.New("boom"))
	assert.True(t, failed.Failed())

	assert.True(t, MetricsResult{}.Failed())
}

func TestMetricsResponse_Decode(t *testing.T) {
	body := `{"queryResults":[
		{"cascadeLines":{"cascadeLines":[{"day":"2024-01-01","linesSuggested":"100","linesAccepted":"40"}]}},
		{"cascadeRuns":{"cascadeRuns":[{"day":"2024-01-01","messagesSent":"3","promptsUsed":"250","cascadeId":"c1"}]}},
		{"cascadeToolUsage":{"cascadeToolUsage":[{"tool":"Search","count":"7"}]}}
	]}`

	var resp MetricsResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.Len(t, resp.QueryResults, 3)

	require.NotNil(t, resp.QueryResults[0].CascadeLines)
	assert.Nil(t, resp.QueryResults[0].CascadeRuns)
	assert.Equal(t, Int64(40), resp.QueryResults[0].CascadeLines.CascadeLines[0].LinesAccepted)

	require.NotNil(t, resp.QueryResults[1].CascadeRuns)
	assert.Equal(t, "c1", resp.QueryResults[1].CascadeRuns.CascadeRuns[0].CascadeID)

	require.NotNil(t, resp.QueryResults[2].CascadeToolUsage)
	assert.Equal(t, Int64(7), resp.QueryResults[2].CascadeToolUsage.CascadeToolUsage[0].Count)
}
