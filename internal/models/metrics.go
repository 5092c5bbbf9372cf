// Package models defines data structures and domain types.
package models

// Query types requested from the cascade analytics endpoint.
const (
	QueryCascadeLines     = "cascade_lines"
	QueryCascadeRuns      = "cascade_runs"
	QueryCascadeToolUsage = "cascade_tool_usage"
)

// LineStat is one day of suggested/accepted line counts.
type LineStat struct {
	Day            string `json:"day"`
	LinesSuggested Int64  `json:"linesSuggested"`
	LinesAccepted  Int64  `json:"linesAccepted"`
}

// RunStat is one cascade run summary bucketed by day.
type RunStat struct {
	Day          string `json:"day"`
	CascadeID    string `json:"cascadeId"`
	Model        string `json:"model,omitempty"`
	Mode         string `json:"mode,omitempty"`
	MessagesSent Int64  `json:"messagesSent"`
	PromptsUsed  Int64  `json:"promptsUsed"`
}

// ToolStat is an invocation count for a single tool.
type ToolStat struct {
	Tool  string `json:"tool"`
	Count Int64  `json:"count"`
}

// CascadeLines wraps the line statistics result set.
type CascadeLines struct {
	CascadeLines []LineStat `json:"cascadeLines"`
}

// CascadeRuns wraps the run statistics result set.
type CascadeRuns struct {
	CascadeRuns []RunStat `json:"cascadeRuns"`
}

// CascadeToolUsage wraps the tool usage result set.
type CascadeToolUsage struct {
	CascadeToolUsage []ToolStat `json:"cascadeToolUsage"`
}

// QueryResult is a single entry of the metrics response. The API tags each
// entry with exactly one of the three categories.
type QueryResult struct {
	CascadeLines     *CascadeLines     `json:"cascadeLines,omitempty"`
	CascadeRuns      *CascadeRuns      `json:"cascadeRuns,omitempty"`
	CascadeToolUsage *CascadeToolUsage `json:"cascadeToolUsage,omitempty"`
}

// MetricsResponse is the body returned by the cascade analytics endpoint.
type MetricsResponse struct {
	QueryResults []QueryResult `json:"queryResults"`
}

// MetricsResult is the outcome of one metrics fetch: either a response or the
// error that prevented it.
type MetricsResult struct {
	Response *MetricsResponse
	Err      error
}

// MetricsOK wraps a successful response.
func MetricsOK(resp *MetricsResponse) MetricsResult {
	if resp == nil {
		resp = &MetricsResponse{}
	}
	return MetricsResult{Response: resp}
}

// MetricsFailed wraps a fetch failure.
func MetricsFailed(err error) MetricsResult {
	return MetricsResult{Err: err}
}

// Failed reports whether the fetch failed.
func (r MetricsResult) Failed() bool {
	return r.Err != nil || r.Response == nil
}
