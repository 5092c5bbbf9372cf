// Package analytics is the client for the Windsurf analytics API.
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/j-veylop/windsurf-analytics-exporter/internal/logger"
	"github.com/j-veylop/windsurf-analytics-exporter/internal/models"
)

const (
	rosterPath  = "/UserPageAnalytics"
	metricsPath = "/CascadeAnalytics"
)

// APIError is returned when the API answers with a non-2xx status.
type APIError struct {
	Endpoint   string
	Body       string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s failed (status %d): %s", e.Endpoint, e.StatusCode, e.Body)
}

// RosterFilter narrows the roster query. Empty fields are not sent.
type RosterFilter struct {
	GroupName      string
	StartTimestamp string
	EndTimestamp   string
}

// MetricsQuery selects the users and window of a cascade analytics query.
type MetricsQuery struct {
	Emails         []string
	IDETypes       []string
	StartTimestamp string
	EndTimestamp   string
}

type rosterRequest struct {
	ServiceKey     string `json:"service_key"`
	GroupName      string `json:"group_name,omitempty"`
	StartTimestamp string `json:"start_timestamp,omitempty"`
	EndTimestamp   string `json:"end_timestamp,omitempty"`
}

type metricsRequest struct {
	ServiceKey     string                `json:"service_key"`
	StartTimestamp string                `json:"start_timestamp,omitempty"`
	EndTimestamp   string                `json:"end_timestamp,omitempty"`
	Emails         []string              `json:"emails"`
	QueryRequests  []map[string]struct{} `json:"query_requests"`
	IDETypes       []string              `json:"ide_types,omitempty"`
}

// Client issues authenticated requests against the analytics API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	serviceKey string
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL, serviceKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchRoster returns the users matching filter. Any failure is returned as an
// error; there is no partial roster.
func (c *Client) FetchRoster(ctx context.Context, filter RosterFilter) ([]models.User, error) {
	url := c.baseURL + rosterPath
	payload := rosterRequest{
		ServiceKey:     c.serviceKey,
		GroupName:      filter.GroupName,
		StartTimestamp: filter.StartTimestamp,
		EndTimestamp:   filter.EndTimestamp,
	}

	logger.Info("Fetching user emails", "url", url)

	var resp models.RosterResponse
	if err := c.post(ctx, url, payload, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch user emails: %w", err)
	}

	logger.Info("Found users", "count", len(resp.UserTableStats))
	return resp.UserTableStats, nil
}

// FetchMetrics queries line, run and tool usage statistics for the given
// emails. Failures are logged and returned as a failed result so the caller
// can carry on with zeroed aggregates.
func (c *Client) FetchMetrics(ctx context.Context, query MetricsQuery) models.MetricsResult {
	url := c.baseURL + metricsPath
	emails := query.Emails
	if emails == nil {
		emails = []string{}
	}
	payload := metricsRequest{
		ServiceKey: c.serviceKey,
		Emails:     emails,
		QueryRequests: []map[string]struct{}{
			{models.QueryCascadeLines: {}},
			{models.QueryCascadeRuns: {}},
			{models.QueryCascadeToolUsage: {}},
		},
		StartTimestamp: query.StartTimestamp,
		EndTimestamp:   query.EndTimestamp,
		IDETypes:       query.IDETypes,
	}

	logger.Info("Fetching cascade analytics", "emails", len(emails))

	var resp models.MetricsResponse
	if err := c.post(ctx, url, payload, &resp); err != nil {
		err = fmt.Errorf("failed to fetch cascade analytics: %w", err)
		logger.Warn("Error fetching cascade analytics", "emails", strings.Join(emails, ","), "error", err)
		return models.MetricsFailed(err)
	}

	return models.MetricsOK(&resp)
}

func (c *Client) post(ctx context.Context, url string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("failed to close response body", "error", err)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Endpoint:   url,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
