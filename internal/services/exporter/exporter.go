// Package exporter drives a full export: roster, per-user metrics, aggregation
// and the final write.
package exporter

import (
	"context"
	"fmt"

	"github.com/j-veylop/windsurf-analytics-exporter/internal/logger"
	"github.com/j-veylop/windsurf-analytics-exporter/internal/models"
	"github.com/j-veylop/windsurf-analytics-exporter/internal/report"
	"github.com/j-veylop/windsurf-analytics-exporter/internal/services/aggregate"
	"github.com/j-veylop/windsurf-analytics-exporter/internal/services/analytics"
)

// Client is the subset of the analytics API the exporter needs.
type Client interface {
	FetchRoster(ctx context.Context, filter analytics.RosterFilter) ([]models.User, error)
	FetchMetrics(ctx context.Context, query analytics.MetricsQuery) models.MetricsResult
}

// Options selects what to export and where.
type Options struct {
	OutputPath     string
	GroupName      string
	StartTimestamp string
	EndTimestamp   string
	IDETypes       []string
	// BatchSize is accepted for compatibility; metrics are always fetched one
	// email per request.
	BatchSize int
	// Progress, when set, is called after each user is processed.
	Progress func(done, total int, email string)
}

// Result summarizes a finished export.
type Result struct {
	OutputPath    string
	Records       []models.Record
	Trend         []aggregate.DayPoint
	Users         int
	FailedMetrics int
}

// Exporter runs exports against a Client and hands records to a Writer.
type Exporter struct {
	client Client
	writer report.Writer
	opts   Options
}

// New creates an exporter.
func New(client Client, writer report.Writer, opts Options) *Exporter {
	return &Exporter{
		client: client,
		writer: writer,
		opts:   opts,
	}
}

// Run performs the export. A roster or write failure aborts the run; a
// per-user metrics failure only zeroes that user's aggregates.
func (e *Exporter) Run(ctx context.Context) (*Result, error) {
	logger.Info("Starting Windsurf Analytics Export")
	logger.Debug("Batch size is not used for request grouping", "batch_size", e.opts.BatchSize)

	users, err := e.client.FetchRoster(ctx, analytics.RosterFilter{
		GroupName:      e.opts.GroupName,
		StartTimestamp: e.opts.StartTimestamp,
		EndTimestamp:   e.opts.EndTimestamp,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{OutputPath: e.opts.OutputPath}

	if len(users) == 0 {
		logger.Info("No users found")
		if err := e.writer.Write(nil, e.opts.OutputPath); err != nil {
			return nil, fmt.Errorf("failed to write report: %w", err)
		}
		return result, nil
	}

	byEmail := models.IndexByEmail(users)
	emails := make([]string, 0, len(users))
	for _, u := range users {
		if u.Email != "" {
			emails = append(emails, u.Email)
		}
	}

	result.Users = len(emails)
	records := make([]models.Record, 0, len(emails))
	trend := aggregate.NewTrend()

	for i, email := range emails {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("export interrupted: %w", err)
		}

		logger.Info(fmt.Sprintf("Processing %d/%d", i+1, len(emails)), "email", email)

		metrics := e.client.FetchMetrics(ctx, analytics.MetricsQuery{
			Emails:         []string{email},
			StartTimestamp: e.opts.StartTimestamp,
			EndTimestamp:   e.opts.EndTimestamp,
			IDETypes:       e.opts.IDETypes,
		})
		if metrics.Failed() {
			result.FailedMetrics++
		}

		user, ok := byEmail[email]
		if !ok {
			continue
		}

		breakdown := aggregate.FromResult(metrics)
		records = append(records, aggregate.RecordFor(user, breakdown))
		trend.Add(breakdown)

		if e.opts.Progress != nil {
			e.opts.Progress(i+1, len(emails), email)
		}
	}

	if err := e.writer.Write(records, e.opts.OutputPath); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}

	result.Records = records
	result.Trend = trend.Points()

	logger.Info("Export completed", "users_processed", len(records), "failed_metrics", result.FailedMetrics)
	return result, nil
}
