/*
Package cli implements the windsurf-export command line.

The root command runs a full export: it fetches the team roster, pulls
Cascade analytics for every user one request at a time and writes one row
per user to a CSV (or XLSX) file.
*/
package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/j-veylop/windsurf-analytics-exporter/internal/config"
	"github.com/j-veylop/windsurf-analytics-exporter/internal/logger"
	"github.com/j-veylop/windsurf-analytics-exporter/internal/notify"
	"github.com/j-veylop/windsurf-analytics-exporter/internal/report"
	"github.com/j-veylop/windsurf-analytics-exporter/internal/services/analytics"
	"github.com/j-veylop/windsurf-analytics-exporter/internal/services/exporter"
	"github.com/j-veylop/windsurf-analytics-exporter/internal/ui/components"
	"github.com/j-veylop/windsurf-analytics-exporter/internal/version"
)

const progressWidth = 30

type exportOptions struct {
	serviceKey     string
	output         string
	format         string
	groupName      string
	startTimestamp string
	endTimestamp   string
	baseURL        string
	ideTypes       []string
	batchSize      int
	summary        bool
	notify         bool
	verbose        bool
}

// NewRootCmd creates the root export command with its subcommands.
func NewRootCmd() *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "windsurf-export",
		Short: "Export Windsurf team analytics to CSV",
		Long: `windsurf-export pulls per-user Cascade analytics from the Windsurf
(Codeium) analytics API and writes one row per team member.

Each row carries the user's roster details, accepted and suggested lines,
acceptance rate, messages sent, prompt credits, distinct Cascade sessions
and one tool_<name> column per tool used.

Configuration is read from flags, then WINDSURF_* environment variables,
then a .env file in the current directory, next to the binary or in
~/.config/windsurf-analytics/.env.`,
		Example: `  # Export the whole team
  windsurf-export --service-key $KEY

  # One group, January only, as a spreadsheet with a summary
  windsurf-export --group-name backend \
    --start-timestamp 2024-01-01T00:00:00Z --end-timestamp 2024-02-01T00:00:00Z \
    --format xlsx --output january.xlsx --summary`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.serviceKey, "service-key", "", "Windsurf service key (or WINDSURF_SERVICE_KEY)")
	f.StringVarP(&opts.output, "output", "o", config.DefaultOutputPath, "Output file path")
	f.StringVar(&opts.format, "format", config.DefaultFormat, "Output format: csv or xlsx")
	f.StringVar(&opts.groupName, "group-name", "", "Only export users of this group")
	f.StringVar(&opts.startTimestamp, "start-timestamp", "", "Start of the range, RFC 3339 (e.g. 2024-01-01T00:00:00Z)")
	f.StringVar(&opts.endTimestamp, "end-timestamp", "", "End of the range, RFC 3339 (e.g. 2024-12-31T23:59:59Z)")
	f.StringSliceVar(&opts.ideTypes, "ide-types", nil, "IDE types to include: editor, jetbrains (repeatable)")
	f.IntVar(&opts.batchSize, "batch-size", config.DefaultBatchSize, "Accepted for compatibility; metrics are fetched one user at a time")
	f.StringVar(&opts.baseURL, "base-url", config.DefaultBaseURL, "Analytics API base URL")
	f.BoolVar(&opts.summary, "summary", false, "Print a summary table and daily trend chart when done")
	f.BoolVar(&opts.notify, "notify", false, "Send a desktop notification when done")
	f.BoolVarP(&opts.verbose, "verbose", "V", false, "Enable debug logging")

	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// apply overlays explicitly set flags on top of cfg.
func (o *exportOptions) apply(flags *pflag.FlagSet, cfg *config.Config) {
	if flags.Changed("service-key") {
		cfg.ServiceKey = o.serviceKey
	}
	if flags.Changed("output") {
		cfg.OutputPath = o.output
	}
	if flags.Changed("format") {
		cfg.Format = o.format
	}
	if flags.Changed("group-name") {
		cfg.GroupName = o.groupName
	}
	if flags.Changed("start-timestamp") {
		cfg.StartTimestamp = o.startTimestamp
	}
	if flags.Changed("end-timestamp") {
		cfg.EndTimestamp = o.endTimestamp
	}
	if flags.Changed("ide-types") {
		cfg.IDETypes = o.ideTypes
	}
	if flags.Changed("batch-size") {
		cfg.BatchSize = o.batchSize
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = o.baseURL
	}
	if o.verbose {
		cfg.LogLevel = "debug"
	}
}

func runExport(cmd *cobra.Command, opts *exportOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	opts.apply(cmd.Flags(), cfg)

	logger.SetLevel(logger.ParseLevel(cfg.LogLevel))
	if cfg.EnvFile != "" {
		logger.Debug("Loaded environment file", "path", cfg.EnvFile)
	}

	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrMissingServiceKey) {
			fmt.Fprintln(cmd.ErrOrStderr(), config.MissingServiceKeyHint())
		}
		return err
	}

	logger.With("run_id", uuid.NewString())

	writer, err := report.ForFormat(cfg.Format)
	if err != nil {
		return err
	}

	client := analytics.NewClient(cfg.BaseURL, cfg.ServiceKey,
		analytics.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		analytics.WithUserAgent(version.UserAgent()),
	)

	out := cmd.OutOrStdout()
	exportOpts := exporter.Options{
		OutputPath:     cfg.OutputPath,
		GroupName:      cfg.GroupName,
		StartTimestamp: cfg.StartTimestamp,
		EndTimestamp:   cfg.EndTimestamp,
		IDETypes:       cfg.IDETypes,
		BatchSize:      cfg.BatchSize,
	}
	showProgress := isTerminal(out)
	if showProgress {
		bar := components.NewProgressBar(progressWidth)
		exportOpts.Progress = func(done, total int, email string) {
			fmt.Fprint(out, "\r\033[K"+bar.Line(done, total, email))
		}
	}

	result, err := exporter.New(client, writer, exportOpts).Run(cmd.Context())
	if showProgress {
		fmt.Fprintln(out)
	}
	if err != nil {
		logger.Error("Export failed", "error", err)
		if opts.notify {
			notify.ExportFailed(err)
		}
		return err
	}

	if opts.summary {
		fmt.Fprintln(out, components.RenderSummary(components.SummaryData{
			OutputPath:    result.OutputPath,
			Records:       result.Records,
			Trend:         result.Trend,
			FailedMetrics: result.FailedMetrics,
		}))
	}

	if opts.notify {
		notify.ExportFinished(len(result.Records), result.OutputPath, result.FailedMetrics)
	}

	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
