package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"usage-metrics-service/internal/pipeline/adapters/csvfile"
	"usage-metrics-service/internal/pipeline/adapters/export"
	"usage-metrics-service/internal/pipeline/core/domain"
	"usage-metrics-service/internal/pipeline/core/ports"
	"usage-metrics-service/internal/pipeline/core/usecase"
	"usage-metrics-service/internal/platform/logging"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Users       string
	Firms       string
	Events      string
	Out         string
	Format      string
	DryRun      bool
	Workers     int
	KnownTitles []string
}

// ValidExportFormats defines the allowed report formats.
var ValidExportFormats = []string{export.FormatCSV, export.FormatXLSX, export.FormatJSON}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the pipeline over CSV exports",
		Long: `Run the full pipeline over raw CSV exports and write every derived table.

Inputs use the export column names: users ID,CREATED,TITLE; firms
ID,CREATED,FIRM_SIZE,ARR_IN_THOUSANDS; events
CREATED,FIRM_ID,USER_ID,EVENT_TYPE,NUM_DOCS,FEEDBACK_SCORE.

Example:
  metricsctl run --users users.csv --firms firms.csv --events events.csv --out ./out
  metricsctl run --users users.csv --firms firms.csv --events events.csv --format xlsx --out report.xlsx
  metricsctl run --users users.csv --firms firms.csv --events events.csv --dry-run`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Users, "users", "", "path to users CSV (required)")
	cmd.Flags().StringVar(&opts.Firms, "firms", "", "path to firms CSV (required)")
	cmd.Flags().StringVar(&opts.Events, "events", "", "path to events CSV (required)")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "out", "output directory (csv) or file (xlsx, json)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", export.FormatCSV, "report format (csv|xlsx|json)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "compute and print stats without writing a report")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "parallel stages (default from config)")
	cmd.Flags().StringSliceVar(&opts.KnownTitles, "known-titles", nil, "accepted user titles (default from config)")
	_ = cmd.MarkFlagRequired("users")
	_ = cmd.MarkFlagRequired("firms")
	_ = cmd.MarkFlagRequired("events")

	return cmd
}

// runSummary is printed to stdout after a run.
type runSummary struct {
	RunID       string          `json:"run_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	DryRun      bool            `json:"dry_run"`
	Output      string          `json:"output,omitempty"`
	Stats       domain.RunStats `json:"stats"`
	RowCounts   map[string]int  `json:"row_counts"`
}

func runPipeline(cmd *cobra.Command, opts *RunOptions) error {
	var sinks []ports.ReportSink
	if !opts.DryRun {
		sink, err := export.NewSink(opts.Format, opts.Out)
		if err != nil {
			return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidExportFormats)
		}
		sinks = append(sinks, sink)
	}

	ucOpts := usecase.Options{Workers: opts.Workers, KnownTitles: opts.KnownTitles}
	if cfg := opts.Config; cfg != nil {
		if ucOpts.Workers == 0 {
			ucOpts.Workers = cfg.Pipeline.Workers
		}
		if len(ucOpts.KnownTitles) == 0 {
			ucOpts.KnownTitles = cfg.Pipeline.KnownTitles
		}
	}

	source := csvfile.NewSource(opts.Users, opts.Firms, opts.Events)
	uc := usecase.NewRunPipelineUseCase(source, ucOpts, sinks...)

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().
		Str("users", opts.Users).
		Str("firms", opts.Firms).
		Str("events", opts.Events).
		Bool("dry_run", opts.DryRun).
		Msg("starting pipeline run")

	report, err := uc.Execute(ctx, usecase.RunPipelineInput{DryRun: opts.DryRun})
	if err != nil {
		return err
	}

	summary := runSummary{
		RunID:       report.RunID,
		GeneratedAt: report.GeneratedAt,
		DryRun:      opts.DryRun,
		Stats:       report.Stats,
		RowCounts:   report.Tables.RowCounts(),
	}
	if !opts.DryRun {
		summary.Output = opts.Out
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
