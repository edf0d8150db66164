package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"usage-metrics-service/internal/pipeline/core/acquisition"
	"usage-metrics-service/internal/pipeline/core/cleaner"
	"usage-metrics-service/internal/pipeline/core/cohort"
	"usage-metrics-service/internal/pipeline/core/domain"
	"usage-metrics-service/internal/pipeline/core/engagement"
	"usage-metrics-service/internal/pipeline/core/firmhealth"
	"usage-metrics-service/internal/pipeline/core/joiner"
	"usage-metrics-service/internal/pipeline/core/performance"
	"usage-metrics-service/internal/pipeline/core/ports"
	"usage-metrics-service/internal/platform/logging"
	"usage-metrics-service/internal/platform/metrics"
)

var ErrPipelineRunning = errors.New("pipeline run already in progress")

type Options struct {
	Workers     int
	KnownTitles []string
}

type RunPipelineUseCase struct {
	source  ports.RawRecordSource
	sinks   []ports.ReportSink
	cleaner *cleaner.Cleaner
	workers int

	running atomic.Bool

	now   func() time.Time
	newID func() string
}

func NewRunPipelineUseCase(source ports.RawRecordSource, opts Options, sinks ...ports.ReportSink) *RunPipelineUseCase {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	return &RunPipelineUseCase{
		source:  source,
		sinks:   sinks,
		cleaner: cleaner.New(cleaner.Options{KnownTitles: opts.KnownTitles}),
		workers: workers,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

type RunPipelineInput struct {
	// DryRun computes every table but skips the sinks.
	DryRun bool
}

// Execute runs one full recompute. Only one run may be in flight; a second
// caller gets ErrPipelineRunning.
func (uc *RunPipelineUseCase) Execute(ctx context.Context, in RunPipelineInput) (*domain.Report, error) {
	if !uc.running.CompareAndSwap(false, true) {
		metrics.PipelineRunsTotal.WithLabelValues("rejected").Inc()
		return nil, ErrPipelineRunning
	}
	defer uc.running.Store(false)

	start := time.Now()
	report := &domain.Report{RunID: uc.newID(), GeneratedAt: uc.now()}
	log := logging.With().Str("run_id", report.RunID).Logger()
	ctx = logging.ContextWithLogger(ctx, log)

	err := uc.run(ctx, report, in.DryRun)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("pipeline run failed")
		metrics.RecordRun("error", time.Since(start), nil)
		return nil, err
	}

	log.Info().
		Dur("elapsed", time.Since(start)).
		Bool("dry_run", in.DryRun).
		Interface("rows", report.Tables.RowCounts()).
		Msg("pipeline run finished")
	metrics.RecordRun("success", time.Since(start), report.Tables.RowCounts())
	return report, nil
}

func (uc *RunPipelineUseCase) run(ctx context.Context, report *domain.Report, dryRun bool) error {
	log := logging.Ctx(ctx)

	raw, err := uc.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load raw records: %w", err)
	}

	report.Stats, report.Tables, err = uc.Compute(ctx, raw)
	if err != nil {
		return err
	}

	if dryRun {
		return nil
	}
	for _, sink := range uc.sinks {
		if err := ctx.Err(); err != nil {
			return err
		}
		stageStart := time.Now()
		if err := sink.WriteReport(ctx, report); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		metrics.RecordStage("sink", time.Since(stageStart))
	}
	log.Debug().Int("sinks", len(uc.sinks)).Msg("report written")
	return nil
}

// Compute cleans, joins and aggregates one raw snapshot. Engines run
// concurrently; each one sorts its own output so the result does not
// depend on scheduling.
func (uc *RunPipelineUseCase) Compute(ctx context.Context, raw domain.RawRecords) (domain.RunStats, domain.Tables, error) {
	log := logging.Ctx(ctx)
	var (
		stats  domain.RunStats
		tables domain.Tables
	)

	stageStart := time.Now()
	users, userStats := uc.cleaner.CleanUsers(raw.Users)
	firms, firmStats := uc.cleaner.CleanFirms(raw.Firms)
	events, eventStats := uc.cleaner.CleanEvents(raw.Events)
	stats.Users, stats.Firms, stats.Events = userStats, firmStats, eventStats
	metrics.RecordStage("clean", time.Since(stageStart))

	for table, s := range map[string]domain.TableStats{"raw_users": userStats, "raw_firms": firmStats, "raw_events": eventStats} {
		metrics.RecordRejections(table, s.Rejected)
		log.Info().
			Str("table", table).
			Int("input", s.Input).
			Int("kept", s.Kept).
			Interface("rejected", s.Rejected).
			Msg("cleaned")
	}

	stageStart = time.Now()
	activity, joinStats := joiner.Join(users, firms, events)
	stats.Join = joinStats
	metrics.RecordStage("join", time.Since(stageStart))
	metrics.RecordRejections("activity", joinStats.Dropped)
	log.Info().
		Int("input", joinStats.Input).
		Int("joined", joinStats.Joined).
		Interface("dropped", joinStats.Dropped).
		Msg("joined activity")

	if err := ctx.Err(); err != nil {
		return stats, tables, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.workers)

	stage := func(name string, fn func()) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t := time.Now()
			fn()
			metrics.RecordStage(name, time.Since(t))
			return nil
		})
	}

	stage("engagement", func() {
		tables.Engagement = engagement.Classify(activity)
		tables.FirmHealth = firmhealth.Score(firms, tables.Engagement)
	})
	stage("cohort", func() {
		tables.Cohorts = cohort.Compute(users, activity)
	})
	stage("performance", func() {
		tables.EventPerformance = performance.Compute(activity)
	})
	stage("acquisition", func() {
		tables.Acquisition = acquisition.Compute(users, activity)
		tables.AcquisitionSummary = acquisition.Summarize(tables.Acquisition)
	})

	if err := g.Wait(); err != nil {
		return stats, tables, err
	}
	return stats, tables, nil
}
