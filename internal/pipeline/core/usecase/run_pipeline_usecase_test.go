package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"usage-metrics-service/internal/pipeline/core/domain"
)

// ---- fakes ----

type fakeSource struct {
	LoadFn func(ctx context.Context) (domain.RawRecords, error)
}

func (f *fakeSource) Load(ctx context.Context) (domain.RawRecords, error) {
	return f.LoadFn(ctx)
}

type fakeSink struct {
	Reports []*domain.Report
	Err     error
}

func (f *fakeSink) WriteReport(ctx context.Context, r *domain.Report) error {
	if f.Err != nil {
		return f.Err
	}
	f.Reports = append(f.Reports, r)
	return nil
}

func num(v float64) *float64 { return &v }

func sampleRecords() domain.RawRecords {
	return domain.RawRecords{
		Users: []domain.RawUser{
			{ID: "u1", Created: "2024-01-02", Title: "Associate"},
			{ID: "u2", Created: "2024-01-15", Title: "Partner"},
			{ID: "u3", Created: "2024-02-01", Title: "Associate"},
			{ID: "", Created: "2024-02-01", Title: "Associate"},
		},
		Firms: []domain.RawFirm{
			{ID: "f1", Created: "2023-06-01", FirmSize: num(250), ARRInThousands: num(400)},
			{ID: "f2", Created: "2023-06-01", FirmSize: num(20), ARRInThousands: num(50)},
		},
		Events: []domain.RawEvent{
			{Created: "2024-01-03 09:00:00", FirmID: "f1", UserID: "u1", EventType: "ASSISTANT", NumDocs: num(3), FeedbackScore: num(5)},
			{Created: "2024-01-03 11:00:00", FirmID: "f1", UserID: "u1", EventType: "VAULT", NumDocs: num(12)},
			{Created: "2024-01-10 11:00:00", FirmID: "f1", UserID: "u1", EventType: "WORKFLOW", FeedbackScore: num(4)},
			{Created: "2024-01-16 08:00:00", FirmID: "f2", UserID: "u2", EventType: "assistant", NumDocs: num(1), FeedbackScore: num(2)},
			{Created: "2024-02-05 08:00:00", FirmID: "f2", UserID: "u2", EventType: "ASSISTANT", NumDocs: num(2)},
			{Created: "2024-01-01 08:00:00", FirmID: "f1", UserID: "u1", EventType: "ASSISTANT"},
			{Created: "2024-02-05 08:00:00", FirmID: "f9", UserID: "ghost", EventType: "ASSISTANT"},
			{Created: "", FirmID: "f1", UserID: "u1"},
		},
	}
}

func newTestUseCase(src *fakeSource, sinks ...*fakeSink) *RunPipelineUseCase {
	uc := NewRunPipelineUseCase(src, Options{Workers: 2})
	for _, s := range sinks {
		uc.sinks = append(uc.sinks, s)
	}
	uc.now = func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) }
	uc.newID = func() string { return "run-1" }
	return uc
}

// ---- tests ----

func TestRunPipeline_Success(t *testing.T) {
	src := &fakeSource{LoadFn: func(ctx context.Context) (domain.RawRecords, error) {
		return sampleRecords(), nil
	}}
	sink := &fakeSink{}
	uc := newTestUseCase(src, sink)

	report, err := uc.Execute(context.Background(), RunPipelineInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.RunID != "run-1" {
		t.Fatalf("expected run id run-1, got %s", report.RunID)
	}
	if len(sink.Reports) != 1 || sink.Reports[0] != report {
		t.Fatalf("expected the report to be written once, got %d writes", len(sink.Reports))
	}

	if report.Stats.Users.Kept != 3 || report.Stats.Users.RejectedTotal() != 1 {
		t.Fatalf("unexpected user stats: %+v", report.Stats.Users)
	}
	if report.Stats.Events.Kept != 7 {
		t.Fatalf("expected 7 clean events, got %d", report.Stats.Events.Kept)
	}
	if report.Stats.Join.Joined != 5 {
		t.Fatalf("expected 5 joined events, got %d", report.Stats.Join.Joined)
	}
	if report.Stats.Join.Dropped["unknown_user"] != 1 || report.Stats.Join.Dropped["before_signup"] != 1 {
		t.Fatalf("unexpected join drops: %v", report.Stats.Join.Dropped)
	}

	// u1 Jan, u2 Jan, u2 Feb
	if got := len(report.Tables.Engagement); got != 3 {
		t.Fatalf("expected 3 engagement records, got %d", got)
	}
	// f1 Jan, f2 Jan, f2 Feb
	if got := len(report.Tables.FirmHealth); got != 3 {
		t.Fatalf("expected 3 firm health records, got %d", got)
	}
	if got := len(report.Tables.Acquisition); got != 3 {
		t.Fatalf("expected one acquisition record per dated user, got %d", got)
	}
	if len(report.Tables.Cohorts) == 0 || len(report.Tables.EventPerformance) == 0 || len(report.Tables.AcquisitionSummary) == 0 {
		t.Fatalf("expected every table to be populated: %v", report.Tables.RowCounts())
	}
}

func TestRunPipeline_Deterministic(t *testing.T) {
	src := &fakeSource{LoadFn: func(ctx context.Context) (domain.RawRecords, error) {
		return sampleRecords(), nil
	}}

	first, err := newTestUseCase(src).Execute(context.Background(), RunPipelineInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := newTestUseCase(src).Execute(context.Background(), RunPipelineInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("two runs over the same input differ (-first +second):\n%s", diff)
	}
}

func TestRunPipeline_DryRunSkipsSinks(t *testing.T) {
	src := &fakeSource{LoadFn: func(ctx context.Context) (domain.RawRecords, error) {
		return sampleRecords(), nil
	}}
	sink := &fakeSink{}

	report, err := newTestUseCase(src, sink).Execute(context.Background(), RunPipelineInput{DryRun: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Tables.Engagement) == 0 {
		t.Fatalf("dry run should still compute tables")
	}
	if len(sink.Reports) != 0 {
		t.Fatalf("dry run must not write, got %d writes", len(sink.Reports))
	}
}

func TestRunPipeline_SourceError(t *testing.T) {
	boom := errors.New("db down")
	src := &fakeSource{LoadFn: func(ctx context.Context) (domain.RawRecords, error) {
		return domain.RawRecords{}, boom
	}}

	_, err := newTestUseCase(src).Execute(context.Background(), RunPipelineInput{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
}

func TestRunPipeline_SinkError(t *testing.T) {
	boom := errors.New("disk full")
	src := &fakeSource{LoadFn: func(ctx context.Context) (domain.RawRecords, error) {
		return sampleRecords(), nil
	}}
	bad := &fakeSink{Err: boom}
	after := &fakeSink{}

	_, err := newTestUseCase(src, bad, after).Execute(context.Background(), RunPipelineInput{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped sink error, got %v", err)
	}
	if len(after.Reports) != 0 {
		t.Fatalf("later sinks must not run after a failure")
	}
}

func TestRunPipeline_CancelledContext(t *testing.T) {
	src := &fakeSource{LoadFn: func(ctx context.Context) (domain.RawRecords, error) {
		return sampleRecords(), nil
	}}
	sink := &fakeSink{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestUseCase(src, sink).Execute(ctx, RunPipelineInput{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(sink.Reports) != 0 {
		t.Fatalf("cancelled run must not write")
	}
}

func TestRunPipeline_RejectsConcurrentRun(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	src := &fakeSource{LoadFn: func(ctx context.Context) (domain.RawRecords, error) {
		close(entered)
		<-release
		return domain.RawRecords{}, nil
	}}
	uc := newTestUseCase(src)

	done := make(chan error, 1)
	go func() {
		_, err := uc.Execute(context.Background(), RunPipelineInput{})
		done <- err
	}()
	<-entered

	if _, err := uc.Execute(context.Background(), RunPipelineInput{}); !errors.Is(err, ErrPipelineRunning) {
		t.Fatalf("expected ErrPipelineRunning, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	// guard is released afterwards
	src.LoadFn = func(ctx context.Context) (domain.RawRecords, error) { return domain.RawRecords{}, nil }
	if _, err := uc.Execute(context.Background(), RunPipelineInput{}); err != nil {
		t.Fatalf("expected run to succeed after the first finished, got %v", err)
	}
}
