package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"usage-metrics-service/internal/reports/core/domain"
	"usage-metrics-service/internal/reports/core/ports"
	"usage-metrics-service/internal/reports/core/usecase"
)

// fakeReportReader implements ReportReaderPort for tests.
type fakeReportReader struct {
	EngagementFn  func(ctx context.Context, f ports.ReportFilter) ([]domain.EngagementRow, error)
	PerformanceFn func(ctx context.Context, f ports.ReportFilter) ([]domain.PerformanceRow, error)
	lastFilter    ports.ReportFilter
	called        bool
}

func (f *fakeReportReader) Engagement(ctx context.Context, flt ports.ReportFilter) ([]domain.EngagementRow, error) {
	f.called = true
	f.lastFilter = flt
	if f.EngagementFn != nil {
		return f.EngagementFn(ctx, flt)
	}
	return nil, nil
}

func (f *fakeReportReader) Cohorts(ctx context.Context, flt ports.ReportFilter) ([]domain.CohortRow, error) {
	f.called = true
	f.lastFilter = flt
	return nil, nil
}

func (f *fakeReportReader) FirmHealth(ctx context.Context, flt ports.ReportFilter) ([]domain.FirmHealthRow, error) {
	f.called = true
	f.lastFilter = flt
	return []domain.FirmHealthRow{{FirmID: "f1", HealthStatus: "Healthy"}}, nil
}

func (f *fakeReportReader) EventPerformance(ctx context.Context, flt ports.ReportFilter) ([]domain.PerformanceRow, error) {
	f.called = true
	f.lastFilter = flt
	if f.PerformanceFn != nil {
		return f.PerformanceFn(ctx, flt)
	}
	return nil, nil
}

// ------------------------------------------------------------
// SUCCESS
// ------------------------------------------------------------

func TestEngagement_Success_Defaults(t *testing.T) {
	reader := &fakeReportReader{
		EngagementFn: func(ctx context.Context, flt ports.ReportFilter) ([]domain.EngagementRow, error) {
			return []domain.EngagementRow{{UserID: "u1", EngagementLevel: "Power User"}}, nil
		},
	}
	uc := usecase.NewGetReportsUseCase(reader)

	page, err := uc.Engagement(context.Background(), usecase.GetReportInput{
		Month:  "2024-03",
		FirmID: " f1 ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(page.Items) != 1 || page.Items[0].UserID != "u1" {
		t.Fatalf("unexpected items: %+v", page.Items)
	}
	if page.Limit != usecase.DefaultLimit {
		t.Fatalf("expected default limit %d, got %d", usecase.DefaultLimit, page.Limit)
	}

	flt := reader.lastFilter
	if flt.Month == nil || !flt.Month.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected month 2024-03-01, got %v", flt.Month)
	}
	if flt.FirmID != "f1" {
		t.Fatalf("expected trimmed firm id, got %q", flt.FirmID)
	}
}

func TestEventPerformance_NormalizesGrainAndType(t *testing.T) {
	reader := &fakeReportReader{}
	uc := usecase.NewGetReportsUseCase(reader)

	page, err := uc.EventPerformance(context.Background(), usecase.GetReportInput{
		Grain:     "Weekly",
		EventType: "vault",
		Limit:     10,
		Offset:    20,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reader.lastFilter.Grain != "weekly" || reader.lastFilter.EventType != "VAULT" {
		t.Fatalf("unexpected filter: %+v", reader.lastFilter)
	}
	if page.Items == nil {
		t.Fatalf("expected empty slice, got nil")
	}
	if page.Limit != 10 || page.Offset != 20 {
		t.Fatalf("expected limit=10 offset=20, got %d %d", page.Limit, page.Offset)
	}
}

func TestFirmHealth_PassesRows(t *testing.T) {
	uc := usecase.NewGetReportsUseCase(&fakeReportReader{})

	page, err := uc.FirmHealth(context.Background(), usecase.GetReportInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].HealthStatus != "Healthy" {
		t.Fatalf("unexpected items: %+v", page.Items)
	}
}

// ------------------------------------------------------------
// VALIDATION
// ------------------------------------------------------------

func TestReports_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   usecase.GetReportInput
		want error
	}{
		{"bad month", usecase.GetReportInput{Month: "2024-13"}, usecase.ErrInvalidMonth},
		{"month with day", usecase.GetReportInput{Month: "2024-03-01"}, usecase.ErrInvalidMonth},
		{"bad grain", usecase.GetReportInput{Grain: "hourly"}, usecase.ErrInvalidGrain},
		{"bad event type", usecase.GetReportInput{EventType: "CHAT"}, usecase.ErrInvalidReportQuery},
		{"negative limit", usecase.GetReportInput{Limit: -1}, usecase.ErrInvalidReportQuery},
		{"limit too big", usecase.GetReportInput{Limit: usecase.MaxLimit + 1}, usecase.ErrInvalidReportQuery},
		{"negative offset", usecase.GetReportInput{Offset: -5}, usecase.ErrInvalidReportQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &fakeReportReader{}
			uc := usecase.NewGetReportsUseCase(reader)

			_, err := uc.Cohorts(context.Background(), tt.in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if reader.called {
				t.Fatalf("reader must not be called on invalid input")
			}
		})
	}
}

// ------------------------------------------------------------
// READER ERROR
// ------------------------------------------------------------

func TestEngagement_ReaderError(t *testing.T) {
	dbErr := errors.New("db error")
	reader := &fakeReportReader{
		EngagementFn: func(ctx context.Context, flt ports.ReportFilter) ([]domain.EngagementRow, error) {
			return nil, dbErr
		},
	}

	_, err := usecase.NewGetReportsUseCase(reader).Engagement(context.Background(), usecase.GetReportInput{})
	if !errors.Is(err, dbErr) {
		t.Fatalf("expected db error, got %v", err)
	}
}
