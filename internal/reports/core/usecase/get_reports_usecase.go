package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"usage-metrics-service/internal/reports/core/domain"
	"usage-metrics-service/internal/reports/core/ports"
)

var (
	ErrInvalidReportQuery = errors.New("invalid report query")
	ErrInvalidMonth       = errors.New("invalid month, want YYYY-MM")
	ErrInvalidGrain       = errors.New("invalid grain, want daily, weekly or monthly")
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

type GetReportInput struct {
	Month     string // YYYY-MM
	FirmID    string
	UserTitle string
	Grain     string
	EventType string
	Limit     int
	Offset    int
}

type GetReportsUseCase struct {
	reader ports.ReportReaderPort
}

func NewGetReportsUseCase(reader ports.ReportReaderPort) *GetReportsUseCase {
	return &GetReportsUseCase{reader: reader}
}

func (uc *GetReportsUseCase) Engagement(ctx context.Context, in GetReportInput) (domain.Page[domain.EngagementRow], error) {
	return query(ctx, in, uc.reader.Engagement)
}

func (uc *GetReportsUseCase) Cohorts(ctx context.Context, in GetReportInput) (domain.Page[domain.CohortRow], error) {
	return query(ctx, in, uc.reader.Cohorts)
}

func (uc *GetReportsUseCase) FirmHealth(ctx context.Context, in GetReportInput) (domain.Page[domain.FirmHealthRow], error) {
	return query(ctx, in, uc.reader.FirmHealth)
}

func (uc *GetReportsUseCase) EventPerformance(ctx context.Context, in GetReportInput) (domain.Page[domain.PerformanceRow], error) {
	return query(ctx, in, uc.reader.EventPerformance)
}

func query[T any](
	ctx context.Context,
	in GetReportInput,
	read func(context.Context, ports.ReportFilter) ([]T, error),
) (domain.Page[T], error) {
	filter, err := toFilter(in)
	if err != nil {
		return domain.Page[T]{}, err
	}

	items, err := read(ctx, filter)
	if err != nil {
		return domain.Page[T]{}, err
	}
	if items == nil {
		items = []T{}
	}

	return domain.Page[T]{Items: items, Limit: filter.Limit, Offset: filter.Offset}, nil
}

// toFilter validates the input and fills defaults.
func toFilter(in GetReportInput) (ports.ReportFilter, error) {
	f := ports.ReportFilter{
		FirmID:    strings.TrimSpace(in.FirmID),
		UserTitle: strings.TrimSpace(in.UserTitle),
		Limit:     in.Limit,
		Offset:    in.Offset,
	}

	if m := strings.TrimSpace(in.Month); m != "" {
		t, err := time.Parse("2006-01", m)
		if err != nil {
			return f, fmt.Errorf("%w: %q", ErrInvalidMonth, in.Month)
		}
		f.Month = &t
	}

	switch g := strings.ToLower(strings.TrimSpace(in.Grain)); g {
	case "", "daily", "weekly", "monthly":
		f.Grain = g
	default:
		return f, fmt.Errorf("%w: %q", ErrInvalidGrain, in.Grain)
	}

	switch et := strings.ToUpper(strings.TrimSpace(in.EventType)); et {
	case "", "ASSISTANT", "VAULT", "WORKFLOW", "OTHER":
		f.EventType = et
	default:
		return f, fmt.Errorf("%w: unknown event_type %q", ErrInvalidReportQuery, in.EventType)
	}

	if f.Limit < 0 || f.Limit > MaxLimit {
		return f, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidReportQuery, MaxLimit)
	}
	if f.Limit == 0 {
		f.Limit = DefaultLimit
	}
	if f.Offset < 0 {
		return f, fmt.Errorf("%w: offset must not be negative", ErrInvalidReportQuery)
	}

	return f, nil
}
