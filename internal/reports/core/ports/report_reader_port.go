package ports

import (
	"context"
	"time"

	"usage-metrics-service/internal/reports/core/domain"
)

type ReportFilter struct {
	Month     *time.Time // first day of month, optional
	FirmID    string
	UserTitle string
	Grain     string // "", "daily", "weekly", "monthly"
	EventType string
	Limit     int
	Offset    int
}

type ReportReaderPort interface {
	Engagement(ctx context.Context, f ReportFilter) ([]domain.EngagementRow, error)
	Cohorts(ctx context.Context, f ReportFilter) ([]domain.CohortRow, error)
	FirmHealth(ctx context.Context, f ReportFilter) ([]domain.FirmHealthRow, error)
	EventPerformance(ctx context.Context, f ReportFilter) ([]domain.PerformanceRow, error)
}
