package ports

import (
	"context"

	"usage-metrics-service/internal/pipeline/core/domain"
)

type ReportSink interface {
	// WriteReport persists every derived table of one run. A sink either
	// writes all tables or returns an error.
	WriteReport(ctx context.Context, r *domain.Report) error
}
