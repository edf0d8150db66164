package ports

import (
	"context"

	"usage-metrics-service/internal/pipeline/core/domain"
)

// RawRecordSource hands the pipeline a full snapshot of raw users, firms
// and events. Each run recomputes everything from this snapshot.
type RawRecordSource interface {
	Load(ctx context.Context) (domain.RawRecords, error)
}
