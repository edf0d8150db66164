package ports

import (
	"context"

	"usage-metrics-service/internal/ingest/core/domain"
)

type RawRecordRepositoryPort interface {
	// Insert*:
	//   created = true,  err = nil  -> new record
	//   created = false, err = nil  -> duplicate (idempotent)
	//   created = false, err != nil -> DB error
	InsertUser(ctx context.Context, u *domain.RawUser) (created bool, err error)
	InsertFirm(ctx context.Context, f *domain.RawFirm) (created bool, err error)
	InsertEvent(ctx context.Context, e *domain.RawEvent) (created bool, err error)
}
