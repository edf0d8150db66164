package postgres

import (
	"context"
)

// RowScanner is the subset of *sql.Rows the report queries read through.
type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DB is the read side of the derived tables written by a pipeline run.
type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}
