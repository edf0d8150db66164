package postgres

import (
	"context"
	"database/sql"
)

// DB is the write side of the raw tables. Every insert ends in
// ON CONFLICT (dedupe_key) DO NOTHING, so RowsAffected on the result
// separates new rows from resubmissions.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
