package postgres

import (
	"context"
	"database/sql"
	"time"
)

// rawStore bounds every raw insert by timeout. A zero timeout leaves the
// caller's context untouched.
type rawStore struct {
	db      *sql.DB
	timeout time.Duration
}

func NewSQLDB(db *sql.DB, timeout time.Duration) DB {
	return &rawStore{db: db, timeout: timeout}
}

func (s *rawStore) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	return s.db.ExecContext(ctx, query, args...)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
