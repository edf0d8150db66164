package postgres

import (
	"context"
	"database/sql"
	"time"
)

// reportRows releases the query deadline together with the rows.
type reportRows struct {
	*sql.Rows
	cancel context.CancelFunc
}

func (r *reportRows) Close() error {
	err := r.Rows.Close()
	r.cancel()
	return err
}

// reportStore bounds each report query, including the scan of its rows,
// by timeout. A zero timeout leaves the caller's context untouched.
type reportStore struct {
	db      *sql.DB
	timeout time.Duration
}

func NewSQLDB(db *sql.DB, timeout time.Duration) DB {
	return &reportStore{db: db, timeout: timeout}
}

func (s *reportStore) QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		cancel()
		return nil, err
	}
	return &reportRows{Rows: rows, cancel: cancel}, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
