package postgres

import (
	"context"
	"database/sql"
	"errors"
)

// fakeRowScanner implements RowScanner over in-memory rows.
type fakeRowScanner struct {
	rows [][]any
	i    int
	err  error
}

func (f *fakeRowScanner) Next() bool {
	return f.i < len(f.rows)
}

func (f *fakeRowScanner) Scan(dest ...any) error {
	row := f.rows[f.i]
	if len(dest) != len(row) {
		return errors.New("dest length mismatch")
	}
	for i := range dest {
		switch d := dest[i].(type) {
		case *sql.NullString:
			if row[i] == nil {
				*d = sql.NullString{}
				continue
			}
			v, ok := row[i].(string)
			if !ok {
				return errors.New("type assertion to string failed")
			}
			*d = sql.NullString{String: v, Valid: true}
		case *sql.NullFloat64:
			if row[i] == nil {
				*d = sql.NullFloat64{}
				continue
			}
			v, ok := row[i].(float64)
			if !ok {
				return errors.New("type assertion to float64 failed")
			}
			*d = sql.NullFloat64{Float64: v, Valid: true}
		default:
			return errors.New("unsupported dest type")
		}
	}
	f.i++
	return nil
}

func (f *fakeRowScanner) Err() error {
	return f.err
}

func (f *fakeRowScanner) Close() error {
	return nil
}

type fakeResult struct{}

func (fakeResult) LastInsertId() (int64, error) { return 0, errors.New("not implemented") }
func (fakeResult) RowsAffected() (int64, error) { return 1, nil }

type fakeStmt struct {
	query  string
	rows   [][]any
	closed bool
}

func (s *fakeStmt) ExecContext(ctx context.Context, args ...any) (sql.Result, error) {
	if len(args) > 0 {
		s.rows = append(s.rows, args)
	}
	return fakeResult{}, nil
}

func (s *fakeStmt) Close() error {
	s.closed = true
	return nil
}

type fakeTx struct {
	ExecFn func(query string, args ...any) error

	execs      []string
	execArgs   [][]any
	stmts      []*fakeStmt
	committed  bool
	rolledBack bool
}

func (t *fakeTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	t.execs = append(t.execs, query)
	t.execArgs = append(t.execArgs, args)
	if t.ExecFn != nil {
		if err := t.ExecFn(query, args...); err != nil {
			return nil, err
		}
	}
	return fakeResult{}, nil
}

func (t *fakeTx) PrepareContext(ctx context.Context, query string) (Stmt, error) {
	s := &fakeStmt{query: query}
	t.stmts = append(t.stmts, s)
	return s, nil
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

// fakeDB implements DB.
type fakeDB struct {
	QueryFn func(ctx context.Context, query string, args ...any) (RowScanner, error)
	tx      *fakeTx
	queries []string
}

func (f *fakeDB) QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error) {
	f.queries = append(f.queries, query)
	return f.QueryFn(ctx, query, args...)
}

func (f *fakeDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (Tx, error) {
	if f.tx == nil {
		f.tx = &fakeTx{}
	}
	return f.tx, nil
}
