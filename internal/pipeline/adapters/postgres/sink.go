package postgres

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/lib/pq"

	"usage-metrics-service/internal/pipeline/core/domain"
	"usage-metrics-service/internal/pipeline/core/ports"
)

// ReportSink replaces every derived table inside a single transaction and
// records the run in pipeline_runs. Readers see either the previous run or
// this one, never a mix.
type ReportSink struct {
	db DB
}

func NewReportSink(db DB) *ReportSink {
	return &ReportSink{db: db}
}

var _ ports.ReportSink = (*ReportSink)(nil)

const insertRunSQL = `
INSERT INTO pipeline_runs (run_id, generated_at, stats, row_counts)
VALUES ($1, $2, $3, $4)`

func (s *ReportSink) WriteReport(ctx context.Context, r *domain.Report) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, td := range r.Tables.Tabular() {
		if err := replaceTable(ctx, tx, td); err != nil {
			return err
		}
	}

	stats, err := json.Marshal(r.Stats)
	if err != nil {
		return fmt.Errorf("encode run stats: %w", err)
	}
	counts, err := json.Marshal(r.Tables.RowCounts())
	if err != nil {
		return fmt.Errorf("encode row counts: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insertRunSQL, r.RunID, r.GeneratedAt, stats, counts); err != nil {
		return fmt.Errorf("insert pipeline run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// replaceTable truncates td.Name and bulk loads it with COPY.
func replaceTable(ctx context.Context, tx Tx, td domain.TableData) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+pq.QuoteIdentifier(td.Name)); err != nil {
		return fmt.Errorf("clear %s: %w", td.Name, err)
	}
	if len(td.Rows) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(td.Name, td.Columns...))
	if err != nil {
		return fmt.Errorf("prepare copy %s: %w", td.Name, err)
	}
	defer stmt.Close()

	for _, row := range td.Rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("copy %s: %w", td.Name, err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		return fmt.Errorf("flush copy %s: %w", td.Name, err)
	}
	return nil
}
