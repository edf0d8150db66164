package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"usage-metrics-service/internal/pipeline/core/domain"
)

const runSheet = "run"

// XLSXSink writes one workbook with a sheet per derived table plus a run
// sheet holding the run id and cleaning stats.
type XLSXSink struct {
	Path string
}

func NewXLSXSink(path string) *XLSXSink {
	return &XLSXSink{Path: path}
}

func (s *XLSXSink) WriteReport(ctx context.Context, r *domain.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), runSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeRunSheet(f, r); err != nil {
		return err
	}

	for _, td := range r.Tables.Tabular() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeSheet(f, td); err != nil {
			return err
		}
	}

	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	if err := f.SaveAs(s.Path); err != nil {
		return fmt.Errorf("save %s: %w", s.Path, err)
	}
	return nil
}

func writeRunSheet(f *excelize.File, r *domain.Report) error {
	rows := [][]any{
		{"run_id", r.RunID},
		{"generated_at", formatCell(r.GeneratedAt)},
		{"users_input", int64(r.Stats.Users.Input)},
		{"users_kept", int64(r.Stats.Users.Kept)},
		{"firms_input", int64(r.Stats.Firms.Input)},
		{"firms_kept", int64(r.Stats.Firms.Kept)},
		{"events_input", int64(r.Stats.Events.Input)},
		{"events_kept", int64(r.Stats.Events.Kept)},
		{"events_joined", int64(r.Stats.Join.Joined)},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(runSheet, cell, &row); err != nil {
			return fmt.Errorf("write run sheet: %w", err)
		}
	}
	return nil
}

func writeSheet(f *excelize.File, td domain.TableData) error {
	if _, err := f.NewSheet(td.Name); err != nil {
		return fmt.Errorf("new sheet %s: %w", td.Name, err)
	}

	header := make([]any, len(td.Columns))
	for i, c := range td.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(td.Name, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", td.Name, err)
	}

	for i, row := range td.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(td.Name, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", td.Name, i+1, err)
		}
	}
	return nil
}
