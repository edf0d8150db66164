package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"usage-metrics-service/internal/pipeline/core/domain"
)

// CSVSink writes one <table>.csv per derived table into Dir.
type CSVSink struct {
	Dir string
}

func NewCSVSink(dir string) *CSVSink {
	return &CSVSink{Dir: dir}
}

func (s *CSVSink) WriteReport(ctx context.Context, r *domain.Report) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	for _, td := range r.Tables.Tabular() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeCSV(filepath.Join(s.Dir, td.Name+".csv"), td); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(path string, td domain.TableData) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(td.Columns); err != nil {
		return fmt.Errorf("write %s header: %w", td.Name, err)
	}
	line := make([]string, len(td.Columns))
	for _, row := range td.Rows {
		for i, v := range row {
			line[i] = formatCell(v)
		}
		if err := w.Write(line); err != nil {
			return fmt.Errorf("write %s: %w", td.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", td.Name, err)
	}
	return nil
}
