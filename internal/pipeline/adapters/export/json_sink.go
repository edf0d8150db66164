package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"usage-metrics-service/internal/pipeline/core/domain"
)

// JSONSink writes the whole report, stats included, as a single document.
type JSONSink struct {
	Path string
}

func NewJSONSink(path string) *JSONSink {
	return &JSONSink{Path: path}
}

type jsonReport struct {
	RunID       string                      `json:"run_id"`
	GeneratedAt string                      `json:"generated_at"`
	Stats       domain.RunStats             `json:"stats"`
	Tables      map[string][]map[string]any `json:"tables"`
}

func (s *JSONSink) WriteReport(ctx context.Context, r *domain.Report) error {
	doc := jsonReport{
		RunID:       r.RunID,
		GeneratedAt: formatCell(r.GeneratedAt),
		Stats:       r.Stats,
		Tables:      map[string][]map[string]any{},
	}
	for _, td := range r.Tables.Tabular() {
		rows := make([]map[string]any, 0, len(td.Rows))
		for _, row := range td.Rows {
			m := make(map[string]any, len(td.Columns))
			for i, c := range td.Columns {
				m[c] = jsonCell(row[i])
			}
			rows = append(rows, m)
		}
		doc.Tables[td.Name] = rows
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	if err := os.WriteFile(s.Path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.Path, err)
	}
	return nil
}

// jsonCell keeps numbers and booleans typed and renders times like the
// CSV export.
func jsonCell(v any) any {
	switch v.(type) {
	case nil, string, int64, float64, bool:
		return v
	default:
		return formatCell(v)
	}
}
