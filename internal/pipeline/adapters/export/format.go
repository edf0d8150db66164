// Package export writes a pipeline report to local files as CSV, XLSX or
// JSON.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"usage-metrics-service/internal/pipeline/core/ports"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatJSON = "json"
)

// NewSink picks a sink by format name. out is a directory for csv and a
// file path for xlsx and json.
func NewSink(format, out string) (ports.ReportSink, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return NewCSVSink(out), nil
	case FormatXLSX:
		return NewXLSXSink(out), nil
	case FormatJSON:
		return NewJSONSink(out), nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// formatCell renders a table cell as text. Dates at midnight print as
// dates, everything else as RFC3339.
func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		if x.Equal(time.Date(x.Year(), x.Month(), x.Day(), 0, 0, 0, 0, x.Location())) {
			return x.Format(time.DateOnly)
		}
		return x.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}
