// Package csvfile reads the raw users, firms and events exports.
//
// Headers are matched case-insensitively against the export column names
// (ID, CREATED, TITLE, ...). Unknown columns are ignored.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"usage-metrics-service/internal/pipeline/core/domain"
	"usage-metrics-service/internal/platform/logging"
)

var ErrMissingColumn = errors.New("missing required column")

type Source struct {
	UsersPath  string
	FirmsPath  string
	EventsPath string
}

func NewSource(users, firms, events string) *Source {
	return &Source{UsersPath: users, FirmsPath: firms, EventsPath: events}
}

func (s *Source) Load(ctx context.Context) (domain.RawRecords, error) {
	var (
		out domain.RawRecords
		err error
	)

	if out.Users, err = readFile(ctx, s.UsersPath, ReadUsers); err != nil {
		return out, err
	}
	if out.Firms, err = readFile(ctx, s.FirmsPath, ReadFirms); err != nil {
		return out, err
	}
	if out.Events, err = readFile(ctx, s.EventsPath, ReadEvents); err != nil {
		return out, err
	}
	return out, nil
}

func readFile[T any](ctx context.Context, path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

func ReadUsers(r io.Reader) ([]domain.RawUser, error) {
	var out []domain.RawUser
	err := scan(r, []string{"ID"}, func(row record) {
		out = append(out, domain.RawUser{
			ID:      row.str("ID"),
			Created: row.str("CREATED"),
			Title:   row.str("TITLE"),
		})
	})
	return out, err
}

func ReadFirms(r io.Reader) ([]domain.RawFirm, error) {
	var out []domain.RawFirm
	err := scan(r, []string{"ID"}, func(row record) {
		out = append(out, domain.RawFirm{
			ID:             row.str("ID"),
			Created:        row.str("CREATED"),
			FirmSize:       row.num("FIRM_SIZE"),
			ARRInThousands: row.num("ARR_IN_THOUSANDS"),
		})
	})
	return out, err
}

func ReadEvents(r io.Reader) ([]domain.RawEvent, error) {
	var out []domain.RawEvent
	err := scan(r, []string{"CREATED", "FIRM_ID", "USER_ID"}, func(row record) {
		out = append(out, domain.RawEvent{
			Created:       row.str("CREATED"),
			FirmID:        row.str("FIRM_ID"),
			UserID:        row.str("USER_ID"),
			EventType:     row.str("EVENT_TYPE"),
			NumDocs:       row.num("NUM_DOCS"),
			FeedbackScore: row.num("FEEDBACK_SCORE"),
		})
	})
	return out, err
}

type record struct {
	cols   map[string]int
	fields []string
}

func (r record) str(col string) string {
	i, ok := r.cols[col]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

// num returns nil for empty or non-numeric cells.
func (r record) num(col string) *float64 {
	s := r.str(col)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func scan(r io.Reader, required []string, fn func(record)) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return fmt.Errorf("header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		cols[h] = i
	}
	for _, c := range required {
		if _, ok := cols[c]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}

	skipped := 0
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			skipped++
			logging.Warn().Err(err).Int("line", perr.StartLine).Msg("skipping malformed csv row")
			continue
		}
		if err != nil {
			return err
		}
		fn(record{cols: cols, fields: fields})
	}
	if skipped > 0 {
		logging.Warn().Int("skipped", skipped).Msg("csv rows skipped")
	}
	return nil
}
