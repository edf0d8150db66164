package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRawSource_Load(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			switch {
			case strings.Contains(query, "FROM raw_users"):
				return &fakeRowScanner{rows: [][]any{
					{"u1", "2024-01-02", "Associate"},
					{"u2", nil, nil},
				}}, nil
			case strings.Contains(query, "FROM raw_firms"):
				return &fakeRowScanner{rows: [][]any{
					{"f1", "2023-01-01", 120.0, nil},
				}}, nil
			case strings.Contains(query, "FROM raw_events"):
				return &fakeRowScanner{rows: [][]any{
					{"2024-01-03 09:00:00", "f1", "u1", "ASSISTANT", 3.0, 5.0},
					{"2024-01-04 09:00:00", "f1", "u2", nil, nil, nil},
				}}, nil
			}
			t.Fatalf("unexpected query: %s", query)
			return nil, nil
		},
	}

	raw, err := NewRawSource(db).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(raw.Users) != 2 || len(raw.Firms) != 1 || len(raw.Events) != 2 {
		t.Fatalf("unexpected counts: %d users, %d firms, %d events", len(raw.Users), len(raw.Firms), len(raw.Events))
	}
	if raw.Users[1].Created != "" || raw.Users[1].Title != "" {
		t.Fatalf("NULL columns should read as empty strings, got %+v", raw.Users[1])
	}
	if raw.Firms[0].FirmSize == nil || *raw.Firms[0].FirmSize != 120 {
		t.Fatalf("expected firm size 120, got %v", raw.Firms[0].FirmSize)
	}
	if raw.Firms[0].ARRInThousands != nil {
		t.Fatalf("expected NULL arr to stay nil")
	}
	if raw.Events[1].NumDocs != nil || raw.Events[1].FeedbackScore != nil {
		t.Fatalf("expected NULL numerics to stay nil")
	}
	for _, q := range db.queries {
		if !strings.Contains(q, "ORDER BY seq") {
			t.Fatalf("raw reads must keep arrival order: %s", q)
		}
	}
}

func TestRawSource_Load_QueryError(t *testing.T) {
	boom := errors.New("db error")
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			if strings.Contains(query, "raw_firms") {
				return nil, boom
			}
			return &fakeRowScanner{}, nil
		},
	}

	_, err := NewRawSource(db).Load(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
	if !strings.Contains(err.Error(), "raw_firms") {
		t.Fatalf("expected error to name the table, got %v", err)
	}
}

func TestRawSource_Load_RowsErr(t *testing.T) {
	boom := errors.New("connection reset")
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return &fakeRowScanner{err: boom}, nil
		},
	}

	if _, err := NewRawSource(db).Load(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected rows.Err to surface, got %v", err)
	}
}
