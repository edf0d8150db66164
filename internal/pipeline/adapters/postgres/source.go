package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"usage-metrics-service/internal/pipeline/core/domain"
	"usage-metrics-service/internal/pipeline/core/ports"
)

// RawSource reads the raw tables filled by the ingest API. Rows come back
// in arrival order so the cleaner's first-wins rule means first ingested.
type RawSource struct {
	db DB
}

func NewRawSource(db DB) *RawSource {
	return &RawSource{db: db}
}

var _ ports.RawRecordSource = (*RawSource)(nil)

const (
	selectRawUsersSQL = `
SELECT user_id, created, title
FROM raw_users
ORDER BY seq`

	selectRawFirmsSQL = `
SELECT firm_id, created, firm_size, arr_in_thousands
FROM raw_firms
ORDER BY seq`

	selectRawEventsSQL = `
SELECT created, firm_id, user_id, event_type, num_docs, feedback_score
FROM raw_events
ORDER BY seq`
)

func (s *RawSource) Load(ctx context.Context) (domain.RawRecords, error) {
	var out domain.RawRecords

	err := s.each(ctx, selectRawUsersSQL, func(rows RowScanner) error {
		var id, created, title sql.NullString
		if err := rows.Scan(&id, &created, &title); err != nil {
			return err
		}
		out.Users = append(out.Users, domain.RawUser{ID: id.String, Created: created.String, Title: title.String})
		return nil
	})
	if err != nil {
		return out, fmt.Errorf("load raw_users: %w", err)
	}

	err = s.each(ctx, selectRawFirmsSQL, func(rows RowScanner) error {
		var id, created sql.NullString
		var size, arr sql.NullFloat64
		if err := rows.Scan(&id, &created, &size, &arr); err != nil {
			return err
		}
		out.Firms = append(out.Firms, domain.RawFirm{
			ID:             id.String,
			Created:        created.String,
			FirmSize:       nullFloat(size),
			ARRInThousands: nullFloat(arr),
		})
		return nil
	})
	if err != nil {
		return out, fmt.Errorf("load raw_firms: %w", err)
	}

	err = s.each(ctx, selectRawEventsSQL, func(rows RowScanner) error {
		var created, firmID, userID, eventType sql.NullString
		var docs, feedback sql.NullFloat64
		if err := rows.Scan(&created, &firmID, &userID, &eventType, &docs, &feedback); err != nil {
			return err
		}
		out.Events = append(out.Events, domain.RawEvent{
			Created:       created.String,
			FirmID:        firmID.String,
			UserID:        userID.String,
			EventType:     eventType.String,
			NumDocs:       nullFloat(docs),
			FeedbackScore: nullFloat(feedback),
		})
		return nil
	})
	if err != nil {
		return out, fmt.Errorf("load raw_events: %w", err)
	}

	return out, nil
}

func (s *RawSource) each(ctx context.Context, query string, scan func(RowScanner) error) error {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
