package postgres

import (
	"context"
	"database/sql"

	"usage-metrics-service/internal/ingest/core/domain"
	"usage-metrics-service/internal/ingest/core/ports"
)

type RawRecordRepository struct {
	db DB
}

func NewRawRecordRepository(db DB) *RawRecordRepository {
	return &RawRecordRepository{db: db}
}

var _ ports.RawRecordRepositoryPort = (*RawRecordRepository)(nil)

// SQL templates
const (
	insertRawUserSQL = `
INSERT INTO raw_users (
    user_id,
    created,
    title,
    dedupe_key,
    ingested_at
) VALUES (
    $1, $2, $3, $4, $5
)
ON CONFLICT (dedupe_key) DO NOTHING;
`

	insertRawFirmSQL = `
INSERT INTO raw_firms (
    firm_id,
    created,
    firm_size,
    arr_in_thousands,
    dedupe_key,
    ingested_at
) VALUES (
    $1, $2, $3, $4, $5, $6
)
ON CONFLICT (dedupe_key) DO NOTHING;
`

	insertRawEventSQL = `
INSERT INTO raw_events (
    created,
    firm_id,
    user_id,
    event_type,
    num_docs,
    feedback_score,
    dedupe_key,
    ingested_at
) VALUES (
    $1, $2, $3, $4,
    $5, $6, $7, $8
)
ON CONFLICT (dedupe_key) DO NOTHING;
`
)

func (r *RawRecordRepository) InsertUser(ctx context.Context, u *domain.RawUser) (bool, error) {
	return r.exec(ctx, insertRawUserSQL,
		nullString(u.ID),
		nullString(u.Created),
		nullString(u.Title),
		u.DedupeKey,
		u.IngestedAt,
	)
}

func (r *RawRecordRepository) InsertFirm(ctx context.Context, f *domain.RawFirm) (bool, error) {
	return r.exec(ctx, insertRawFirmSQL,
		nullString(f.ID),
		nullString(f.Created),
		nullFloat(f.FirmSize),
		nullFloat(f.ARRInThousands),
		f.DedupeKey,
		f.IngestedAt,
	)
}

func (r *RawRecordRepository) InsertEvent(ctx context.Context, e *domain.RawEvent) (bool, error) {
	return r.exec(ctx, insertRawEventSQL,
		nullString(e.Created),
		nullString(e.FirmID),
		nullString(e.UserID),
		nullString(e.EventType),
		nullFloat(e.NumDocs),
		nullFloat(e.FeedbackScore),
		e.DedupeKey,
		e.IngestedAt,
	)
}

func (r *RawRecordRepository) exec(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	// rows == 1  -> new record
	// rows == 0  -> duplicate (ON CONFLICT DO NOTHING)
	return rows > 0, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
