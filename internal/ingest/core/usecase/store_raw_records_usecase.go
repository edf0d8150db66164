package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"usage-metrics-service/internal/ingest/core/domain"
	"usage-metrics-service/internal/ingest/core/ports"
	"usage-metrics-service/internal/platform/metrics"
)

var (
	ErrEmptyBatch    = errors.New("batch is empty")
	ErrBatchTooLarge = errors.New("batch exceeds max size")
)

const (
	TableRawUsers  = "raw_users"
	TableRawFirms  = "raw_firms"
	TableRawEvents = "raw_events"
)

// dedupeNamespace scopes the name-based UUIDs used as dedupe keys.
var dedupeNamespace = uuid.MustParse("3b0c4a52-8f0e-4c0f-9d35-5a4c6c1f7e20")

type StoreRawRecordsUseCase struct {
	repo         ports.RawRecordRepositoryPort
	maxBatchSize int
	now          func() time.Time
}

func NewStoreRawRecordsUseCase(repo ports.RawRecordRepositoryPort, maxBatchSize int) *StoreRawRecordsUseCase {
	return &StoreRawRecordsUseCase{
		repo:         repo,
		maxBatchSize: maxBatchSize,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

type RawUserInput struct {
	ID      string
	Created string
	Title   string
}

type RawFirmInput struct {
	ID             string
	Created        string
	FirmSize       *float64
	ARRInThousands *float64
}

type RawEventInput struct {
	Created       string
	FirmID        string
	UserID        string
	EventType     string
	NumDocs       *float64
	FeedbackScore *float64
}

type BulkResult struct {
	Created    int
	Duplicates int
}

func (uc *StoreRawRecordsUseCase) StoreUsers(ctx context.Context, in []RawUserInput) (BulkResult, error) {
	if err := uc.checkBatch(len(in)); err != nil {
		return BulkResult{}, err
	}
	now := uc.now()
	return store(ctx, TableRawUsers, in, func(ctx context.Context, u RawUserInput) (bool, error) {
		return uc.repo.InsertUser(ctx, &domain.RawUser{
			ID:         u.ID,
			Created:    u.Created,
			Title:      u.Title,
			DedupeKey:  buildDedupeKey(u.ID, u.Created, u.Title),
			IngestedAt: now,
		})
	})
}

func (uc *StoreRawRecordsUseCase) StoreFirms(ctx context.Context, in []RawFirmInput) (BulkResult, error) {
	if err := uc.checkBatch(len(in)); err != nil {
		return BulkResult{}, err
	}
	now := uc.now()
	return store(ctx, TableRawFirms, in, func(ctx context.Context, f RawFirmInput) (bool, error) {
		return uc.repo.InsertFirm(ctx, &domain.RawFirm{
			ID:             f.ID,
			Created:        f.Created,
			FirmSize:       f.FirmSize,
			ARRInThousands: f.ARRInThousands,
			DedupeKey:      buildDedupeKey(f.ID, f.Created, floatKey(f.FirmSize), floatKey(f.ARRInThousands)),
			IngestedAt:     now,
		})
	})
}

func (uc *StoreRawRecordsUseCase) StoreEvents(ctx context.Context, in []RawEventInput) (BulkResult, error) {
	if err := uc.checkBatch(len(in)); err != nil {
		return BulkResult{}, err
	}
	now := uc.now()
	return store(ctx, TableRawEvents, in, func(ctx context.Context, e RawEventInput) (bool, error) {
		return uc.repo.InsertEvent(ctx, &domain.RawEvent{
			Created:       e.Created,
			FirmID:        e.FirmID,
			UserID:        e.UserID,
			EventType:     e.EventType,
			NumDocs:       e.NumDocs,
			FeedbackScore: e.FeedbackScore,
			DedupeKey: buildDedupeKey(e.Created, e.FirmID, e.UserID, e.EventType,
				floatKey(e.NumDocs), floatKey(e.FeedbackScore)),
			IngestedAt: now,
		})
	})
}

func store[T any](ctx context.Context, table string, in []T, insert func(context.Context, T) (bool, error)) (BulkResult, error) {
	var res BulkResult
	defer func() { metrics.RecordIngest(table, res.Created, res.Duplicates) }()

	for _, item := range in {
		created, err := insert(ctx, item)
		if err != nil {
			return res, fmt.Errorf("insert %s: %w", table, err)
		}
		if created {
			res.Created++
		} else {
			res.Duplicates++
		}
	}
	return res, nil
}

func (uc *StoreRawRecordsUseCase) checkBatch(n int) error {
	if n == 0 {
		return ErrEmptyBatch
	}
	if uc.maxBatchSize > 0 && n > uc.maxBatchSize {
		return fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, n, uc.maxBatchSize)
	}
	return nil
}

// buildDedupeKey hashes every field of a row, so only exact resubmissions
// collide.
func buildDedupeKey(fields ...string) string {
	var b []byte
	for i, f := range fields {
		if i > 0 {
			b = append(b, '|')
		}
		b = append(b, f...)
	}
	return uuid.NewSHA1(dedupeNamespace, b).String()
}

func floatKey(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
