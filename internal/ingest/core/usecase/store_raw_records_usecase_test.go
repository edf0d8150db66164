package usecase

import (
	"context"
	"errors"
	"testing"

	"usage-metrics-service/internal/ingest/core/domain"
)

// Fake repo
type fakeRepo struct {
	Users   []*domain.RawUser
	Firms   []*domain.RawFirm
	Events  []*domain.RawEvent
	Err     error
	FailAt  int
	seen    map[string]bool
	inserts int
}

func (f *fakeRepo) insert(key string) (bool, error) {
	f.inserts++
	if f.Err != nil && f.inserts >= f.FailAt {
		return false, f.Err
	}
	if f.seen == nil {
		f.seen = map[string]bool{}
	}
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	return true, nil
}

func (f *fakeRepo) InsertUser(ctx context.Context, u *domain.RawUser) (bool, error) {
	f.Users = append(f.Users, u)
	return f.insert(u.DedupeKey)
}

func (f *fakeRepo) InsertFirm(ctx context.Context, fm *domain.RawFirm) (bool, error) {
	f.Firms = append(f.Firms, fm)
	return f.insert(fm.DedupeKey)
}

func (f *fakeRepo) InsertEvent(ctx context.Context, e *domain.RawEvent) (bool, error) {
	f.Events = append(f.Events, e)
	return f.insert(e.DedupeKey)
}

func num(v float64) *float64 { return &v }

// ------------------------------------------------------------
// USERS
// ------------------------------------------------------------

func TestStoreUsers_CountsDuplicates(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewStoreRawRecordsUseCase(repo, 100)

	res, err := uc.StoreUsers(context.Background(), []RawUserInput{
		{ID: "u1", Created: "2024-01-02", Title: "Associate"},
		{ID: "u1", Created: "2024-01-02", Title: "Associate"},
		{ID: "u1", Created: "2024-01-02", Title: "Partner"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Created != 2 || res.Duplicates != 1 {
		t.Fatalf("expected created=2 duplicates=1, got %+v", res)
	}
	if repo.Users[0].DedupeKey == repo.Users[2].DedupeKey {
		t.Fatalf("rows that differ in any field must get different keys")
	}
	if repo.Users[0].IngestedAt.IsZero() {
		t.Fatalf("expected ingested_at to be set")
	}
}

// ------------------------------------------------------------
// FIRMS / EVENTS keep messy values as-is
// ------------------------------------------------------------

func TestStoreFirms_KeepsRawValues(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewStoreRawRecordsUseCase(repo, 0)

	_, err := uc.StoreFirms(context.Background(), []RawFirmInput{
		{ID: "f1", Created: "not a date", FirmSize: num(-3)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.Firms[0].Created != "not a date" || *repo.Firms[0].FirmSize != -3 || repo.Firms[0].ARRInThousands != nil {
		t.Fatalf("raw values must be stored untouched, got %+v", repo.Firms[0])
	}
}

func TestStoreEvents_NilAndZeroAreDifferentRows(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewStoreRawRecordsUseCase(repo, 10)

	res, err := uc.StoreEvents(context.Background(), []RawEventInput{
		{Created: "2024-01-03", FirmID: "f1", UserID: "u1", EventType: "ASSISTANT"},
		{Created: "2024-01-03", FirmID: "f1", UserID: "u1", EventType: "ASSISTANT", NumDocs: num(0)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Created != 2 {
		t.Fatalf("expected both events created, got %+v", res)
	}
}

// ------------------------------------------------------------
// VALIDATION
// ------------------------------------------------------------

func TestStore_EmptyBatch(t *testing.T) {
	uc := NewStoreRawRecordsUseCase(&fakeRepo{}, 10)

	if _, err := uc.StoreUsers(context.Background(), nil); !errors.Is(err, ErrEmptyBatch) {
		t.Fatalf("expected ErrEmptyBatch, got %v", err)
	}
}

func TestStore_BatchTooLarge(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewStoreRawRecordsUseCase(repo, 1)

	_, err := uc.StoreEvents(context.Background(), []RawEventInput{{UserID: "a"}, {UserID: "b"}})
	if !errors.Is(err, ErrBatchTooLarge) {
		t.Fatalf("expected ErrBatchTooLarge, got %v", err)
	}
	if len(repo.Events) != 0 {
		t.Fatalf("nothing should be written for an oversized batch")
	}
}

// ------------------------------------------------------------
// DB ERROR
// ------------------------------------------------------------

func TestStore_RepoErrorStopsBatch(t *testing.T) {
	boom := errors.New("db error")
	repo := &fakeRepo{Err: boom, FailAt: 2}
	uc := NewStoreRawRecordsUseCase(repo, 10)

	res, err := uc.StoreUsers(context.Background(), []RawUserInput{{ID: "u1"}, {ID: "u2"}, {ID: "u3"}})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
	if res.Created != 1 {
		t.Fatalf("expected the first insert to be counted, got %+v", res)
	}
	if len(repo.Users) != 2 {
		t.Fatalf("expected the batch to stop at the failing row, got %d inserts", len(repo.Users))
	}
}

func TestBuildDedupeKey_Stable(t *testing.T) {
	a := buildDedupeKey("u1", "2024-01-02", "Associate")
	b := buildDedupeKey("u1", "2024-01-02", "Associate")
	if a != b {
		t.Fatalf("expected stable key, got %s and %s", a, b)
	}
	if buildDedupeKey("u1", "") == buildDedupeKey("u1") {
		t.Fatalf("field count must affect the key")
	}
}
