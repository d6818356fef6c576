package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tbourn/go-portfolio-backend/internal/domain"
)

func TestCreateGuestbookEntry_AssignsIDAndTime(t *testing.T) {
	db := newTestDB(t, &domain.GuestbookEntry{})
	before := time.Now().UTC().Add(-time.Second)

	e, err := CreateGuestbookEntry(context.Background(), db, "Sarah Chen", "Great work!")
	if err != nil {
		t.Fatalf("CreateGuestbookEntry: %v", err)
	}
	if len(e.ID) != 26 {
		t.Fatalf("expected 26-char ULID, got %q", e.ID)
	}
	if e.CreatedAt.Before(before) || e.CreatedAt.Location() != time.UTC {
		t.Fatalf("unexpected CreatedAt %v", e.CreatedAt)
	}
	if e.Name != "Sarah Chen" || e.Message != "Great work!" {
		t.Fatalf("fields changed: %+v", e)
	}

	got, err := GetGuestbookEntry(context.Background(), db, e.ID)
	if err != nil {
		t.Fatalf("GetGuestbookEntry: %v", err)
	}
	if got.ID != e.ID || got.Name != e.Name {
		t.Fatalf("readback mismatch: %+v", got)
	}
}

func TestNewULID_MonotonicWithinMillisecond(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prev := newULID(ts)
	for i := 0; i < 100; i++ {
		next := newULID(ts)
		if next <= prev {
			t.Fatalf("ulid not increasing: %s <= %s", next, prev)
		}
		prev = next
	}
}

func TestListGuestbookEntries_NewestFirst(t *testing.T) {
	db := newTestDB(t, &domain.GuestbookEntry{})
	t1 := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	t2 := time.Date(2024, 1, 18, 14, 20, 0, 0, time.UTC)
	t3 := time.Date(2024, 1, 22, 9, 15, 0, 0, time.UTC)

	// inserted out of order on purpose
	seed := []domain.GuestbookEntry{
		{Name: "b", Message: "two", CreatedAt: t2},
		{Name: "c", Message: "three", CreatedAt: t3},
		{Name: "a", Message: "one", CreatedAt: t1},
	}
	if err := InsertGuestbookEntries(context.Background(), db, seed); err != nil {
		t.Fatalf("InsertGuestbookEntries: %v", err)
	}

	got, err := ListGuestbookEntries(context.Background(), db)
	if err != nil {
		t.Fatalf("ListGuestbookEntries: %v", err)
	}
	if len(got) != 3 || got[0].Name != "c" || got[1].Name != "b" || got[2].Name != "a" {
		t.Fatalf("unexpected order: %+v", got)
	}

	again, err := ListGuestbookEntries(context.Background(), db)
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	for i := range got {
		if got[i].ID != again[i].ID {
			t.Fatalf("consecutive lists differ at %d: %s vs %s", i, got[i].ID, again[i].ID)
		}
	}
}

func TestListGuestbookEntries_TiesBrokenByID(t *testing.T) {
	db := newTestDB(t, &domain.GuestbookEntry{})
	same := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	seed := []domain.GuestbookEntry{
		{ID: "01AAAAAAAAAAAAAAAAAAAAAAAA", Name: "first", Message: "m", CreatedAt: same},
		{ID: "01BBBBBBBBBBBBBBBBBBBBBBBB", Name: "second", Message: "m", CreatedAt: same},
	}
	if err := InsertGuestbookEntries(context.Background(), db, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}
	got, err := ListGuestbookEntries(context.Background(), db)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got[0].Name != "second" || got[1].Name != "first" {
		t.Fatalf("expected id DESC tie-break, got %+v", got)
	}
}

func TestListGuestbookEntries_EmptyIsNonNil(t *testing.T) {
	db := newTestDB(t, &domain.GuestbookEntry{})
	got, err := ListGuestbookEntries(context.Background(), db)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestGuestbookRepo_ErrorsWithoutTable(t *testing.T) {
	db := newTestDB(t)
	if _, err := CreateGuestbookEntry(context.Background(), db, "n", "m"); err == nil {
		t.Fatalf("expected create error without table")
	}
	if _, err := ListGuestbookEntries(context.Background(), db); err == nil {
		t.Fatalf("expected list error without table")
	}
	if _, err := CountGuestbookEntries(context.Background(), db); err == nil {
		t.Fatalf("expected count error without table")
	}
}

func TestGetGuestbookEntry_NotFound(t *testing.T) {
	db := newTestDB(t, &domain.GuestbookEntry{})
	_, err := GetGuestbookEntry(context.Background(), db, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInsertGuestbookEntries_EmptyNoop(t *testing.T) {
	db := newTestDB(t, &domain.GuestbookEntry{})
	if err := InsertGuestbookEntries(context.Background(), db, nil); err != nil {
		t.Fatalf("expected nil for empty batch, got %v", err)
	}
	n, err := CountGuestbookEntries(context.Background(), db)
	if err != nil || n != 0 {
		t.Fatalf("expected 0 rows, got %d (%v)", n, err)
	}
}
