// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// GuestbookEntry model.
//
// The repository follows a "thin" approach: it assigns identifiers and
// timestamps, persists rows and composes simple queries. Input validation
// lives in the services package.
package repo

import (
	"context"
	"crypto/rand"
	"errors"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"

	"github.com/tbourn/go-portfolio-backend/internal/domain"
)

// ErrNotFound is returned when a row lookup by primary key misses.
var ErrNotFound = gorm.ErrRecordNotFound

// guestbookOrder lists newest entries first. ULIDs sort by their millisecond
// timestamp and then by monotonic entropy, so id breaks created_at ties in
// insertion order.
const guestbookOrder = "created_at DESC, id DESC"

var (
	ulidMu      sync.Mutex
	ulidEntropy = ulid.Monotonic(rand.Reader, 0)
)

// newULID returns a ULID for t. The shared monotonic reader guarantees that
// ids minted within the same millisecond still increase.
func newULID(t time.Time) string {
	ulidMu.Lock()
	defer ulidMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), ulidEntropy).String()
}

// CreateGuestbookEntry assigns an id and a UTC creation time, inserts the
// row and returns it. name and message are stored as given.
func CreateGuestbookEntry(ctx context.Context, db *gorm.DB, name, message string) (*domain.GuestbookEntry, error) {
	now := time.Now().UTC()
	e := &domain.GuestbookEntry{
		ID:        newULID(now),
		Name:      name,
		Message:   message,
		CreatedAt: now,
	}
	if err := db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// InsertGuestbookEntries writes pre-built entries in one transaction. Entries
// with an empty ID get a ULID derived from their CreatedAt. Used for fixtures.
func InsertGuestbookEntries(ctx context.Context, db *gorm.DB, entries []domain.GuestbookEntry) error {
	if len(entries) == 0 {
		return nil
	}
	for i := range entries {
		if entries[i].CreatedAt.IsZero() {
			entries[i].CreatedAt = time.Now().UTC()
		}
		if entries[i].ID == "" {
			entries[i].ID = newULID(entries[i].CreatedAt)
		}
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&entries).Error
	})
}

// ListGuestbookEntries returns every entry, newest first.
func ListGuestbookEntries(ctx context.Context, db *gorm.DB) ([]domain.GuestbookEntry, error) {
	out := make([]domain.GuestbookEntry, 0)
	err := db.WithContext(ctx).
		Order(guestbookOrder).
		Find(&out).Error
	return out, err
}

// GetGuestbookEntry loads a single entry by id or returns ErrNotFound.
func GetGuestbookEntry(ctx context.Context, db *gorm.DB, id string) (*domain.GuestbookEntry, error) {
	var e domain.GuestbookEntry
	err := db.WithContext(ctx).First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CountGuestbookEntries returns the number of stored entries.
func CountGuestbookEntries(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.GuestbookEntry{}).Count(&n).Error
	return n, err
}
