// This file provides the sample guestbook entries used to populate an empty
// guestbook on first run.

package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-portfolio-backend/internal/domain"
	"github.com/tbourn/go-portfolio-backend/internal/repo"
)

// SampleGuestbookEntries are the demo entries shown by the site before the
// guestbook had a backend.
func SampleGuestbookEntries() []domain.GuestbookEntry {
	return []domain.GuestbookEntry{
		{
			Name:      "Sarah Chen",
			Message:   "Amazing portfolio! Your design work is truly inspiring. Love the attention to detail.",
			CreatedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			Name:      "Marcus Johnson",
			Message:   "The typography choices are perfect. Can't wait to see more of your projects!",
			CreatedAt: time.Date(2024, 1, 18, 14, 20, 0, 0, time.UTC),
		},
		{
			Name:      "Emily Rodriguez",
			Message:   "Your brand identity work is exceptional. Would love to collaborate sometime!",
			CreatedAt: time.Date(2024, 1, 22, 9, 15, 0, 0, time.UTC),
		},
	}
}

// SeedGuestbook inserts SampleGuestbookEntries into an empty guestbook and
// returns how many rows it wrote. A guestbook that already has entries is
// left alone.
func SeedGuestbook(ctx context.Context, db *gorm.DB) (int, error) {
	n, err := repo.CountGuestbookEntries(ctx, db)
	if err != nil {
		return 0, persistErr("count guestbook entries", err)
	}
	if n > 0 {
		return 0, nil
	}
	entries := SampleGuestbookEntries()
	for _, e := range entries {
		if err := ValidateGuestbook(e.Name, e.Message); err != nil {
			return 0, err
		}
	}
	if err := repo.InsertGuestbookEntries(ctx, db, entries); err != nil {
		return 0, persistErr("seed guestbook", err)
	}
	return len(entries), nil
}
