// Package handlers provides the HTTP endpoints of the portfolio API.
//
// Handlers are transport-thin: they decode input, call the guestbook and
// contact services or the project catalog, and translate results and typed
// errors into HTTP responses.
package handlers

import (
	"context"
	"time"

	"github.com/tbourn/go-portfolio-backend/internal/catalog"
	"github.com/tbourn/go-portfolio-backend/internal/domain"
)

//
// Service contracts (context-aware)
//

// GuestbookService defines the guestbook operations consumed by handlers.
//
// Implementations must be safe for concurrent use and honor ctx.
type GuestbookService interface {
	// Submit validates and stores an entry. A non-empty key that matches a
	// live idempotency record returns the original entry with replayed=true.
	Submit(ctx context.Context, key, name, message string) (*domain.GuestbookEntry, bool, error)
	// List returns every entry, newest first.
	List(ctx context.Context) ([]domain.GuestbookEntry, error)
	// Stats returns the entry count and newest CreatedAt.
	Stats(ctx context.Context) (int64, *time.Time, error)
}

// ContactService defines the contact-form operation consumed by handlers.
type ContactService interface {
	// Submit validates and stores a message and returns its id.
	Submit(ctx context.Context, key, name, email, message string) (string, bool, error)
}

// Catalog is the read-only project lookup used by the project endpoints.
type Catalog interface {
	Filter(category, tag string) []catalog.Summary
	Slugs() []string
	GetBySlug(slug string) (catalog.Project, bool)
	Neighbors(slug string) (prev, next *catalog.Summary)
}

//
// Handler wiring
//

// Handlers groups the public API endpoints.
type Handlers struct {
	guestbook GuestbookService
	contact   ContactService
	projects  Catalog
}

// New constructs Handlers bound to the given services.
func New(gb GuestbookService, ct ContactService, projects Catalog) *Handlers {
	return &Handlers{guestbook: gb, contact: ct, projects: projects}
}
