// Package services – GuestbookService
//
// GuestbookService validates and stores visitor entries and lists them
// newest first. Entries are append-only; nothing here updates or deletes a
// row. Validation always runs before the first database call, so a rejected
// submission never writes.
package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-portfolio-backend/internal/domain"
	"github.com/tbourn/go-portfolio-backend/internal/metrics"
	"github.com/tbourn/go-portfolio-backend/internal/repo"
)

// Idempotency scopes, one per form.
const (
	ScopeGuestbook = "guestbook"
	ScopeContact   = "contact"
)

const defaultIdempotencyTTL = 24 * time.Hour

// GuestbookService implements the guestbook use-cases.
type GuestbookService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Metrics is optional.
	Metrics *metrics.Metrics
	// IdempotencyTTL bounds how long an Idempotency-Key replays the original
	// entry. Zero means 24h.
	IdempotencyTTL time.Duration
}

// NewGuestbookService wires a GuestbookService with defaults.
func NewGuestbookService(db *gorm.DB, m *metrics.Metrics, ttl time.Duration) *GuestbookService {
	return &GuestbookService{DB: db, Metrics: m, IdempotencyTTL: ttl}
}

// Create validates the input, stores a new entry and returns it with its
// assigned ID and CreatedAt. Errors are *ValidationError or *PersistenceError.
func (s *GuestbookService) Create(ctx context.Context, name, message string) (*domain.GuestbookEntry, error) {
	ctx, span := otel.Tracer("services/GuestbookService").Start(ctx, "Create")
	defer span.End()

	if err := ValidateGuestbook(name, message); err != nil {
		s.rejected(err)
		span.SetAttributes(attribute.String("validation.error", err.Error()))
		return nil, err
	}

	e, err := repo.CreateGuestbookEntry(ctx, s.DB, name, message)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return nil, persistErr("create guestbook entry", err)
	}
	span.SetAttributes(attribute.String("guestbook.id", e.ID))
	s.Metrics.RecordGuestbookEntry()
	return e, nil
}

// Submit is Create with optional Idempotency-Key handling. When key matches
// a live record the original entry is returned with replayed=true and no new
// row is written. Recording the key after a fresh create is best effort.
func (s *GuestbookService) Submit(ctx context.Context, key, name, message string) (*domain.GuestbookEntry, bool, error) {
	if key != "" {
		if rec, err := repo.GetIdempotency(ctx, s.DB, ScopeGuestbook, key, time.Now().UTC()); err == nil {
			if prev, err := repo.GetGuestbookEntry(ctx, s.DB, rec.ResourceID); err == nil {
				return prev, true, nil
			}
		}
	}

	e, err := s.Create(ctx, name, message)
	if err != nil {
		return nil, false, err
	}

	if key != "" {
		if _, err := repo.CreateIdempotency(ctx, s.DB, ScopeGuestbook, key, e.ID, http.StatusCreated, s.ttl()); err != nil && !errors.Is(err, repo.ErrDuplicate) {
			loggerFrom(ctx).Warn().Err(err).Str("entry_id", e.ID).Msg("store idempotency key")
		}
	}
	return e, false, nil
}

// List returns every entry ordered by CreatedAt descending. Two calls with
// no create in between return the same sequence.
func (s *GuestbookService) List(ctx context.Context) ([]domain.GuestbookEntry, error) {
	ctx, span := otel.Tracer("services/GuestbookService").Start(ctx, "List")
	defer span.End()

	items, err := repo.ListGuestbookEntries(ctx, s.DB)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list failed")
		return nil, persistErr("list guestbook entries", err)
	}
	span.SetAttributes(attribute.Int("guestbook.count", len(items)))
	return items, nil
}

// Stats returns the row count and newest CreatedAt, used for ETags.
func (s *GuestbookService) Stats(ctx context.Context) (int64, *time.Time, error) {
	ctx, span := otel.Tracer("services/GuestbookService").Start(ctx, "Stats", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	n, newest, err := repo.GuestbookStats(ctx, s.DB)
	if err != nil {
		return 0, nil, persistErr("guestbook stats", err)
	}
	return n, newest, nil
}

func (s *GuestbookService) rejected(err error) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		s.Metrics.RecordValidationFailure(ScopeGuestbook, string(ve.Kind))
	}
}

func (s *GuestbookService) ttl() time.Duration {
	if s.IdempotencyTTL > 0 {
		return s.IdempotencyTTL
	}
	return defaultIdempotencyTTL
}
