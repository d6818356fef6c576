// Package services – ContactService
//
// ContactService stores contact-form submissions. The table is a write-only
// sink: Create hands back only the new id. When a Notifier is configured the
// owner is emailed after the row is committed; delivery problems are logged
// and never fail the submission.
package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/tbourn/go-portfolio-backend/internal/domain"
	"github.com/tbourn/go-portfolio-backend/internal/metrics"
	"github.com/tbourn/go-portfolio-backend/internal/repo"
)

// Notifier delivers a stored contact message to the site owner.
type Notifier interface {
	NotifyContact(ctx context.Context, msg domain.ContactMessage) error
}

// ContactService implements the contact use-case.
type ContactService struct {
	DB      *gorm.DB
	Metrics *metrics.Metrics

	// Notifier is optional; nil disables notifications.
	Notifier Notifier
	// NotifyTimeout caps a single delivery attempt. Zero means 10s.
	NotifyTimeout time.Duration

	IdempotencyTTL time.Duration
}

// Create validates the submission, stores it and returns the new id.
func (s *ContactService) Create(ctx context.Context, name, email, message string) (string, error) {
	ctx, span := otel.Tracer("services/ContactService").Start(ctx, "Create")
	defer span.End()

	if err := ValidateContact(name, email, message); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			s.Metrics.RecordValidationFailure(ScopeContact, string(ve.Kind))
			span.SetAttributes(attribute.String("validation.kind", string(ve.Kind)))
		}
		return "", err
	}

	m, err := repo.CreateContactMessage(ctx, s.DB, name, email, message)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return "", persistErr("create contact message", err)
	}
	span.SetAttributes(attribute.String("contact.id", m.ID))
	s.Metrics.RecordContactMessage()

	s.notify(ctx, *m)
	return m.ID, nil
}

// Submit is Create with optional Idempotency-Key handling; see
// GuestbookService.Submit.
func (s *ContactService) Submit(ctx context.Context, key, name, email, message string) (string, bool, error) {
	if key != "" {
		if rec, err := repo.GetIdempotency(ctx, s.DB, ScopeContact, key, time.Now().UTC()); err == nil {
			return rec.ResourceID, true, nil
		}
	}

	id, err := s.Create(ctx, name, email, message)
	if err != nil {
		return "", false, err
	}

	if key != "" {
		ttl := s.IdempotencyTTL
		if ttl <= 0 {
			ttl = defaultIdempotencyTTL
		}
		if _, err := repo.CreateIdempotency(ctx, s.DB, ScopeContact, key, id, http.StatusCreated, ttl); err != nil && !errors.Is(err, repo.ErrDuplicate) {
			loggerFrom(ctx).Warn().Err(err).Str("contact_id", id).Msg("store idempotency key")
		}
	}
	return id, false, nil
}

// notify runs the configured Notifier detached from the request's
// cancellation but bounded by NotifyTimeout.
func (s *ContactService) notify(ctx context.Context, m domain.ContactMessage) {
	if s.Notifier == nil {
		return
	}
	timeout := s.NotifyTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := s.Notifier.NotifyContact(nctx, m); err != nil {
		s.Metrics.RecordNotification(false)
		loggerFrom(ctx).Warn().Err(err).Str("contact_id", m.ID).Msg("contact notification failed")
		return
	}
	s.Metrics.RecordNotification(true)
}
