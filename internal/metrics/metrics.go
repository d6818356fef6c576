// Package metrics holds the business counters exported on /metrics next to
// the HTTP middleware collectors. Every Record method is nil-safe so
// services can run without instrumentation in tests and CLI commands.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the portfolio counters.
type Metrics struct {
	guestbookCreated   prometheus.Counter
	contactCreated     prometheus.Counter
	validationFailures *prometheus.CounterVec
	notifications      *prometheus.CounterVec
}

// New builds the counters and registers them with reg. Registering twice
// against the same registry reuses the collectors already there, which keeps
// router construction repeatable in tests.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{}
	var err error

	if m.guestbookCreated, err = registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "portfolio_guestbook_entries_created_total",
		Help: "Guestbook entries persisted.",
	})); err != nil {
		return nil, err
	}
	if m.contactCreated, err = registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "portfolio_contact_messages_created_total",
		Help: "Contact messages persisted.",
	})); err != nil {
		return nil, err
	}
	if m.validationFailures, err = registerVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_validation_failures_total",
		Help: "Submissions rejected by validation, by form and reason.",
	}, []string{"form", "reason"})); err != nil {
		return nil, err
	}
	if m.notifications, err = registerVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_contact_notifications_total",
		Help: "Contact notification attempts by result (sent|failed).",
	}, []string{"result"})); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordGuestbookEntry counts one persisted guestbook entry.
func (m *Metrics) RecordGuestbookEntry() {
	if m != nil && m.guestbookCreated != nil {
		m.guestbookCreated.Inc()
	}
}

// RecordContactMessage counts one persisted contact message.
func (m *Metrics) RecordContactMessage() {
	if m != nil && m.contactCreated != nil {
		m.contactCreated.Inc()
	}
}

// RecordValidationFailure counts a rejected submission.
func (m *Metrics) RecordValidationFailure(form, reason string) {
	if m != nil && m.validationFailures != nil {
		m.validationFailures.WithLabelValues(form, reason).Inc()
	}
}

// RecordNotification counts a contact notification attempt.
func (m *Metrics) RecordNotification(sent bool) {
	if m == nil || m.notifications == nil {
		return
	}
	result := "failed"
	if sent {
		result = "sent"
	}
	m.notifications.WithLabelValues(result).Inc()
}

func registerCounter(reg prometheus.Registerer, c prometheus.Counter) (prometheus.Counter, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return c, nil
}

func registerVec(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return c, nil
}
