// Package services holds the guestbook and contact use-cases and the input
// rules that guard them. This file defines the error taxonomy returned by
// those use-cases.
//
// Two classes exist:
//   - *ValidationError: user-correctable input problems. Its Error() text is
//     safe to show to visitors.
//   - *PersistenceError: storage failures. Callers should log the cause and
//     reply with a generic message.
//
// Both work with errors.Is / errors.As. Handlers translate them to HTTP
// statuses; nothing in this package knows about HTTP.
package services

import (
	"errors"
	"fmt"
)

// ValidationKind names the rule that rejected an input.
type ValidationKind string

const (
	KindMissingField  ValidationKind = "missing_field"
	KindFieldTooLong  ValidationKind = "field_too_long"
	KindInvalidFormat ValidationKind = "invalid_format"
)

// Sentinels matched by (*ValidationError).Is and (*PersistenceError).Is.
var (
	ErrValidation    = errors.New("validation failed")
	ErrMissingField  = errors.New("missing field")
	ErrFieldTooLong  = errors.New("field too long")
	ErrInvalidFormat = errors.New("invalid format")
	ErrPersistence   = errors.New("persistence failure")
)

// ValidationError reports the first rule an input broke.
//
// Fields:
//   - Kind: which rule failed.
//   - Field: the offending field ("name", "email", "message"); empty for
//     KindMissingField, which covers the whole form.
//   - Message: visitor-facing text.
type ValidationError struct {
	Kind    ValidationKind
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is lets callers match on the generic ErrValidation or on the kind sentinel.
func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return true
	case ErrMissingField:
		return e.Kind == KindMissingField
	case ErrFieldTooLong:
		return e.Kind == KindFieldTooLong
	case ErrInvalidFormat:
		return e.Kind == KindInvalidFormat
	}
	return false
}

// PersistenceError wraps a storage failure with the operation that hit it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Is matches ErrPersistence.
func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

func persistErr(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}
