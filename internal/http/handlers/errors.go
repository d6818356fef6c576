// Package handlers defines the error codes returned in the "code" field of
// every error response. Clients branch on these; the "error" field carries
// the visitor-facing text.
//
// Codes are lowercase snake_case. The three validation codes mirror the
// service layer's ValidationKind values.

package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodePayloadTooLarge  = "payload_too_large"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"

	// Validation:
	ErrCodeMissingField  = "missing_field"
	ErrCodeFieldTooLong  = "field_too_long"
	ErrCodeInvalidFormat = "invalid_format"

	// Domain-specific:
	ErrCodeCreateFailed = "create_failed"
	ErrCodeListFailed   = "list_failed"
	ErrCodeUnavailable  = "unavailable"
)
