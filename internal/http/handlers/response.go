// This file defines the response helpers shared by all endpoints.
//
// Conventions:
//   - Every error response is an ErrorResponse with a stable `code`.
//   - `fail()` marks error responses uncacheable and logs 5xx with the
//     request-scoped logger, including the cause when one is given.
//
// Example error response:
//
//	HTTP/1.1 400 Bad Request
//	{
//	  "error": "Invalid email address",
//	  "code": "invalid_format",
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-portfolio-backend/internal/http/middleware"
	"github.com/tbourn/go-portfolio-backend/internal/services"
)

// ErrorResponse is the error envelope returned by all endpoints.
type ErrorResponse struct {
	// Human-readable message, safe to show to visitors
	Error string `json:"error" example:"Name and message are required"`
	// Stable, machine-readable code (see errors.go)
	Code string `json:"code" example:"missing_field"`
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
}

// fail aborts the request with an ErrorResponse.
func fail(c *gin.Context, status int, code, msg string) {
	failWith(c, status, code, msg, nil)
}

// failWith is fail with a cause. The cause is logged for 5xx and never
// written to the response.
func failWith(c *gin.Context, status int, code, msg string, cause error) {
	if status >= http.StatusInternalServerError {
		ev := middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code)
		if cause != nil {
			ev = ev.Err(cause)
		}
		ev.Msg(msg)
	}

	c.Header("Cache-Control", "no-store")
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     msg,
		Code:      code,
		RequestID: middleware.RequestIDFrom(c),
	})
}

// Fail is the exported variant of fail for the router's fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// failBind maps a JSON decode error. Oversized bodies get 413, anything
// else (syntax errors, wrong field types, empty body) gets 400.
func failBind(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		fail(c, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, "Request body too large")
		return
	}
	fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Invalid request body")
}

// failSubmit maps a service error from a form submission. Validation errors
// carry their own message; everything else is reported as internalMsg.
func failSubmit(c *gin.Context, err error, internalMsg string) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		fail(c, http.StatusBadRequest, string(ve.Kind), ve.Message)
		return
	}
	failWith(c, http.StatusInternalServerError, ErrCodeCreateFailed, internalMsg, err)
}
