// This file serves the operational probes. They live at the root, outside
// the API base path, and are left out of the OpenAPI document.

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-portfolio-backend/internal/http/middleware"
)

// StatusResponse is the body of the health endpoints.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// Health is the liveness probe. It never touches dependencies.
func Health(c *gin.Context) {
	ok(c, http.StatusOK, StatusResponse{Status: "ok"})
}

// Ready returns the readiness probe. ping checks the database and is given
// at most timeout; a failure answers 503.
func Ready(ping func(context.Context) error, timeout time.Duration) gin.HandlerFunc {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		if err := ping(ctx); err != nil {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("readiness check failed")
			fail(c, http.StatusServiceUnavailable, ErrCodeUnavailable, "Service unavailable")
			return
		}
		ok(c, http.StatusOK, StatusResponse{Status: "ready"})
	}
}
