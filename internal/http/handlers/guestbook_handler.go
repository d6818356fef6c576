// Guestbook HTTP handlers.
//
// This file exposes:
//   - POST /guestbook   (sign the guestbook)
//   - GET  /guestbook   (list entries newest first, ETag support)
//
// Idempotency:
// When the client sends an Idempotency-Key that was already used for a
// successful create, the original entry is returned with
// `Idempotency-Replayed: true` and nothing new is stored.
package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-portfolio-backend/internal/http/middleware"
)

// CreateGuestbookRequest is the JSON payload for a new guestbook entry.
// Fields are stored verbatim; the service enforces presence and length.
type CreateGuestbookRequest struct {
	Name    string `json:"name" example:"Ada Lovelace"`
	Message string `json:"message" example:"Lovely work on the coffee rebrand!"`
}

// CreateGuestbookEntry godoc
// @ID          createGuestbookEntry
// @Summary     Sign the guestbook
// @Description Stores a public guestbook entry and returns it with its id and timestamp.
// @Description Supports idempotency via the Idempotency-Key header (same key → same entry).
// @Tags        Guestbook
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false  "Idempotency key for safe retries"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    handlers.CreateGuestbookRequest  true  "Entry"
//
// @Success     201  {object}  domain.GuestbookEntry
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed or malformed body"
// @Failure     413  {object}  handlers.ErrorResponse  "Body too large"
// @Failure     429  {object}  handlers.ErrorResponse  "Rate limited"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /guestbook [post]
func (h *Handlers) CreateGuestbookEntry(c *gin.Context) {
	var req CreateGuestbookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}

	key, _ := middleware.GetIdempotencyKey(c)
	e, replayed, err := h.guestbook.Submit(c.Request.Context(), key, req.Name, req.Message)
	if err != nil {
		failSubmit(c, err, "Failed to create guestbook entry")
		return
	}
	if replayed {
		c.Header(middleware.HeaderIdempotencyReplayed, "true")
	}
	ok(c, http.StatusCreated, e)
}

// ListGuestbookEntries godoc
// @ID          listGuestbookEntries
// @Summary     List guestbook entries
// @Description Returns every entry, newest first. Responses carry a weak ETag;
// @Description send it back in If-None-Match to get 304 when nothing changed.
// @Tags        Guestbook
// @Produce     json
//
// @Param       If-None-Match  header  string  false  "ETag from a previous response"
//
// @Success     200  {array}   domain.GuestbookEntry
// @Success     304  "Not modified"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /guestbook [get]
func (h *Handlers) ListGuestbookEntries(c *gin.Context) {
	ctx := c.Request.Context()
	inm := c.GetHeader("If-None-Match")

	// Cheap 304 before listing. Entries are append-only, so matching stats
	// mean the client already holds the current listing.
	if inm != "" {
		if count, newest, err := h.guestbook.Stats(ctx); err == nil {
			if etag := guestbookETag(count, newest); etagMatch(inm, etag) {
				notModified(c, etag)
				return
			}
		} else {
			middleware.LoggerFrom(c).Debug().Err(err).Msg("guestbook etag pre-check skipped")
		}
	}

	items, err := h.guestbook.List(ctx)
	if err != nil {
		failWith(c, http.StatusInternalServerError, ErrCodeListFailed, "Failed to fetch guestbook entries", err)
		return
	}

	// The served tag always describes the served body.
	var newest *time.Time
	if len(items) > 0 {
		newest = &items[0].CreatedAt
	}
	etag := guestbookETag(int64(len(items)), newest)
	if etagMatch(inm, etag) {
		notModified(c, etag)
		return
	}
	c.Header("ETag", etag)
	c.Header("Cache-Control", "no-cache")
	ok(c, http.StatusOK, items)
}

// guestbookETag derives the weak listing tag from the entry count and the
// newest CreatedAt.
func guestbookETag(count int64, newest *time.Time) string {
	var ts int64
	if newest != nil {
		ts = newest.UnixMilli()
	}
	return fmt.Sprintf(`W/"guestbook:%d:%d"`, count, ts)
}

func notModified(c *gin.Context, etag string) {
	c.Header("ETag", etag)
	c.Header("Cache-Control", "no-cache")
	c.Status(http.StatusNotModified)
}

// etagMatch implements the weak comparison of If-None-Match: any listed tag
// equal to etag after dropping the W/ prefix, or "*".
func etagMatch(header, etag string) bool {
	if header == "" {
		return false
	}
	want := strings.TrimPrefix(etag, "W/")
	for _, t := range strings.Split(header, ",") {
		t = strings.TrimSpace(t)
		if t == "*" || strings.TrimPrefix(t, "W/") == want {
			return true
		}
	}
	return false
}
