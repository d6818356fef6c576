package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-portfolio-backend/internal/catalog"
	"github.com/tbourn/go-portfolio-backend/internal/domain"
	"github.com/tbourn/go-portfolio-backend/internal/http/middleware"
	"github.com/tbourn/go-portfolio-backend/internal/services"
)

// ---------- stub services ----------

type stubGuestbook struct {
	entries   []domain.GuestbookEntry
	newest    *time.Time
	replay    bool
	submitErr error
	listErr   error
	statsErr  error
	// staleStats makes Stats report one entry fewer than List returns, as
	// when a create commits between the two queries.
	staleStats bool

	gotKey    string
	listCalls int
}

func (s *stubGuestbook) Submit(_ context.Context, key, name, message string) (*domain.GuestbookEntry, bool, error) {
	s.gotKey = key
	if err := services.ValidateGuestbook(name, message); err != nil {
		return nil, false, err
	}
	if s.submitErr != nil {
		return nil, false, s.submitErr
	}
	return &domain.GuestbookEntry{
		ID:        "01HZX3Q4R5S6T7V8W9XAYBZC0D",
		Name:      name,
		Message:   message,
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}, s.replay, nil
}

func (s *stubGuestbook) List(context.Context) ([]domain.GuestbookEntry, error) {
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.entries, nil
}

func (s *stubGuestbook) Stats(context.Context) (int64, *time.Time, error) {
	n := int64(len(s.entries))
	if s.staleStats && n > 0 {
		n--
	}
	return n, s.newest, s.statsErr
}

type stubContact struct {
	replay    bool
	submitErr error
	gotKey    string
}

func (s *stubContact) Submit(_ context.Context, key, name, email, message string) (string, bool, error) {
	s.gotKey = key
	if err := services.ValidateContact(name, email, message); err != nil {
		return "", false, err
	}
	if s.submitErr != nil {
		return "", false, s.submitErr
	}
	return "0b7e5d3c-2f1a-4c59-9f0e-1d2c3b4a5e6f", s.replay, nil
}

// ---------- router + request helpers ----------

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	return cat
}

// testBodyLimit leaves room for the longest valid submission (1000 runes of
// up to 4 bytes each) while still exercising the 413 path.
const testBodyLimit = 8 << 10

func newRouter(t *testing.T, h *Handlers) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID(), func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, testBodyLimit)
		c.Next()
	})
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, nil))

	r.POST("/guestbook", h.CreateGuestbookEntry)
	r.GET("/guestbook", h.ListGuestbookEntries)
	r.POST("/contact", h.SendContactMessage)
	r.GET("/projects", h.ListProjects)
	r.GET("/projects/slugs", h.ListProjectSlugs)
	r.GET("/projects/:slug", h.GetProject)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeInto(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}
