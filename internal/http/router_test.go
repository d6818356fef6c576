package httpapi

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-portfolio-backend/internal/catalog"
	"github.com/tbourn/go-portfolio-backend/internal/config"
	"github.com/tbourn/go-portfolio-backend/internal/http/middleware"
	"github.com/tbourn/go-portfolio-backend/internal/repo"
)

// --- test DB helper (pure-Go sqlite, no CGO) ---
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:router_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close(db) })
	return db
}

func testConfig() config.Config {
	return config.Config{
		APIBasePath:    "/api",
		RateRPS:        100,
		RateBurst:      10,
		IdempotencyTTL: time.Hour,
		OTEL:           config.OTELConfig{ServiceName: "test-svc"},
	}
}

func newTestRouter(t *testing.T, cfg config.Config) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	db := newTestDB(t)
	r := gin.New()
	if err := RegisterRoutes(r, Deps{DB: db, Catalog: cat, Registry: prometheus.NewRegistry()}, cfg); err != nil {
		t.Fatalf("RegisterRoutes: %v", err)
	}
	return r, db
}

func serve(r http.Handler, method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.RemoteAddr = "203.0.113.7:5555"
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterRoutes_RequiresDeps(t *testing.T) {
	gin.SetMode(gin.TestMode)
	if err := RegisterRoutes(gin.New(), Deps{}, testConfig()); err == nil {
		t.Fatalf("expected error without DB and catalog")
	}
}

func TestRegisterRoutes_Health_Ready_Metrics_Fallbacks(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	w := serve(r, http.MethodGet, "/health", "", map[string]string{"Origin": "https://anywhere.example"})
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow-all CORS expected '*', got %q", got)
	}
	if w.Header().Get("X-Request-ID") == "" || w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("request id or security headers missing: %v", w.Header())
	}

	if w = serve(r, http.MethodGet, "/ready", "", nil); w.Code != http.StatusOK {
		t.Fatalf("GET /ready = %d %s", w.Code, w.Body.String())
	}

	w = serve(r, http.MethodGet, "/metrics", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "http_requests_total") {
		t.Fatalf("GET /metrics: code=%d", w.Code)
	}

	w = serve(r, http.MethodGet, "/nope", "", nil)
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), `"code":"not_found"`) {
		t.Fatalf("GET /nope: %d %s", w.Code, w.Body.String())
	}

	w = serve(r, http.MethodDelete, "/api/guestbook", "", nil)
	if w.Code != http.StatusMethodNotAllowed || !strings.Contains(w.Body.String(), `"code":"method_not_allowed"`) {
		t.Fatalf("DELETE /api/guestbook: %d %s", w.Code, w.Body.String())
	}

	if w = serve(r, http.MethodGet, "/swagger/index.html", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("swagger must be off by default, got %d", w.Code)
	}
}

func TestRegisterRoutes_Swagger(t *testing.T) {
	cfg := testConfig()
	cfg.SwaggerEnabled = true
	r, _ := newTestRouter(t, cfg)

	w := serve(r, http.MethodGet, "/swagger/doc.json", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "/guestbook") {
		t.Fatalf("swagger doc: %d", w.Code)
	}
}

func TestRegisterRoutes_CORSAllowlist(t *testing.T) {
	cfg := testConfig()
	cfg.CORS = config.CORSConfig{AllowedOrigins: []string{"https://portfolio.example"}}
	r, _ := newTestRouter(t, cfg)

	w := serve(r, http.MethodGet, "/api/projects/slugs", "", map[string]string{"Origin": "https://portfolio.example"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://portfolio.example" {
		t.Fatalf("expected ACAO echo, got %q", got)
	}

	w = serve(r, http.MethodOptions, "/api/guestbook", "", map[string]string{
		"Origin":                         "https://portfolio.example",
		"Access-Control-Request-Method":  "POST",
		"Access-Control-Request-Headers": "Content-Type, Idempotency-Key",
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight: %d", w.Code)
	}

	w = serve(r, http.MethodGet, "/api/projects/slugs", "", map[string]string{"Origin": "https://evil.example"})
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("unlisted origin must not be allowed")
	}
}

func TestRegisterRoutes_GuestbookFlow(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	w := serve(r, http.MethodPost, "/api/guestbook", `{"name":"Ada","message":"Hello there"}`,
		map[string]string{middleware.HeaderIdempotencyKey: "gb-1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	if w.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("form responses must be no-store, got %q", w.Header().Get("Cache-Control"))
	}
	var first map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &first)

	// Replay returns the same entry.
	w = serve(r, http.MethodPost, "/api/guestbook", `{"name":"Ada","message":"Hello there"}`,
		map[string]string{middleware.HeaderIdempotencyKey: "gb-1"})
	var again map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &again)
	if w.Code != http.StatusCreated || w.Header().Get("Idempotency-Replayed") != "true" || again["id"] != first["id"] {
		t.Fatalf("replay: %d %v %v", w.Code, w.Header(), again)
	}

	// The same key on the contact form is a different scope.
	w = serve(r, http.MethodPost, "/api/contact", `{"name":"Ada","email":"ada@example.com","message":"Hi"}`,
		map[string]string{middleware.HeaderIdempotencyKey: "gb-1"})
	if w.Code != http.StatusCreated || w.Header().Get("Idempotency-Replayed") != "" {
		t.Fatalf("contact with reused key: %d %v", w.Code, w.Header())
	}

	w = serve(r, http.MethodGet, "/api/guestbook", "", nil)
	etag := w.Header().Get("ETag")
	if w.Code != http.StatusOK || etag == "" {
		t.Fatalf("list: %d etag=%q", w.Code, etag)
	}
	var items []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &items)
	if len(items) != 1 {
		t.Fatalf("want 1 entry, got %d", len(items))
	}

	if w = serve(r, http.MethodGet, "/api/guestbook", "", map[string]string{"If-None-Match": etag}); w.Code != http.StatusNotModified {
		t.Fatalf("conditional list: %d", w.Code)
	}

	w = serve(r, http.MethodPost, "/api/guestbook", `{"name":"","message":"x"}`, nil)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "Name and message are required") {
		t.Fatalf("validation: %d %s", w.Code, w.Body.String())
	}

	w = serve(r, http.MethodPost, "/api/guestbook", `{"name":"Ada"`, nil)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "Invalid request body") {
		t.Fatalf("malformed: %d %s", w.Code, w.Body.String())
	}
}

func TestRegisterRoutes_BodyLimit(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	big := `{"name":"Ada","message":"` + strings.Repeat("x", MaxBodyBytes) + `"}`
	w := serve(r, http.MethodPost, "/api/contact", big, nil)
	if w.Code != http.StatusRequestEntityTooLarge || !strings.Contains(w.Body.String(), `"code":"payload_too_large"`) {
		t.Fatalf("oversized body: %d %s", w.Code, w.Body.String())
	}
}

func TestRegisterRoutes_RateLimitOnlyOnForms(t *testing.T) {
	cfg := testConfig()
	cfg.RateRPS = 0.001
	cfg.RateBurst = 1
	r, _ := newTestRouter(t, cfg)

	body := `{"name":"Ada","message":"hi"}`
	if w := serve(r, http.MethodPost, "/api/guestbook", body, map[string]string{middleware.HeaderIdempotencyKey: "rl-1"}); w.Code != http.StatusCreated {
		t.Fatalf("first post: %d", w.Code)
	}
	w := serve(r, http.MethodPost, "/api/guestbook", body, nil)
	if w.Code != http.StatusTooManyRequests || w.Header().Get("Retry-After") == "" {
		t.Fatalf("second post should be limited: %d", w.Code)
	}

	// A replay is not throttled.
	w = serve(r, http.MethodPost, "/api/guestbook", body, map[string]string{middleware.HeaderIdempotencyKey: "rl-1"})
	if w.Code != http.StatusCreated || w.Header().Get("Idempotency-Replayed") != "true" {
		t.Fatalf("replay should bypass the limiter: %d", w.Code)
	}

	// Reads are never limited.
	for i := 0; i < 5; i++ {
		if w := serve(r, http.MethodGet, "/api/guestbook", "", nil); w.Code != http.StatusOK {
			t.Fatalf("read %d limited: %d", i, w.Code)
		}
	}
}

func TestRegisterRoutes_Projects(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	w := serve(r, http.MethodGet, "/api/projects?category=Brand%20Identity", "", nil)
	if w.Code != http.StatusOK || w.Header().Get("Cache-Control") != "public, max-age=300" {
		t.Fatalf("projects: %d cache=%q", w.Code, w.Header().Get("Cache-Control"))
	}
	var sums []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &sums)
	if len(sums) != 2 {
		t.Fatalf("want 2 brand identity projects, got %d", len(sums))
	}

	w = serve(r, http.MethodGet, "/api/projects/heritage-museum", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"prev":{`) {
		t.Fatalf("project: %d", w.Code)
	}

	w = serve(r, http.MethodGet, "/api/projects/nope", "", nil)
	if w.Code != http.StatusNotFound || w.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("missing project: %d cache=%q", w.Code, w.Header().Get("Cache-Control"))
	}
}

func TestRegisterRoutes_Gzip(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	w := serve(r, http.MethodGet, "/api/projects", "", map[string]string{"Accept-Encoding": "gzip"})
	if w.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip response, headers=%v", w.Header())
	}
	zr, err := gzip.NewReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	defer zr.Close()
	plain, err := io.ReadAll(zr)
	if err != nil || !bytes.Contains(plain, []byte("urban-roots-coffee")) {
		t.Fatalf("decompressed body unexpected: %v", err)
	}
}

func TestRegisterRoutes_RootBasePath(t *testing.T) {
	cfg := testConfig()
	cfg.APIBasePath = "/"
	r, _ := newTestRouter(t, cfg)

	if w := serve(r, http.MethodGet, "/projects/slugs", "", nil); w.Code != http.StatusOK {
		t.Fatalf("root mount: %d", w.Code)
	}
}

func TestIdempotencyLookup(t *testing.T) {
	db := newTestDB(t)
	lookup := idempotencyLookup(db)
	ctx := context.Background()
	now := time.Now().UTC()

	if ok, err := lookup(ctx, "guestbook", "k-1", now); ok || err != nil {
		t.Fatalf("miss should be (false, nil), got (%v, %v)", ok, err)
	}
	if _, err := repo.CreateIdempotency(ctx, db, "guestbook", "k-1", "01HZX", http.StatusCreated, time.Hour); err != nil {
		t.Fatalf("CreateIdempotency: %v", err)
	}
	if ok, err := lookup(ctx, "guestbook", "k-1", now); !ok || err != nil {
		t.Fatalf("hit should be (true, nil), got (%v, %v)", ok, err)
	}
	if ok, _ := lookup(ctx, "contact", "k-1", now); ok {
		t.Fatalf("scopes must not collide")
	}

	sqlDB, _ := db.DB()
	_ = sqlDB.Close()
	if ok, err := lookup(ctx, "guestbook", "k-1", now); ok || err == nil {
		t.Fatalf("closed db should surface an error, got (%v, %v)", ok, err)
	}
}

func TestRegisterRoutes_ReadyUnavailable(t *testing.T) {
	r, db := newTestRouter(t, testConfig())
	sqlDB, _ := db.DB()
	_ = sqlDB.Close()

	w := serve(r, http.MethodGet, "/ready", "", nil)
	if w.Code != http.StatusServiceUnavailable || !strings.Contains(w.Body.String(), `"code":"unavailable"`) {
		t.Fatalf("ready with closed db: %d %s", w.Code, w.Body.String())
	}
}

func Test_limitBody_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(limitBody(10))
	r.POST("/echo", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too big")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("0123456789AB")))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 from limitBody, got %d", w.Code)
	}
}

func Test_groupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	groupWithPrefix(r, "/").GET("/one", func(c *gin.Context) { c.String(http.StatusOK, "one") })
	groupWithPrefix(r, "").GET("/two", func(c *gin.Context) { c.String(http.StatusOK, "two") })
	groupWithPrefix(r, "/api").GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for path, want := range map[string]string{"/one": "one", "/two": "two", "/api/ping": "pong"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK || w.Body.String() != want {
			t.Fatalf("GET %s got %d %q", path, w.Code, w.Body.String())
		}
	}
}
