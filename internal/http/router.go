// Package httpapi wires the HTTP transport (Gin) to the portfolio services,
// the project catalog, middleware and route handlers. It centralizes
// cross-cutting concerns such as tracing, correlation IDs, logging/redaction,
// panic recovery, metrics, compression, CORS, security headers, idempotency
// and rate limiting.
//
// Design goals:
//   - Observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Form endpoints are the only writers; they alone carry idempotency and
//     rate limiting, so catalog reads are never throttled
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-portfolio-backend/docs"
	"github.com/tbourn/go-portfolio-backend/internal/catalog"
	"github.com/tbourn/go-portfolio-backend/internal/config"
	"github.com/tbourn/go-portfolio-backend/internal/http/handlers"
	"github.com/tbourn/go-portfolio-backend/internal/http/middleware"
	"github.com/tbourn/go-portfolio-backend/internal/metrics"
	"github.com/tbourn/go-portfolio-backend/internal/repo"
	"github.com/tbourn/go-portfolio-backend/internal/services"
)

// MaxBodyBytes caps every request body.
const MaxBodyBytes = 1 << 20

// catalogMaxAge is the public cache lifetime of project responses. The
// catalog only changes on deploy.
const catalogMaxAge = 5 * time.Minute

// Deps are the runtime dependencies of the API.
type Deps struct {
	DB      *gorm.DB
	Catalog *catalog.Catalog
	// Notifier is optional; nil disables contact notifications.
	Notifier services.Notifier
	// Registry receives the HTTP and domain collectors and backs /metrics.
	// Nil means the Prometheus default registry.
	Registry *prometheus.Registry
}

// RegisterRoutes attaches all middleware and endpoints to r.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. gzip
//  8. CORS and security headers
//
// The form routes add, per route: idempotency validation (before the rate
// limiter so replays bypass it), the per-IP rate limiter and no-store.
func RegisterRoutes(r *gin.Engine, deps Deps, cfg config.Config) error {
	if deps.DB == nil || deps.Catalog == nil {
		return errors.New("httpapi: DB and Catalog are required")
	}
	var (
		reg    prometheus.Registerer = prometheus.DefaultRegisterer
		gather prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		reg, gather = deps.Registry, deps.Registry
	}

	httpMetrics, err := middleware.NewHTTPMetrics(reg)
	if err != nil {
		return err
	}
	domainMetrics, err := metrics.New(reg)
	if err != nil {
		return err
	}

	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{middleware.HeaderIdempotencyKey},
	}))
	r.Use(middleware.Recovery())
	r.Use(limitBody(MaxBodyBytes))
	r.Use(httpMetrics.Handler())
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	r.Use(cors.New(corsConfig(cfg.CORS)))
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "Route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "Method not allowed")
	})

	// Operational endpoints
	r.GET("/health", handlers.Health)
	r.GET("/ready", handlers.Ready(func(ctx context.Context) error { return repo.Ping(ctx, deps.DB) }, 2*time.Second))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gather, promhttp.HandlerOpts{})))
	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db
	gb := services.NewGuestbookService(deps.DB, domainMetrics, cfg.IdempotencyTTL)
	ct := &services.ContactService{
		DB:             deps.DB,
		Metrics:        domainMetrics,
		Notifier:       deps.Notifier,
		NotifyTimeout:  cfg.Notify.Timeout,
		IdempotencyTTL: cfg.IdempotencyTTL,
	}
	h := handlers.New(gb, ct, deps.Catalog)

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())
	forms := []gin.HandlerFunc{
		middleware.IdempotencyValidator(middleware.IdempotencyOptions{MaxLen: 200}, idempotencyLookup(deps.DB)),
		rl.Handler(),
		middleware.NoStore(),
	}
	cached := middleware.CacheControl(catalogMaxAge)

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Guestbook
		api.POST("/guestbook", append(forms, h.CreateGuestbookEntry)...)
		api.GET("/guestbook", h.ListGuestbookEntries)

		// Contact
		api.POST("/contact", append(forms, h.SendContactMessage)...)

		// Projects
		api.GET("/projects", cached, h.ListProjects)
		api.GET("/projects/slugs", cached, h.ListProjectSlugs)
		api.GET("/projects/:slug", cached, h.GetProject)
	}
	return nil
}

// idempotencyLookup adapts repo.GetIdempotency to the middleware callback.
// A miss is not an error.
func idempotencyLookup(db *gorm.DB) middleware.IdempotencyLookup {
	return func(ctx context.Context, scope, key string, now time.Time) (bool, error) {
		_, err := repo.GetIdempotency(ctx, db, scope, key, now)
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, repo.ErrNotFound):
			return false, nil
		default:
			return false, err
		}
	}
}

// corsConfig allows any origin when no allowlist is configured. Credentials
// are never allowed; the API has no cookies.
func corsConfig(c config.CORSConfig) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "If-None-Match", middleware.HeaderIdempotencyKey, middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID, middleware.HeaderIdempotencyReplayed, "ETag", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}
	if len(c.AllowedOrigins) == 0 {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = c.AllowedOrigins
	}
	return cc
}

// limitBody caps the request body at maxBytes using http.MaxBytesReader.
// Reads past the cap fail with *http.MaxBytesError, which handlers map to 413.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
