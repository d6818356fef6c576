// This file wires the HTTP server: configuration, logging, tracing, storage,
// catalog and notifier, then serves until a signal arrives and shuts down
// gracefully.

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-portfolio-backend/internal/catalog"
	"github.com/tbourn/go-portfolio-backend/internal/config"
	httpapi "github.com/tbourn/go-portfolio-backend/internal/http"
	"github.com/tbourn/go-portfolio-backend/internal/notify"
	"github.com/tbourn/go-portfolio-backend/internal/observability"
	"github.com/tbourn/go-portfolio-backend/internal/repo"
	"github.com/tbourn/go-portfolio-backend/internal/services"
)

// runServe starts the API and blocks until SIGINT/SIGTERM or ctx ends, then
// drains in-flight requests within the configured shutdown timeout.
func runServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, cfg, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := repo.Close(db); err != nil {
			log.Warn().Err(err).Msg("close database")
		}
	}()
	gin.SetMode(cfg.GinMode)

	shutdownTracing, err := observability.SetupOTel(ctx, cfg.OTEL, Version)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn().Err(err).Msg("flush traces")
		}
	}()

	if cfg.SeedGuestbook {
		n, err := services.SeedGuestbook(ctx, db)
		if err != nil {
			return fmt.Errorf("seed guestbook: %w", err)
		}
		if n > 0 {
			log.Info().Int("entries", n).Msg("guestbook seeded")
		}
	}

	cat, err := catalog.Open(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	for _, d := range cat.DanglingRefs() {
		log.Warn().Str("ref", d.String()).Msg("catalog reference does not resolve")
	}

	var notifier services.Notifier
	if cfg.Notify.Enabled() {
		rs, err := notify.NewResend(notify.ResendConfig{
			APIKey:  cfg.Notify.ResendAPIKey,
			From:    cfg.Notify.From,
			To:      cfg.Notify.To,
			Timeout: cfg.Notify.Timeout,
		}, nil)
		if err != nil {
			return fmt.Errorf("configure notifier: %w", err)
		}
		defer rs.Close()
		notifier = rs
	} else {
		log.Info().Msg("contact notifications disabled")
	}

	r := gin.New()
	if err := httpapi.RegisterRoutes(r, httpapi.Deps{DB: db, Catalog: cat, Notifier: notifier}, cfg); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
	return serveUntilDone(ctx, srv, cfg)
}

// serveUntilDone runs srv until ctx is canceled and then shuts it down.
func serveUntilDone(ctx context.Context, srv *http.Server, cfg config.Config) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", Version).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info().Msg("server exited gracefully")
	return nil
}
