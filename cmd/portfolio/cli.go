// This file defines the command-line surface: the root app, its global
// --env-file flag and the maintenance commands.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"gorm.io/gorm"

	"github.com/tbourn/go-portfolio-backend/internal/catalog"
	"github.com/tbourn/go-portfolio-backend/internal/config"
	"github.com/tbourn/go-portfolio-backend/internal/repo"
	"github.com/tbourn/go-portfolio-backend/internal/services"
	"github.com/tbourn/go-portfolio-backend/internal/sysutil"
)

// errDanglingRefs makes `catalog verify` exit non-zero.
var errDanglingRefs = errors.New("catalog has dangling prev/next references")

// newCLIApp creates the CLI application with all commands.
func newCLIApp(out io.Writer) *cli.App {
	app := &cli.App{
		Name:    "portfolio",
		Usage:   "Portfolio API server and maintenance tasks",
		Version: Version,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "env-file", Value: cli.NewStringSlice(".env"), Usage: "dotenv files to preload (missing files are skipped)"},
		},
		Before: func(c *cli.Context) error {
			return config.LoadDotEnv(c.StringSlice("env-file")...)
		},
		Action: func(c *cli.Context) error { return runServe(c.Context) },
		Commands: []*cli.Command{
			serveCmd(),
			migrateCmd(),
			seedCmd(),
			catalogCmd(),
		},
	}
	// Errors are returned to main so tests can inspect them.
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the HTTP API (default)",
		Action: func(c *cli.Context) error { return runServe(c.Context) },
	}
}

// migrateCmd creates the tables and drops expired idempotency records.
func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply the schema and purge expired idempotency keys",
		Action: func(c *cli.Context) error {
			db, _, err := openStore(c.Context)
			if err != nil {
				return err
			}
			defer repo.Close(db)
			_, err = fmt.Fprintln(c.App.Writer, "schema up to date")
			return err
		},
	}
}

func seedCmd() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Insert sample guestbook entries into an empty guestbook",
		Action: func(c *cli.Context) error {
			db, _, err := openStore(c.Context)
			if err != nil {
				return err
			}
			defer repo.Close(db)

			n, err := services.SeedGuestbook(c.Context, db)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.App.Writer, "seeded %d guestbook entries\n", n)
			return err
		},
	}
}

func catalogCmd() *cli.Command {
	pathFlag := &cli.StringFlag{Name: "file", Aliases: []string{"f"}, EnvVars: []string{"CATALOG_PATH"}, Usage: "YAML catalog (default: embedded)"}
	return &cli.Command{
		Name:  "catalog",
		Usage: "Inspect the project catalog",
		Subcommands: []*cli.Command{
			{
				Name:  "slugs",
				Usage: "Print every project slug in catalog order",
				Flags: []cli.Flag{pathFlag},
				Action: func(c *cli.Context) error {
					cat, err := catalog.Open(c.String("file"))
					if err != nil {
						return err
					}
					for _, s := range cat.Slugs() {
						if _, err := fmt.Fprintln(c.App.Writer, s); err != nil {
							return err
						}
					}
					return nil
				},
			},
			{
				Name:  "verify",
				Usage: "Validate the catalog and report dangling prev/next references as JSON",
				Flags: []cli.Flag{pathFlag},
				Action: func(c *cli.Context) error {
					cat, err := catalog.Open(c.String("file"))
					if err != nil {
						return err
					}
					refs := cat.DanglingRefs()
					report := struct {
						Projects int                   `json:"projects"`
						Dangling []catalog.DanglingRef `json:"dangling"`
					}{cat.Len(), refs}
					if report.Dangling == nil {
						report.Dangling = []catalog.DanglingRef{}
					}
					enc := json.NewEncoder(c.App.Writer)
					enc.SetIndent("", "  ")
					if err := enc.Encode(report); err != nil {
						return err
					}
					if len(refs) > 0 {
						return cli.Exit(errDanglingRefs, 1)
					}
					return nil
				},
			},
		},
	}
}

// openStore loads the configuration, opens the database and migrates it.
func openStore(ctx context.Context) (*gorm.DB, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}
	sysutil.ConfigureLogger(cfg.LogLevel, cfg.LogPretty, os.Stderr)

	db, err := repo.Open(repo.Options{
		Driver:  cfg.DB.Driver,
		Path:    cfg.DB.Path,
		DSN:     cfg.DB.URL,
		Tracing: cfg.OTEL.Enabled,
	})
	if err != nil {
		return nil, cfg, fmt.Errorf("open database: %w", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		_ = repo.Close(db)
		return nil, cfg, fmt.Errorf("migrate: %w", err)
	}
	if _, err := repo.PurgeExpiredIdempotency(ctx, db, time.Now().UTC()); err != nil {
		_ = repo.Close(db)
		return nil, cfg, fmt.Errorf("purge idempotency keys: %w", err)
	}
	return db, cfg, nil
}
