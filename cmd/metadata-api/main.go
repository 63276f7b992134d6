// Command metadata-api serves the sensor metadata query API: LLA validation
// and metadata listing over per-device BigQuery tables.
//
//	@title			Sensor Metadata API
//	@version		1.0
//	@description	Validates and lists per-device sensor metadata stored in BigQuery.
//	@BasePath		/
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq" // postgres driver for the audit store

	_ "github.com/iucc-f4d/metadata-api/docs/swagger" // generated swagger docs

	"github.com/iucc-f4d/metadata-api/internal/server"
	"github.com/iucc-f4d/metadata-api/pkg/audit"
	auditpg "github.com/iucc-f4d/metadata-api/pkg/audit/postgres"
	"github.com/iucc-f4d/metadata-api/pkg/config"
	"github.com/iucc-f4d/metadata-api/pkg/database/migrate"
	"github.com/iucc-f4d/metadata-api/pkg/health"
	"github.com/iucc-f4d/metadata-api/pkg/metadata"
	"github.com/iucc-f4d/metadata-api/pkg/warehouse"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath  string
	envPath     string
	showVersion bool
}

func parseFlags() options {
	opts := options{}
	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.envPath, "env", ".env", "Path to .env file (missing file is ignored)")
	flag.BoolVar(&opts.showVersion, "version", false, "Show version and exit")
	flag.Parse()
	return opts
}

func run() error {
	opts := parseFlags()

	if opts.showVersion {
		fmt.Printf("metadata-api version %s\n", server.Version)
		return nil
	}

	// Credentials conventionally live in a .env file next to the binary.
	if err := godotenv.Load(opts.envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading env file: %w", err)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	exec, err := warehouse.NewBigQueryExecutor(ctx, warehouse.BigQueryConfig{
		ProjectID:       cfg.Warehouse.ProjectID,
		CredentialsJSON: cfg.Warehouse.CredentialsJSON,
		CredentialsPath: cfg.Warehouse.CredentialsPath,
	})
	if err != nil {
		return err
	}
	defer func() { _ = exec.Close() }()

	auditor, closeAudit, err := setupAudit(cfg)
	if err != nil {
		return err
	}
	defer closeAudit()

	svc := metadata.NewService(cfg.Warehouse.ProjectID, exec, auditor, slog.Default())
	checker := health.NewChecker("metadata-api")

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      server.New(svc, checker, slog.Default()).Router(cfg.Server.RequestTimeout),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Server.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("metadata-api listening",
			"addr", srv.Addr, "project", cfg.Warehouse.ProjectID, "version", server.Version)
		errCh <- srv.ListenAndServe()
	}()
	checker.SetReady()

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	checker.SetDraining()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func setupLogging(cfg *config.Config) {
	hopts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler
	if cfg.Logging.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, hopts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, hopts)
	}
	slog.SetDefault(slog.New(handler))
}

// setupAudit selects the audit backend: PostgreSQL when a DSN is configured,
// the process log otherwise, nothing when disabled.
func setupAudit(cfg *config.Config) (audit.Logger, func(), error) {
	if !cfg.Audit.Enabled {
		return audit.Nop{}, func() {}, nil
	}

	if cfg.Audit.DSN == "" {
		logger := audit.NewSlogLogger(slog.Default())
		return logger, func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.Audit.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("opening audit database: %w", err)
	}
	if err := migrate.Run(db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	store := auditpg.New(db, auditpg.Config{RetentionDays: cfg.Audit.RetentionDays})
	store.StartCleanupRoutine(cfg.Audit.CleanupInterval)

	cleanup := func() {
		_ = store.Close()
		_ = db.Close()
	}
	return store, cleanup, nil
}
