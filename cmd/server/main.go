package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"waste-route-service/internal/adapters/dataset"
	"waste-route-service/internal/adapters/repositories"
	"waste-route-service/internal/api"
	"waste-route-service/internal/config"
	"waste-route-service/internal/platform/db"
	"waste-route-service/internal/platform/logging"
	"waste-route-service/internal/platform/metrics"
	"waste-route-service/internal/ports"
	"waste-route-service/internal/services"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It loads the dataset, wires the configured ledger backend behind the port
// and starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Log.Logging())
	slog.SetDefault(logger)
	if envErr != nil {
		logger.Debug("No .env file found (using environment variables)")
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ds, err := dataset.LoadFile(cfg.Dataset.Path)
	if err != nil {
		return err
	}
	registry, err := ds.Build(logger)
	if err != nil {
		return err
	}

	repo, closeRepo, err := openLedgerRepository(ctx, cfg.Ledger)
	if err != nil {
		return err
	}
	defer closeRepo()

	var m *metrics.Collector
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Namespace)
	}

	dispatcher := services.NewDispatcher(registry, repo, m, logger)
	router := api.NewRouter(api.Deps{
		Dispatcher: dispatcher,
		Metrics:    m,
		Logger:     logger,
		ExportPath: cfg.Ledger.ExportPath,
		RateLimit:  cfg.HTTP.RateLimit,
		Burst:      cfg.HTTP.Burst,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			"addr", srv.Addr,
			"depot", registry.Depot(),
			"areas", registry.Graph().Len(),
			"vehicles", len(registry.Vehicles()),
			"ledger_backend", cfg.Ledger.Backend,
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openLedgerRepository returns a nil repository for the memory backend.
func openLedgerRepository(ctx context.Context, cfg config.LedgerConfig) (ports.LedgerRepository, func(), error) {
	noop := func() {}

	switch cfg.Backend {
	case config.BackendMemory:
		return nil, noop, nil

	case config.BackendSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, noop, fmt.Errorf("open ledger: create sqlite dir: %w", err)
			}
		}
		conn, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, noop, fmt.Errorf("open ledger: %w", err)
		}
		if err := repositories.InitSchema(ctx, conn, repositories.DialectSQLite); err != nil {
			_ = conn.Close()
			return nil, noop, fmt.Errorf("open ledger: %w", err)
		}
		return repositories.NewSqliteLedgerRepository(conn), func() { _ = conn.Close() }, nil

	case config.BackendPostgres:
		conn, err := db.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("open ledger: %w", err)
		}
		if err := repositories.InitSchema(ctx, conn, repositories.DialectPostgres); err != nil {
			_ = conn.Close()
			return nil, noop, fmt.Errorf("open ledger: %w", err)
		}
		return repositories.NewSQLLedgerRepository(conn), func() { _ = conn.Close() }, nil

	case config.BackendRedis:
		client, err := repositories.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, noop, fmt.Errorf("open ledger: %w", err)
		}
		return repositories.NewRedisLedgerRepository(client, cfg.RedisPrefix), func() { _ = client.Close() }, nil

	default:
		return nil, noop, fmt.Errorf("open ledger: unsupported backend %q", cfg.Backend)
	}
}
