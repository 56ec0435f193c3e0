package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	specpkg "github.com/venapictures/studio/api"
	"github.com/venapictures/studio/internal/api"
	"github.com/venapictures/studio/internal/auth"
	"github.com/venapictures/studio/internal/config"
	"github.com/venapictures/studio/internal/console"
	"github.com/venapictures/studio/internal/database"
	"github.com/venapictures/studio/internal/portal"
	"github.com/venapictures/studio/internal/promo"
	"github.com/venapictures/studio/internal/seed"
	"github.com/venapictures/studio/internal/store"
	"github.com/venapictures/studio/internal/workspace"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := api.RouterDeps{
		Backend:     cfg.Backend,
		Version:     cfg.Version,
		OpenAPISpec: specpkg.OpenAPISpec,
		BcryptCost:  cfg.BcryptCost,
	}

	var tables *store.Tables
	switch cfg.Backend {
	case config.BackendPostgres:
		if cfg.AutoMigrate {
			if err := database.Migrate(cfg.DatabaseURL); err != nil {
				slog.Error("failed to run migrations", "error", err)
				os.Exit(1)
			}
		}

		db, err := database.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		tables = store.NewPostgresTables(db.Pool())
		deps.DBPinger = db
		if cfg.SQLConsoleEnabled {
			deps.Console = console.New(console.NewPostgresExecutor(db.Pool()), cfg.SQLStatementTimeout)
		}
	default:
		tables = store.NewMemoryTables()
		rep, err := seed.New(tables, cfg.BcryptCost).Run(ctx, seed.Default())
		if err != nil {
			slog.Error("failed to seed memory backend", "error", err)
			os.Exit(1)
		}
		slog.Info("memory backend seeded", "created", rep.Created)
	}

	sessions, closeSessions, err := newSessionStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open session store", "error", err)
		os.Exit(1)
	}
	defer closeSessions()

	deps.Auth = auth.NewService(tables.Users, sessions, cfg.BcryptCost, cfg.SessionTTL)
	shells := workspace.NewRegistry(tables, cfg.ToastDuration)
	deps.Shells = shells
	deps.Portal = portal.NewService(tables)

	sweeperCtx, sweeperCancel := context.WithCancel(context.Background())
	defer sweeperCancel()
	go promo.NewSweeper(tables.PromoCodes, cfg.PromoSweepInterval).Start(sweeperCtx)
	go shells.StartSweeper(sweeperCtx, cfg.WorkspaceSweepInterval, cfg.SessionTTL)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting studio server", "port", cfg.Port, "version", cfg.Version, "backend", cfg.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down server")
	case err := <-serverErr:
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	sweeperCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

func newSessionStore(ctx context.Context, cfg *config.Config) (auth.SessionStore, func(), error) {
	if cfg.SessionStore != config.SessionStoreRedis {
		return auth.NewMemorySessionStore(), func() {}, nil
	}
	rs, err := auth.NewRedisSessionStore(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	return rs, func() {
		if err := rs.Close(); err != nil {
			slog.Warn("closing redis session store", "error", err)
		}
	}, nil
}

func setupLogger(level, format string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
