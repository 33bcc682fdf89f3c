package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"minar-ads/internal/adapter/adminkeys"
	"minar-ads/internal/adapter/billing"
	"minar-ads/internal/adapter/geocode"
	httpadapter "minar-ads/internal/adapter/http"
	"minar-ads/internal/adapter/postgres"
	"minar-ads/internal/adapter/usecase"
	"minar-ads/internal/config"
	"minar-ads/internal/core/port"
	"minar-ads/internal/db"
)

// main is the entry point of the placement engine. It loads
// configuration, optionally runs database migrations, initializes the
// document store and collaborator clients, then starts the HTTP server.
// On receiving a termination signal it gracefully shuts down the server.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(cfg.Log.NewHandler(os.Stdout))

	// Optionally run migrations if configured.
	if cfg.Psql.RunMigrations {
		if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
			logger.Error("migration error", slog.Any("error", err))
		} else {
			logger.Info("migrations applied successfully")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	var (
		store    = postgres.NewStore(pool)
		clock    = port.SystemClock{}
		geocoder = geocode.NewClient(cfg.Geocoder.BaseURL, cfg.Geocoder.UserAgent, cfg.Geocoder.Timeout)
		payments = billing.NewClient(cfg.Billing.VerifyURL, cfg.Billing.Timeout)
		admins   = adminkeys.NewDirectory(cfg.Admin.Keys)
	)

	if cfg.Psql.SeedDemo {
		if err = db.Seed(ctx, store, clock); err != nil {
			logger.Error("seed error", slog.Any("error", err))
		} else {
			logger.Info("demo ads seeded")
		}
	}

	gate := usecase.NewQuotaGate(store, clock, cfg.Quota.FreePeriod)
	handler := httpadapter.NewHandler(httpadapter.Services{
		Submissions: usecase.NewSubmissionService(store, geocoder, gate, clock, logger),
		Ads:         usecase.NewAdService(store, payments, clock, logger),
		Ranking:     usecase.NewRankingService(store, clock),
		Moderation:  usecase.NewModerationService(store, admins, clock, logger),
	}, logger)

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr(),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	value := <-quit
	exitCode = 128 + int(value.(syscall.Signal))

	// The signal context is already cancelled here; the drain needs its
	// own deadline or Shutdown returns immediately.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
