// Package main is the entry point for the GiroPro API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // ledger time zones in minimal containers

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/config"
	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/dedup"
	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/handler"
	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/ledger"
	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/middleware"
	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/ratelimit"
	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/repo"
	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/service"
	"github.com/vinih2/giropro-motoristas-v2-sub000/migrations"
	"github.com/vinih2/giropro-motoristas-v2-sub000/openapi"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// --- Database ---------------------------------------------------------
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if cfg.AutoMigrate {
		db := stdlib.OpenDBFromPool(pool)
		n, err := migrations.Up(ctx, db)
		_ = db.Close()
		if err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("migrations applied", "count", n)
	}

	// --- Rate limit store -------------------------------------------------
	policy := ratelimit.PerMinute(cfg.ImportRateLimit)
	var limits ratelimit.Store = ratelimit.NewMemoryStore(policy)
	if cfg.RedisURL != "" {
		rs, err := ratelimit.OpenRedisStore(ctx, cfg.RedisURL, policy)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer rs.Close()
		limits = rs
		slog.Info("rate limits shared through redis")
	}

	// --- Services ---------------------------------------------------------
	trips := repo.NewTripRepo(pool)
	profiles := service.NewProfileService(repo.NewProfileRepo(pool))
	svc := handler.Services{
		Imports: service.NewImportService(
			ledger.NewParser(cfg.LedgerLocation),
			dedup.New(cfg.DedupWindowDays, cfg.LedgerLocation),
			profiles,
			trips,
			trips,
			logger,
		),
		Trips:    service.NewTripService(trips, profiles, cfg.LedgerLocation),
		Profiles: profiles,
		Tax:      service.NewTaxService(trips, profiles),
		Export:   service.NewExportService(trips),
	}

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID, RealIP, Logger, Recoverer,
	// CORS, body limit, authentication.
	// The import rate limiter runs after authentication so it can key by user.
	auth := middleware.NewAuthenticator(cfg.JWTSecret, cfg.JWTIssuer,
		"/healthz", "/openapi.yaml",
		"/calculations/daily-profit", "/calculations/cost-breakdown", "/calculations/fuel-comparison",
	)
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxImportBytes))
	r.Use(auth.Handler)

	server := handler.NewServer(svc, cfg.LedgerLocation, openapi.Document, logger)
	server.Routes(r, middleware.NewRateLimiter(limits, policy, logger))

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout leaves room for a large import commit.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
