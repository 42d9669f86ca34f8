// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Yonota HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Connect the mail dispatcher (AMQP, with a log fallback).
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
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

	"github.com/taibuivan/yonota/internal/api"
	"github.com/taibuivan/yonota/internal/core/category"
	"github.com/taibuivan/yonota/internal/core/genre"
	"github.com/taibuivan/yonota/internal/core/title"
	"github.com/taibuivan/yonota/internal/platform/config"
	"github.com/taibuivan/yonota/internal/platform/constants"
	"github.com/taibuivan/yonota/internal/platform/migration"
	"github.com/taibuivan/yonota/internal/platform/notify"
	pgstore "github.com/taibuivan/yonota/internal/platform/postgres"
	redisstore "github.com/taibuivan/yonota/internal/platform/redis"
	"github.com/taibuivan/yonota/internal/platform/sec"
	"github.com/taibuivan/yonota/internal/social/comment"
	"github.com/taibuivan/yonota/internal/social/review"
	"github.com/taibuivan/yonota/internal/users/account"
	"github.com/taibuivan/yonota/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "yonota"))
	slog.SetDefault(log)

	log.Info("[Yonota] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "yonota"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Mail Dispatcher ────────────────────────────────────────────────
	// Confirmation codes leave through AMQP when a broker is configured.
	// Without one they are logged, which is enough for local development.
	var dispatcher notify.Dispatcher = &notify.LogDispatcher{Logger: log}
	if cfg.AMQPURL != "" {
		amqpDispatcher, err := notify.NewAMQPDispatcher(cfg.AMQPURL, cfg.MailFrom, log)
		must(log, err, "connect to amqp broker")
		defer func() {
			log.Info("closing amqp dispatcher")
			if cerr := amqpDispatcher.Close(); cerr != nil {
				log.Error("amqp close error", slog.Any("error", cerr))
			}
		}()
		dispatcher = amqpDispatcher
	}

	// ── 7. Token Service ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	codeRepository := auth.NewCodeRepository(rdb)
	authService := auth.NewService(userRepository, codeRepository, jwtSvc, dispatcher, log)
	authHandler := auth.NewHandler(authService)

	accountRepository := account.NewPostgresRepository(pool)
	accountService := account.NewService(accountRepository, log)
	accountHandler := account.NewHandler(accountService)

	categoryRepository := category.NewPostgresRepository(pool)
	categoryService := category.NewService(categoryRepository, log)
	categoryHandler := category.NewHandler(categoryService)

	genreRepository := genre.NewPostgresRepository(pool)
	genreService := genre.NewService(genreRepository, log)
	genreHandler := genre.NewHandler(genreService)

	// The title service resolves category and genre slugs through the
	// taxonomy repositories.
	titleRepository := title.NewPostgresRepository(pool)
	titleService := title.NewService(titleRepository, categoryRepository, genreRepository, log)
	titleHandler := title.NewHandler(titleService)

	reviewRepository := review.NewPostgresRepository(pool)
	reviewService := review.NewService(reviewRepository, titleRepository, log)
	reviewHandler := review.NewHandler(reviewService)

	commentRepository := comment.NewPostgresRepository(pool)
	commentService := comment.NewService(commentRepository, reviewRepository, log)
	commentHandler := comment.NewHandler(commentService)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Account:   accountHandler,
		Category:  categoryHandler,
		Genre:     genreHandler,
		Title:     titleHandler,
		Review:    reviewHandler,
		Comment:   commentHandler,
	}

	// The server context outlives startup; the rate limiter uses it to stop
	// its cleanup goroutine.
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, jwtSvc, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
