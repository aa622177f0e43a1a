// Copyright (c) 2026 Knihovna. All rights reserved.

// Command api is the entry point for the Knihovna HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to MongoDB.
//  4. Connect to Redis.
//  5. Ensure MongoDB indexes (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
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

	"github.com/joho/godotenv"

	"github.com/knihovna/api/internal/api"
	"github.com/knihovna/api/internal/catalog/author"
	"github.com/knihovna/api/internal/catalog/boardgame"
	"github.com/knihovna/api/internal/catalog/book"
	"github.com/knihovna/api/internal/catalog/lp"
	"github.com/knihovna/api/internal/catalog/query"
	"github.com/knihovna/api/internal/catalog/quote"
	"github.com/knihovna/api/internal/metadata"
	"github.com/knihovna/api/internal/platform/config"
	"github.com/knihovna/api/internal/platform/constants"
	mongostore "github.com/knihovna/api/internal/platform/mongo"
	redisstore "github.com/knihovna/api/internal/platform/redis"
	"github.com/knihovna/api/internal/platform/sec"
	"github.com/knihovna/api/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Knihovna] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	// A missing .env file is fine in production; the environment rules.
	_ = godotenv.Load()

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
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

	// ── 3. MongoDB ────────────────────────────────────────────────────────
	mongoClient, database, err := mongostore.NewClient(startupCtx, cfg.MongoURL, cfg.MongoDatabase, log)
	must(log, err, "connect to mongodb")
	defer func() {
		log.Info("closing mongodb client")
		if cerr := mongoClient.Disconnect(context.Background()); cerr != nil {
			log.Error("mongodb close error", slog.Any("error", cerr))
		}
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

	// ── 5. Indexes ────────────────────────────────────────────────────────
	must(log, mongostore.EnsureIndexes(startupCtx, database, log), "ensure mongodb indexes")

	// ── 6. Auth Service ───────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.TokenSecret, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return mongostore.Ping(context.Background(), mongoClient)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	registry := query.NewRegistry(log,
		constants.CollectionBooks,
		constants.CollectionAuthors,
		constants.CollectionLPs,
		constants.CollectionBoardGames,
		constants.CollectionQuotes,
	)

	authorRepository := author.NewMongoRepository(database, log)
	authorHandler := author.NewHandler(author.NewService(authorRepository, log))

	bookRepository := book.NewMongoRepository(database, registry, log)
	bookHandler := book.NewHandler(book.NewService(bookRepository, log))

	lpRepository := lp.NewMongoRepository(database, registry, log)
	lpHandler := lp.NewHandler(lp.NewService(lpRepository, log))

	boardGameRepository := boardgame.NewMongoRepository(database, registry, log)
	boardGameHandler := boardgame.NewHandler(boardgame.NewService(boardGameRepository, log))

	quoteRepository := quote.NewMongoRepository(database, registry, log)
	quoteHandler := quote.NewHandler(quote.NewService(quoteRepository, log))

	userRepository := auth.NewMongoUserRepository(database)
	sessionRepository := auth.NewRedisSessionRepository(rdb)
	authHandler := auth.NewHandler(auth.NewService(userRepository, sessionRepository, jwtSvc, log))

	metadataHandler := metadata.NewHandler(metadata.NewClient(cfg.GoogleBooksURL, log))

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Book:      bookHandler,
		Author:    authorHandler,
		LP:        lpHandler,
		BoardGame: boardGameHandler,
		Quote:     quoteHandler,
		Metadata:  metadataHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, jwtSvc, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
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
