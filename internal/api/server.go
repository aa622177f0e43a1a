// Copyright (c) 2026 Knihovna. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/knihovna/api/internal/catalog/author"
	"github.com/knihovna/api/internal/catalog/boardgame"
	"github.com/knihovna/api/internal/catalog/book"
	"github.com/knihovna/api/internal/catalog/lp"
	"github.com/knihovna/api/internal/catalog/quote"
	"github.com/knihovna/api/internal/metadata"
	"github.com/knihovna/api/internal/platform/config"
	"github.com/knihovna/api/internal/platform/constants"
	"github.com/knihovna/api/internal/platform/middleware"
	"github.com/knihovna/api/internal/users/auth"
)

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles authentication routes (login, refresh, logout).
	Auth *auth.Handler

	// Book handles the book catalog.
	Book *book.Handler

	// Author handles the author registry.
	Author *author.Handler

	// LP handles the vinyl record catalog.
	LP *lp.Handler

	// BoardGame handles the board game catalog.
	BoardGame *boardgame.Handler

	// Quote handles saved quotations.
	Quote *quote.Handler

	// Metadata handles ISBN metadata lookups.
	Metadata *metadata.Handler
}

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(ctx))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Route("/books", h.Book.RegisterRoutes)
		api.Route("/authors", h.Author.RegisterRoutes)
		api.Route("/lps", h.LP.RegisterRoutes)
		api.Route("/board-games", h.BoardGame.RegisterRoutes)
		api.Route("/quotes", h.Quote.RegisterRoutes)
		api.Route("/metadata", h.Metadata.RegisterRoutes)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
