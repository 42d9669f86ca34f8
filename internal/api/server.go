// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

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

	"github.com/taibuivan/yonota/internal/core/category"
	"github.com/taibuivan/yonota/internal/core/genre"
	"github.com/taibuivan/yonota/internal/core/title"
	"github.com/taibuivan/yonota/internal/platform/config"
	"github.com/taibuivan/yonota/internal/platform/constants"
	"github.com/taibuivan/yonota/internal/platform/middleware"
	"github.com/taibuivan/yonota/internal/social/comment"
	"github.com/taibuivan/yonota/internal/social/review"
	"github.com/taibuivan/yonota/internal/users/account"
	"github.com/taibuivan/yonota/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here; no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler. Always returns 200 if the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. Returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles signup and the confirmation code exchange.
	Auth *auth.Handler

	// Account handles the user directory and the /me profile endpoints.
	Account *account.Handler

	// Category manages the title classification taxonomy.
	Category *category.Handler

	// Genre manages the genre taxonomy.
	Genre *genre.Handler

	// Title handles the catalog of reviewable works.
	Title *title.Handler

	// Review handles per-title reviews and scoring.
	Review *review.Handler

	// Comment handles discussion threads under reviews.
	Comment *comment.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
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
		api.Mount("/users", h.Account.Routes())

		api.Route("/categories", h.Category.RegisterRoutes)
		api.Route("/genres", h.Genre.RegisterRoutes)

		// Reviews and comments are addressed through their parents.
		api.Route("/titles", func(titles chi.Router) {
			h.Title.RegisterRoutes(titles)

			titles.Route("/{titleID}/reviews", func(reviews chi.Router) {
				h.Review.RegisterRoutes(reviews)

				reviews.Route("/{reviewID}/comments", h.Comment.RegisterRoutes)
			})
		})
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

// Handler returns the composed router so the server can be driven in-process,
// e.g. by httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
