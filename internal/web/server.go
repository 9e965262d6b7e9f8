// Package web provides the HTTP server and handlers for the careers pages
// and their editor API.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/ulule/limiter/v3"
	limitermw "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/config"
	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/core"
	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/metrics"
	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/web/middleware"
)

// Server is the HTTP server for the careers application.
type Server struct {
	service *core.Service
	cfg     *config.Config
	auth    *middleware.Authenticator
	router  *chi.Mux
	server  *http.Server
}

// NewServer creates a new Server instance.
func NewServer(service *core.Service, cfg *config.Config) *Server {
	s := &Server{
		service: service,
		cfg:     cfg,
		auth:    middleware.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.CookieName),
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(middleware.Metrics)
	s.router.Use(chimw.Compress(5))
	if s.cfg.Server.RequestTimeout > 0 {
		s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
	}

	// Security hardening
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))
	if len(s.cfg.Security.AllowedOrigins) > 0 {
		s.router.Use(cors.New(cors.Options{
			AllowedOrigins:   s.cfg.Security.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}).Handler)
	}

	if s.cfg.Rate.Enabled {
		s.router.Use(rateLimit(s.cfg.Rate.RequestsPerMinute))
	}

	s.router.Use(s.auth.Authenticate)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", metrics.Handler())

	// Public pages
	s.router.Get("/{slug}/careers", s.handleCareersPage)
	s.router.Get("/preview/{slug}", s.handlePreviewPage)

	s.router.Route("/api", func(r chi.Router) {
		// The body is checked before the caller, so malformed requests
		// get 400 even without a session.
		r.With(s.importRateLimit()).Post("/csv-import", s.handleCSVImport)
		r.Post("/preview-token", s.handlePreviewToken)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)

			// Company
			r.Get("/company", s.handleGetCompany)
			r.Put("/company", s.handleUpdateCompany)

			// Content sections
			r.Get("/sections", s.handleListSections)
			r.Post("/sections", s.handleAddSection)
			r.Patch("/sections/{id}", s.handleUpdateSection)
			r.Delete("/sections/{id}", s.handleDeleteSection)
			r.Post("/sections/{id}/move", s.handleMoveSection)

			// Jobs
			r.Get("/jobs", s.handleListJobs)
			r.Post("/jobs", s.handleAddJob)
			r.Patch("/jobs/{id}", s.handleUpdateJob)
			r.Delete("/jobs/{id}", s.handleDeleteJob)
			r.Put("/jobs/{id}/active", s.handleSetJobActive)

			// Import sessions
			r.With(s.importRateLimit()).Post("/imports", s.handleStartImport)
			r.With(s.importRateLimit()).Post("/imports/{id}", s.handleSelectFile)
			r.Get("/imports/{id}", s.handleGetImport)
			r.Post("/imports/{id}/confirm", s.handleConfirmImport)
			r.Post("/imports/{id}/discard", s.handleDiscardImport)
			r.Post("/imports/{id}/retry", s.handleRetryImport)
		})
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	sc := s.cfg.Server
	s.server = &http.Server{
		Addr:         sc.Addr(),
		Handler:      s.router,
		ReadTimeout:  sc.ReadTimeout,
		WriteTimeout: sc.WriteTimeout,
		IdleTimeout:  sc.IdleTimeout,
	}

	slog.Info("starting server", "addr", sc.Addr())
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"imports": s.service.Limiter().Status(),
	})
}

// importRateLimit applies the tighter per-IP budget of import endpoints.
func (s *Server) importRateLimit() func(http.Handler) http.Handler {
	if !s.cfg.Rate.Enabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return rateLimit(s.cfg.Rate.ImportLimit)
}

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Prevent MIME type sniffing
			w.Header().Set("X-Content-Type-Options", "nosniff")

			// Prevent clickjacking
			w.Header().Set("X-Frame-Options", "DENY")

			// Careers pages embed company logos from anywhere and videos
			// from YouTube or Vimeo.
			if enableCSP {
				w.Header().Set("Content-Security-Policy", "default-src 'self'; img-src 'self' data: https:; style-src 'self' 'unsafe-inline'; frame-src https://www.youtube.com https://player.vimeo.com")
			}

			// Control referrer information
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			next.ServeHTTP(w, r)
		})
	}
}

// rateLimit allows perMinute requests per client IP.
func rateLimit(perMinute int) func(http.Handler) http.Handler {
	l := limiter.New(memory.NewStore(), limiter.Rate{Period: time.Minute, Limit: int64(perMinute)})
	mw := limitermw.NewMiddleware(l,
		limitermw.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "60")
			writeJSON(w, http.StatusTooManyRequests, ErrorResponse{
				Error:   "rate limit exceeded",
				Message: "Too many requests",
				Action:  "Please wait a minute and try again",
				Code:    "RATE001",
			})
		}),
	)
	return mw.Handler
}

// writeJSON encodes v as JSON with the given status.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
