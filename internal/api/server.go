// Package api provides the optional HTTP surface: a REST view of the tool
// dispatcher, the session and the catalog, plus the MCP streamable HTTP
// endpoint.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/listenupapp/audiobook-mcp/internal/catalog"
	"github.com/listenupapp/audiobook-mcp/internal/http/response"
	"github.com/listenupapp/audiobook-mcp/internal/ratelimit"
	"github.com/listenupapp/audiobook-mcp/internal/session"
	"github.com/listenupapp/audiobook-mcp/internal/tools"
)

// Options configures the HTTP surface.
type Options struct {
	Version        string
	AllowedOrigins []string

	// RateLimiter limits requests per client IP. Nil disables limiting.
	RateLimiter *ratelimit.KeyedRateLimiter

	// MCP is mounted at /mcp when set.
	MCP http.Handler
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	dispatcher *tools.Dispatcher
	session    *session.Session
	catalog    catalog.Catalog
	opts       Options

	router *chi.Mux
	api    huma.API
	logger *slog.Logger
}

// NewServer creates the HTTP server with all routes configured.
func NewServer(d *tools.Dispatcher, sess *session.Session, cat catalog.Catalog, opts Options, logger *slog.Logger) *Server {
	if opts.Version == "" {
		opts.Version = "dev"
	}

	s := &Server{
		dispatcher: d,
		session:    sess,
		catalog:    cat,
		opts:       opts,
		router:     chi.NewRouter(),
		logger:     logger,
	}

	s.setupMiddleware()

	config := huma.DefaultConfig("Audiobook MCP API", opts.Version)
	s.api = humachi.New(s.router, config)
	RegisterErrorHandler()

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API returns the huma API for tests and documentation.
func (s *Server) API() huma.API {
	return s.api
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Mcp-Session-Id", "Mcp-Protocol-Version", "Last-Event-ID"},
		ExposedHeaders:   []string{"Mcp-Session-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if s.opts.RateLimiter != nil {
		s.router.Use(RateLimitMiddleware(s.opts.RateLimiter, s.logger))
	}

	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "Not found", s.logger)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.MethodNotAllowed(w, "Method not allowed", s.logger)
	})
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerToolRoutes()
	s.registerSessionRoutes()
	s.registerBookRoutes()

	if s.opts.MCP != nil {
		s.router.Handle("/mcp", s.opts.MCP)
	}
}
