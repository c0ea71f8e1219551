// Package api serves the recommender's pages and JSON API on loopback HTTP.
package api

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/smartlife/recommender/internal/http/response"
	"github.com/smartlife/recommender/internal/navigation"
	"github.com/smartlife/recommender/internal/sse"
	"github.com/smartlife/recommender/internal/trailer"
)

// Options holds presentation settings.
type Options struct {
	// Origin is the URL the browser loads pages from; CORS allows only it.
	Origin       string
	LoadingDelay time.Duration
	Version      string
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	services   *Services
	controller *navigation.Controller
	player     *trailer.Player
	sseManager *sse.Manager
	sseHandler *sse.Handler
	media      *Media
	opts       Options
	router     *chi.Mux
	api        huma.API
	pages      map[string]*template.Template
	logger     *slog.Logger

	quitOnce sync.Once
	onQuit   func()
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(services *Services, controller *navigation.Controller, player *trailer.Player, sseManager *sse.Manager, media *Media, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Version == "" {
		opts.Version = "1.0.0"
	}

	s := &Server{
		services:   services,
		controller: controller,
		player:     player,
		sseManager: sseManager,
		media:      media,
		opts:       opts,
		router:     chi.NewRouter(),
		pages:      parsePages(),
		logger:     logger,
	}
	if sseManager != nil {
		s.sseHandler = sse.NewHandler(sseManager, logger)
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("SmartLife Recommender API", opts.Version)
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	humaConfig.DocsPath = "/api/docs"
	humaConfig.OpenAPIPath = "/api/openapi"
	humaConfig.SchemasPath = "/api/schemas"
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, mainly for tests.
func (s *Server) API() huma.API {
	return s.api
}

// SetOnQuit registers the callback run by POST /api/v1/app/quit.
func (s *Server) SetOnQuit(fn func()) {
	s.onQuit = fn
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	origins := []string{"http://127.0.0.1:*", "http://localhost:*"}
	if s.opts.Origin != "" {
		origins = []string{s.opts.Origin}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerCatalogRoutes()
	s.registerSearchRoutes()
	s.registerTeamRoutes()
	s.registerNavigationRoutes()
	s.registerTrailerRoutes()
	s.registerAppRoutes()

	if s.sseHandler != nil {
		s.router.Get("/api/v1/events", s.sseHandler.ServeHTTP)
	}

	s.registerPageRoutes()

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if isAPIPath(r.URL.Path) {
			response.NotFound(w, "no such endpoint", s.logger)
			return
		}
		s.renderNotice(w, r, http.StatusNotFound, "Page Not Found", "There is nothing at this address.")
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.MethodNotAllowed(w, s.logger)
	})
}

func isAPIPath(p string) bool {
	return p == "/api" || strings.HasPrefix(p, "/api/")
}
