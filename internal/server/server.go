package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/docpress/internal/export"
	"github.com/ziadkadry99/docpress/internal/layout"
	"github.com/ziadkadry99/docpress/internal/store"
)

// Config holds server configuration.
type Config struct {
	Port      int
	StaticDir string // served under /static/
	AllowAll  bool   // allow all CORS origins (dev mode)
}

// Server is the document rendering server. It holds the read-only
// collaborators shared by every request.
type Server struct {
	cfg        Config
	store      *store.Store
	layout     *layout.Renderer
	exporter   *export.Exporter
	router     chi.Router
	httpServer *http.Server
}

// New creates a new server with all dependencies.
func New(cfg Config, s *store.Store, r *layout.Renderer, e *export.Exporter) *Server {
	srv := &Server{
		cfg:      cfg,
		store:    s,
		layout:   r,
		exporter: e,
	}

	srv.router = srv.buildRouter()
	return srv
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", s.handleIndex)
	r.Get("/api/documents", s.handleListDocuments)
	r.Get("/css/style.css", s.handleStylesheet)
	r.Get("/static/css/style.css", s.handleStylesheet)

	r.Route("/document/{name}", func(r chi.Router) {
		r.Get("/", s.handleDocument)
		r.Get("/raw_html", s.handleRawHTML)
		r.Get("/raw_css", s.handleRawCSS)
		r.Get("/highlighted_html", s.handleHighlightedHTML)
		r.Get("/highlighted_css", s.handleHighlightedCSS)
		r.Get("/markdown", s.handleMarkdown)
		r.Get("/pdf", s.handlePDF)
	})

	if s.cfg.StaticDir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(s.cfg.StaticDir))))
	}

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// ServerConfig returns the server configuration.
func (s *Server) ServerConfig() Config { return s.cfg }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("docpress server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
