package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/glossary/internal/images"
	"github.com/ziadkadry99/glossary/internal/search"
	"github.com/ziadkadry99/glossary/internal/site"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)

	SiteTitle      string
	DefaultSubject string

	// ImageDir is served under /images. ImageBaseURL points cards at a
	// remote image host instead.
	ImageDir     string
	ImageBaseURL string
	ImageExt     string
	Placeholder  string

	Search     search.Options
	DebounceMS int
}

// Server serves the glossary pages and its JSON API.
type Server struct {
	cfg        Config
	loader     site.DocumentLoader
	resolver   *images.Resolver
	router     chi.Router
	httpServer *http.Server
}

// New creates a server that renders the document provided by loader.
func New(cfg Config, loader site.DocumentLoader) *Server {
	s := &Server{
		cfg:    cfg,
		loader: loader,
	}
	s.resolver = s.newResolver()
	s.router = s.buildRouter()
	return s
}

func (s *Server) newResolver() *images.Resolver {
	placeholder := s.placeholderURL()
	if s.cfg.ImageBaseURL != "" {
		return images.NewResolver(s.cfg.ImageBaseURL, s.cfg.ImageExt, placeholder, images.HTTPProber{})
	}
	var prober images.Prober = noImages{}
	if s.cfg.ImageDir != "" {
		prober = images.FileProber{Root: s.cfg.ImageDir, URLPrefix: "/images"}
	}
	return images.NewResolver("/images", s.cfg.ImageExt, placeholder, prober)
}

// placeholderURL maps the configured site-relative placeholder to an
// absolute URL.
func (s *Server) placeholderURL() string {
	p := s.cfg.Placeholder
	if p == "" {
		p = images.DefaultPlaceholder
	}
	if strings.Contains(p, "://") {
		return p
	}
	return "/" + strings.TrimPrefix(p, "/")
}

type noImages struct{}

func (noImages) Probe(context.Context, string) (string, bool) { return "", false }

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	s.registerRoutes(r)
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

	log.Printf("glossary server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
