package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"finitefield.org/docsite/internal/catalog"
	"finitefield.org/docsite/internal/content"
	custommw "finitefield.org/docsite/internal/middleware"
	"finitefield.org/docsite/internal/observability"
	"finitefield.org/docsite/internal/shell"
	"finitefield.org/docsite/public"
)

// Config holds runtime options and dependencies for the docs HTTP server.
type Config struct {
	Address  string
	SiteName string
	BaseURL  string
	Sessions custommw.SessionConfig

	Logger  *zap.Logger
	Catalog *catalog.Store
	Pages   *content.Store
	Shells  *shell.Registry
}

// New constructs the HTTP server with middleware stack and embedded assets.
func New(cfg Config) (*http.Server, error) {
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, nil
}

// NewHandler builds the router without binding an address.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Catalog == nil || cfg.Pages == nil || cfg.Shells == nil {
		return nil, fmt.Errorf("httpserver: catalog, pages and shells are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	staticContent, err := public.StaticFS()
	if err != nil {
		return nil, fmt.Errorf("embed static: %w", err)
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(observability.InjectLogger(logger))
	router.Use(observability.TraceMiddleware)
	router.Use(observability.RequestLogger)
	router.Use(observability.Recoverer)
	router.Use(chimw.Compress(5))
	router.Use(chimw.Timeout(60 * time.Second))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/assets/*", http.StripPrefix("/assets", custommw.AssetsWithCache(staticContent)))

	h := &handlers{
		site:    cfg.SiteName,
		baseURL: cfg.BaseURL,
		catalog: cfg.Catalog,
		pages:   cfg.Pages,
		shells:  cfg.Shells,
	}
	sessions := custommw.NewSessions(cfg.Sessions)

	router.Group(func(r chi.Router) {
		r.Use(custommw.HTMX)
		r.Use(noStore)
		r.Use(sessions.Handler)
		r.Use(custommw.CSRF)

		r.Get("/", h.home)
		r.Post(togglePath, h.togglePanel)
		r.Get("/{id}", h.page)
		r.NotFound(h.notFound)
	})

	return router, nil
}

func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
