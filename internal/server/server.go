// Package server exposes the query facade over HTTP: evaluation, corridor
// search, resolution, and catalog administration.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/naija-prop/intel-cli/internal/catalog"
	"github.com/naija-prop/intel-cli/internal/query"
)

// Options configures the HTTP server.
type Options struct {
	Addr           string
	AllowedOrigins []string
	RatePerClient  float64 // requests/second per client IP
	Burst          int
}

// Server wires the facade and catalog handle into a chi router.
type Server struct {
	facade *query.Facade
	handle *catalog.Handle
	opts   Options
	http   *http.Server
}

// New builds the server. Defaults: listen on :8320, 10 req/s per client.
func New(facade *query.Facade, handle *catalog.Handle, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = ":8320"
	}
	if opts.RatePerClient <= 0 {
		opts.RatePerClient = 10
	}
	if opts.Burst <= 0 {
		opts.Burst = 20
	}

	s := &Server{facade: facade, handle: handle, opts: opts}
	s.http = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(logRequests)
	r.Use(rateLimit(s.opts.RatePerClient, s.opts.Burst))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/zones", s.handleZones)
		r.Get("/zones/{name}", s.handleZone)
		r.Get("/resolve", s.handleResolve)
		r.Post("/evaluate", s.handleEvaluate)
		r.Post("/corridor", s.handleCorridor)
		r.Get("/corridor/buffer", s.handleCorridorBuffer)
		r.Post("/compare", s.handleCompare)
		r.Post("/ask", s.handleAsk)
		r.Post("/reload", s.handleReload)
	})

	return r
}

// Handler returns the assembled router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("http server listening", zap.String("addr", s.opts.Addr))
		if err := s.http.ListenAndServe(); err != nil && !eris.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return eris.Wrap(err, "http server")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return eris.Wrap(err, "http server shutdown")
	}
	zap.L().Info("http server stopped")
	return nil
}
