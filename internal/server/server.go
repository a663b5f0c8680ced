// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the query engine over HTTP: search, traversal,
// suggestions, statistics, and the relationship graph, plus Prometheus
// metrics and an optional filesystem watcher that refreshes the index when
// the corpus changes on disk.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pdiddy/lore-engine/internal/lore"
	"github.com/pdiddy/lore-engine/pkg/types"
)

const (
	defaultAddr            = ":8080"
	defaultShutdownTimeout = 10 * time.Second

	// refreshDebounce absorbs bursts of file events before rebuilding.
	refreshDebounce = 500 * time.Millisecond
)

// Server serves the read-side API over a built engine. Writes go through
// the CLI; the API only triggers rebuilds.
type Server struct {
	cfg     types.ServerConfig
	eng     *lore.Engine
	log     *zap.Logger
	metrics *metrics
	handler http.Handler
	httpSrv *http.Server
}

// New assembles a server around eng. Zero config fields get defaults.
func New(cfg types.ServerConfig, eng *lore.Engine, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	s := &Server{
		cfg:     cfg,
		eng:     eng,
		log:     log,
		metrics: newMetrics("lore_engine"),
	}
	s.handler = s.routes()
	s.httpSrv = &http.Server{Addr: cfg.Addr, Handler: s.handler}
	s.metrics.setIndexedEntries(eng.LastBuild().Entries)
	return s
}

// Handler returns the assembled router, mainly for tests and embedding.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics",
		promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Get("/entries", s.handleListEntries)
		r.Get("/entries/{id}", s.handleGetEntry)
		r.Get("/entries/{id}/related", s.handleRelated)
		r.Get("/entries/{id}/suggest", s.handleSuggest)
		r.Get("/stats", s.handleStats)
		r.Get("/graph", s.handleGraph)
		r.Post("/refresh", s.handleRefresh)
	})

	return r
}

// instrument logs each request and feeds the request counter. The route
// label uses the chi pattern, not the raw path, to keep cardinality down.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.requests.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		s.log.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", chimiddleware.GetReqID(r.Context())),
			zap.String("remote", r.RemoteAddr),
		)
	})
}

// Run serves until ctx is canceled, then shuts down gracefully. When
// watching is enabled, changes to category files under watchDir trigger an
// index rebuild after a short quiet period.
func (s *Server) Run(ctx context.Context, watchDir string) error {
	if s.cfg.Watch && watchDir != "" {
		w, err := newWatcher(watchDir, refreshDebounce, s.refresh, s.log)
		if err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
		defer w.Close()
		s.log.Info("watching data directory", zap.String("dir", watchDir))
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", s.httpSrv.Addr))
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.log.Info("shutting down")
	return s.httpSrv.Shutdown(shutdownCtx)
}

func (s *Server) refresh() {
	s.eng.Refresh()
	s.metrics.setIndexedEntries(s.eng.LastBuild().Entries)
}
