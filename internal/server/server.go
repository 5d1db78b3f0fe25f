// Package server exposes the graphcalc kernel over HTTP with JSON requests
// and responses.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zephyrtronium/graphcalc"
	"github.com/zephyrtronium/graphcalc/internal/config"
)

// Server serves the kernel's operations. Handlers share one expression cache
// and read the current configuration on every request, so Reload takes effect
// without a restart.
type Server struct {
	cfg     atomic.Pointer[config.Config]
	cache   *graphcalc.Cache
	metrics *Metrics
	reg     *prometheus.Registry
	logger  *slog.Logger
}

// New creates a server. If logger is nil, slog.Default is used.
func New(cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cache:  graphcalc.NewCache(cfg.Cache.Size),
		reg:    prometheus.NewRegistry(),
		logger: logger,
	}
	s.cfg.Store(cfg)
	s.metrics = NewMetrics(s.reg, s.cache)
	return s
}

// Reload replaces the configuration. Listener settings only take effect on the
// next Start.
func (s *Server) Reload(cfg *config.Config) {
	s.cfg.Store(cfg)
	s.cache.Resize(cfg.Cache.Size)
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /v1/eval", s.instrument("eval", s.handleEval))
	mux.Handle("POST /v1/sample", s.instrument("sample", s.handleSample))
	mux.Handle("POST /v1/irr", s.instrument("irr", s.handleIRR))
	mux.Handle("GET /v1/cdf", s.instrument("cdf", s.handleCDF))
	mux.Handle("POST /v1/price", s.instrument("price", s.handlePrice))
	mux.Handle("POST /v1/implied-vol", s.instrument("implied_vol", s.handleImpliedVol))
	mux.Handle("GET /healthz", s.instrument("health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}))
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))
	return requestIDMiddleware(mux)
}

// Start listens on the configured address and serves until ctx is done, then
// shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	cfg := s.cfg.Load()
	ln, err := net.Listen("tcp", cfg.Server.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Server.ListenAddress, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	cfg := s.cfg.Load()
	hs := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "address", ln.Addr().String())
		errc <- hs.Serve(ln)
	}()
	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}
	s.logger.Info("initiating graceful shutdown", "timeout", cfg.Server.ShutdownTimeout.String())
	sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(sctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}
