package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"palette-bridge/internal/config"
	"palette-bridge/internal/palette"
	"palette-bridge/internal/ui"
)

const (
	drainTimeout     = 30 * time.Second
	limiterPruneTick = 5 * time.Minute
)

// Server serves the palette projections over HTTP.
type Server struct {
	Config *config.Config
	Source palette.Source

	admin   *AdminAuth
	limiter *RateLimiter
	proxies []*net.IPNet

	mu         sync.Mutex
	ln         net.Listener
	httpServer *http.Server
}

// NewServer creates a server reading its palette from src.
// Invalid trusted_proxies entries are ignored here; Validate reports them.
func NewServer(cfg *config.Config, src palette.Source) *Server {
	proxies, _ := cfg.TrustedNets()
	return &Server{
		Config:  cfg,
		Source:  src,
		admin:   NewAdminAuth(cfg.AdminTokenHash),
		limiter: NewRateLimiter(cfg.RateLimitRPM),
		proxies: proxies,
	}
}

// Routes returns the instrumented handler tree.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	s.handle(mux, "/palette.css", s.handleCSS)
	s.handle(mux, "/palette.js", s.handleScript)
	s.handle(mux, "/palette.json", s.handlePaletteJSON)
	s.handle(mux, "/color-grid", s.handleGrid)
	s.handle(mux, "/render", s.handleRender)
	s.handle(mux, "/healthz", s.handleHealth)
	return mux
}

func (s *Server) handle(mux *http.ServeMux, route string, h http.HandlerFunc) {
	mux.Handle(route, instrument(route, s.withCORS(h)))
}

// Addr returns the bound listen address once Start has opened the listener.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Start begins accepting connections. It blocks until ctx is cancelled or
// the listener fails. On cancellation in-flight requests get drainTimeout to
// finish.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Config.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Config.Listen, err)
	}

	timeout := time.Duration(s.Config.TimeoutSec) * time.Second
	srv := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
		IdleTimeout:       120 * time.Second,
	}

	s.mu.Lock()
	s.ln = ln
	s.httpServer = srv
	s.mu.Unlock()

	ui.LogStatus("info", "Listening on "+ln.Addr().String())

	go s.pruneLimiter(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		ui.LogStatus("warn", "Shutdown signal received...")
		return s.drain()
	}
}

// drain waits for in-flight requests to finish (with timeout).
func (s *Server) drain() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		ui.LogStatus("warn", "Drain timeout reached. Forcing shutdown.")
		return s.httpServer.Close()
	}
	ui.LogStatus("success", "All requests drained. Goodbye.")
	return nil
}

func (s *Server) pruneLimiter(ctx context.Context) {
	ticker := time.NewTicker(limiterPruneTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.limiter.Prune(limiterPruneTick); n > 0 {
				ui.LogStatus("debug", "Pruned "+strconv.Itoa(n)+" idle rate-limit buckets")
			}
		}
	}
}

func (s *Server) clientIP(r *http.Request) string {
	return clientIP(r, s.proxies)
}

// loadPalette reads the palette once for the current request. ok is false
// when the color settings could not be read; the caller degrades instead of
// failing.
func (s *Server) loadPalette(r *http.Request) (palette.Palette, bool) {
	p, err := s.Source.Load(r.Context())
	if err != nil {
		if errors.Is(err, palette.ErrUnavailable) {
			MetricSourceErrors.WithLabelValues("unavailable").Inc()
			ui.LogStatus("debug", "Color settings unavailable: "+err.Error())
		} else {
			MetricSourceErrors.WithLabelValues("read_failed").Inc()
			ui.LogStatus("error", "Palette load failed: "+err.Error())
		}
		return nil, false
	}

	MetricPaletteSize.Set(float64(len(p)))
	return p, true
}
