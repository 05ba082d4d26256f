package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"palette-bridge/internal/ui"
)

var (
	// MetricRendersTotal counts rendered projections by output
	MetricRendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "palettebridge_renders_total",
		Help: "Total palette projections rendered by output",
	}, []string{"output"})

	// MetricSkippedRecords counts records dropped for missing fields
	MetricSkippedRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "palettebridge_skipped_records_total",
		Help: "Color records skipped for missing fields by output",
	}, []string{"output"})

	// MetricInjectionsSkipped counts responses left empty because there was nothing to inject
	MetricInjectionsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "palettebridge_injections_skipped_total",
		Help: "Style or script injections skipped by output",
	}, []string{"output"})

	// MetricSourceErrors counts palette load failures by reason
	MetricSourceErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "palettebridge_source_errors_total",
		Help: "Palette source failures by reason",
	}, []string{"reason"})

	// MetricPaletteSize tracks the record count of the last loaded palette
	MetricPaletteSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "palettebridge_palette_records",
		Help: "Records in the most recently loaded palette",
	})

	// MetricRequestDuration tracks request duration by route
	MetricRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "palettebridge_request_duration_seconds",
		Help:    "Request duration in seconds by route",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"route"})

	// MetricRateLimited counts requests rejected by the rate limiter
	MetricRateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "palettebridge_rate_limited_total",
		Help: "Total requests rejected by the rate limiter",
	})

	// MetricAuthFailures counts rejected admin requests
	MetricAuthFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "palettebridge_auth_failures_total",
		Help: "Total admin requests rejected for a bad or missing token",
	})
)

// MetricsServer wraps the HTTP server for prometheus metrics
type MetricsServer struct {
	server *http.Server
}

// NewMetricsServer creates a new metrics server
func NewMetricsServer(addr string) *MetricsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &MetricsServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start begins serving metrics (non-blocking)
func (m *MetricsServer) Start() {
	go func() {
		if err := m.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ui.LogStatus("error", "Metrics server error: "+err.Error())
		}
	}()
}

// Shutdown gracefully stops the metrics server
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.server.Shutdown(shutdownCtx)
}
