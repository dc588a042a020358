// Package metrics exposes Prometheus instrumentation for ledgerdesk's API
// traffic and record toggles.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects client-side counters. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	togglesTotal    *prometheus.CounterVec
	operatorsCached prometheus.Gauge
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerdesk_api_requests_total",
				Help: "API requests issued, by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledgerdesk_api_request_duration_seconds",
				Help:    "API request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		togglesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerdesk_record_toggles_total",
				Help: "Record status updates, by target status and outcome",
			},
			[]string{"status", "outcome"},
		),
		operatorsCached: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "ledgerdesk_operators_cached",
				Help: "Operators currently held in the directory cache",
			},
		),
	}
}

// ObserveRequest records one API call.
func (m *Metrics) ObserveRequest(endpoint, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(endpoint, outcome).Inc()
	m.requestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveToggle records one status update attempt.
func (m *Metrics) ObserveToggle(status, outcome string) {
	if m == nil {
		return
	}
	m.togglesTotal.WithLabelValues(status, outcome).Inc()
}

// SetOperatorsCached reports the directory cache size.
func (m *Metrics) SetOperatorsCached(n int) {
	if m == nil {
		return
	}
	m.operatorsCached.Set(float64(n))
}

// Serve exposes /metrics on addr until ctx is cancelled. It returns
// immediately; listen failures are logged.
func Serve(ctx context.Context, addr string, gatherer prometheus.Gatherer, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", "addr", addr, "err", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving metrics", "addr", addr)
}
