// internal/metrics/metrics.go
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry          *prometheus.Registry
	exportRuns        *prometheus.CounterVec
	exportDuration    *prometheus.HistogramVec
	exportRows        prometheus.Counter
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

// NewMetrics registers every collector on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		exportRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "export_runs_total",
			Help: "Total export runs by dimension and outcome.",
		}, []string{"dimension", "status"}),
		exportDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "export_run_duration_seconds",
			Help:    "Histogram of export run durations by dimension.",
			Buckets: prometheus.DefBuckets,
		}, []string{"dimension"}),
		exportRows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "export_rows_total",
			Help: "Total rows written by successful export runs.",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		m.exportRuns,
		m.exportDuration,
		m.exportRows,
		m.httpRequestsTotal,
		m.httpDuration,
	)

	return m
}

// ObserveRun records one finished export run.
func (m *Metrics) ObserveRun(dimension, status string, duration time.Duration, rows int) {
	m.exportRuns.WithLabelValues(dimension, status).Inc()
	m.exportDuration.WithLabelValues(dimension).Observe(duration.Seconds())
	if rows > 0 {
		m.exportRows.Add(float64(rows))
	}
}

func (m *Metrics) ObserveHTTP(route string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
