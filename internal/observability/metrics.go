// Package observability provides the Prometheus metrics collector and the
// zap logger used across the service.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the application.
// It carries its own registry so tests can build isolated instances.
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
	HTTPErrors     *prometheus.CounterVec
	ActiveRequests prometheus.Gauge

	// Business metrics
	ItemsTotal prometheus.Gauge
}

// NewCollector creates a new metrics collector with a private registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	httpErrors := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total HTTP errors",
		},
		[]string{"type"},
	)

	activeRequests := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_active",
			Help: "Number of requests currently being served",
		},
	)

	itemsTotal := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "items_total",
			Help: "Total number of items",
		},
	)

	registry.MustRegister(
		httpRequests,
		httpDuration,
		httpErrors,
		activeRequests,
		itemsTotal,
	)

	return &Collector{
		registry:       registry,
		HTTPRequests:   httpRequests,
		HTTPDuration:   httpDuration,
		HTTPErrors:     httpErrors,
		ActiveRequests: activeRequests,
		ItemsTotal:     itemsTotal,
	}
}

// Handler returns the text exposition handler for GET /metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Registry returns the Prometheus registry for this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
