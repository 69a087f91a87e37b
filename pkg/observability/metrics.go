package observability

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/espalier/pkg/domain"
)

// Metrics holds the engine's Prometheus collectors on a private registry,
// so embedding hosts never collide with their own metrics.
type Metrics struct {
	registry *prometheus.Registry

	itemsResolved *prometheus.CounterVec
	itemsSkipped  *prometheus.CounterVec

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the collector set.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		itemsResolved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "espalier_items_resolved_total",
				Help: "Total number of action items resolved to a descriptor",
			},
			[]string{"kind", "context"},
		),
		itemsSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "espalier_items_skipped_total",
				Help: "Total number of action items hidden during resolution",
			},
			[]string{"kind", "reason"},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "espalier_http_requests_total",
				Help: "Total number of HTTP requests served",
			},
			[]string{"path", "method", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "espalier_http_request_duration_seconds",
				Help: "Duration of HTTP requests",
			},
			[]string{"path"},
		),
	}
	m.registry.MustRegister(
		m.itemsResolved,
		m.itemsSkipped,
		m.requests,
		m.requestDuration,
		collectors.NewGoCollector(),
	)
	return m
}

// Hooks adapts the collectors to engine lifecycle hooks.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnItemResolved: func(_ context.Context, e *domain.ItemEvent) {
			m.itemsResolved.WithLabelValues(string(e.Kind), string(e.Context)).Inc()
		},
		OnItemSkipped: func(_ context.Context, e *domain.ItemEvent) {
			m.itemsSkipped.WithLabelValues(string(e.Kind), e.Reason).Inc()
		},
	}
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(path, method, status string, seconds float64) {
	m.requests.WithLabelValues(path, method, status).Inc()
	m.requestDuration.WithLabelValues(path).Observe(seconds)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for custom collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
