// Package metrics holds the Prometheus collectors of the portal.
//
// Every method is safe on a nil *Metrics so components can run without
// metrics (CLI, tests).
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "portal"

type Metrics struct {
	registry *prometheus.Registry

	favoriteOps     *prometheus.CounterVec
	expiredDropped  prometheus.Counter
	corruptPayloads prometheus.Counter
	storageErrors   *prometheus.CounterVec
	catalogSize     prometheus.Gauge
	catalogReloads  *prometheus.CounterVec
	openSessions    prometheus.Gauge
	httpRequests    *prometheus.CounterVec
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		favoriteOps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "favorite_operations_total",
			Help:      "Favorites mutations by operation and result.",
		}, []string{"op", "result"}),
		expiredDropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "favorites_expired_dropped_total",
			Help:      "Favorite records dropped on load because they were older than the expiration window.",
		}),
		corruptPayloads: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "favorites_corrupt_payloads_total",
			Help:      "Persisted favorites payloads that could not be decoded.",
		}),
		storageErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_errors_total",
			Help:      "Durable storage failures by operation.",
		}, []string{"op"}),
		catalogSize: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_startups",
			Help:      "Startups in the loaded catalog.",
		}),
		catalogReloads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_reloads_total",
			Help:      "Catalog reload attempts by result.",
		}, []string{"result"}),
		openSessions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "favorites_open_sessions",
			Help:      "Favorites stores currently held in memory.",
		}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"route", "code"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry (tests).
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) FavoriteOp(op, result string) {
	if m == nil {
		return
	}
	m.favoriteOps.WithLabelValues(op, result).Inc()
}

func (m *Metrics) ExpiredDropped(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.expiredDropped.Add(float64(n))
}

func (m *Metrics) CorruptPayload() {
	if m == nil {
		return
	}
	m.corruptPayloads.Inc()
}

func (m *Metrics) StorageError(op string) {
	if m == nil {
		return
	}
	m.storageErrors.WithLabelValues(op).Inc()
}

func (m *Metrics) CatalogLoaded(n int) {
	if m == nil {
		return
	}
	m.catalogSize.Set(float64(n))
	m.catalogReloads.WithLabelValues("ok").Inc()
}

func (m *Metrics) CatalogReloadFailed() {
	if m == nil {
		return
	}
	m.catalogReloads.WithLabelValues("error").Inc()
}

func (m *Metrics) OpenSessions(n int) {
	if m == nil {
		return
	}
	m.openSessions.Set(float64(n))
}

func (m *Metrics) HTTPRequest(route, code string) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, code).Inc()
}
