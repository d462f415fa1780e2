package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los collectors del servicio sobre un registry propio.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	transitions     *prometheus.CounterVec
	resolutions     *prometheus.CounterVec
	mirrorLookups   *prometheus.CounterVec
	notifications   *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pet_status_transitions_total",
		Help: "Pet status transitions by edge and outcome",
	}, []string{"from", "to", "outcome"})

	resolutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reunion_request_resolutions_total",
		Help: "Reunion request resolutions by decision and outcome",
	}, []string{"decision", "outcome"})

	mirrorLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pet_mirror_lookups_total",
		Help: "Reads served from the local mirror after a store failure",
	}, []string{"kind", "result"})

	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reunion_notifications_total",
		Help: "Reunion notification attempts by template and outcome",
	}, []string{"template", "outcome"})

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		requestDuration,
		requestTotal,
		transitions,
		resolutions,
		mirrorLookups,
		notifications,
	)

	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		transitions:     transitions,
		resolutions:     resolutions,
		mirrorLookups:   mirrorLookups,
		notifications:   notifications,
	}
}

func (m *Metrics) Handler() http.Handler {
	return m.handler
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Todos los métodos aceptan receiver nil para que los tests no necesiten registry.

func (m *Metrics) ObserveRequest(method, path, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, path, status).Observe(seconds)
	m.requestTotal.WithLabelValues(method, path, status).Inc()
}

func (m *Metrics) ObserveTransition(from, to, outcome string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(from, to, outcome).Inc()
}

func (m *Metrics) ObserveResolution(decision, outcome string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(decision, outcome).Inc()
}

// ObserveMirror registra kind=record|list, result=hit|miss.
func (m *Metrics) ObserveMirror(kind, result string) {
	if m == nil {
		return
	}
	m.mirrorLookups.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) ObserveNotification(template, outcome string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(template, outcome).Inc()
}
