package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gin-gonic/gin"
)

// Metrics holds all Prometheus collectors.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	ActionsTotal   *prometheus.CounterVec
	ActionDuration *prometheus.HistogramVec

	RegistryApps prometheus.Gauge
	ScansTotal   prometheus.Counter

	registry *prometheus.Registry
}

// NewMetrics creates a metrics collector on its own registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: reg,
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bridge_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bridge_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		ActionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bridge_actions_total",
				Help: "Executed actions by name and result status",
			},
			[]string{"action", "status"},
		),
		ActionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bridge_action_duration_seconds",
				Help:    "Action execution duration in seconds",
				Buckets: []float64{.005, .025, .1, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"action"},
		),
		RegistryApps: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "bridge_registry_applications",
				Help: "Applications currently in the registry",
			},
		),
		ScansTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "bridge_registry_scans_total",
				Help: "Completed filesystem application scans",
			},
		),
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.ActionsTotal,
		m.ActionDuration,
		m.RegistryApps,
		m.ScansTotal,
	)
	return m
}

// RecordHTTPRequest records one served request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordAction records one dispatched action.
func (m *Metrics) RecordAction(action, status string, duration time.Duration) {
	m.ActionsTotal.WithLabelValues(action, status).Inc()
	m.ActionDuration.WithLabelValues(action).Observe(duration.Seconds())
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
