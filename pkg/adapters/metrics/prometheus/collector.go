package prometheus

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Healthcheck outcomes
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Collector records HTTP and health check metrics on its own registry
type Collector struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	healthchecks *prometheus.CounterVec
	buildInfo    *prometheus.GaugeVec
}

// NewCollector creates a new Prometheus metrics collector
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "myapplication_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "myapplication_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"route"},
		),
		healthchecks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "myapplication_healthchecks_total",
				Help: "Total number of health checks by outcome",
			},
			[]string{"outcome"},
		),
		buildInfo: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "myapplication_build_info",
				Help: "Build metadata of the running process, always 1",
			},
			[]string{"version", "commit"},
		),
	}
}

// ObserveRequest records a finished HTTP request
func (c *Collector) ObserveRequest(method, route string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// IncHealthchecks increments the count of health checks for an outcome
func (c *Collector) IncHealthchecks(outcome string) {
	c.healthchecks.WithLabelValues(outcome).Inc()
}

// SetBuildInfo publishes the build metadata as labels. Invalid UTF-8 is
// replaced since label values must be valid UTF-8.
func (c *Collector) SetBuildInfo(version, commit string) {
	c.buildInfo.WithLabelValues(
		strings.ToValidUTF8(version, "\uFFFD"),
		strings.ToValidUTF8(commit, "\uFFFD"),
	).Set(1)
}

// Registry returns the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collected metrics in the exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
