package metrics

import (
	"net/http"
	"strconv"
	"time"

	httpclient "github.com/opus-finance/opus-api/libs/go/client/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "opus"

// Metrics owns a private registry so tests and multiple servers in one
// process never collide on registration. All methods are nil-safe.
type Metrics struct {
	registry *prometheus.Registry

	requestCounter  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	clientRequests *prometheus.CounterVec
	clientDuration *prometheus.HistogramVec
	clientErrors   *prometheus.CounterVec

	probeAttempts *prometheus.CounterVec
	scanReads     *prometheus.CounterVec
	statSources   *prometheus.CounterVec
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requestCounter: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of API requests",
		}, []string{"method", "path", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "API request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		}, []string{"method", "path"}),
		clientRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http_client",
			Name:      "requests_total",
			Help:      "Outbound HTTP requests by upstream",
		}, []string{"client", "method", "status"}),
		clientDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http_client",
			Name:      "request_duration_seconds",
			Help:      "Outbound HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"client", "method"}),
		clientErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http_client",
			Name:      "errors_total",
			Help:      "Outbound HTTP requests that failed or returned >= 400",
		}, []string{"client", "method"}),
		probeAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "probe",
			Name:      "attempts_total",
			Help:      "Lock accessor candidates tried, by outcome",
		}, []string{"method", "outcome"}),
		scanReads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scanner",
			Name:      "reads_total",
			Help:      "Lock mapping slots read by the index scanner",
		}, []string{"outcome"}),
		statSources: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stats",
			Name:      "source_total",
			Help:      "Statistics resolved, by metric and winning source",
		}, []string{"metric", "source"}),
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one served API request.
func (m *Metrics) ObserveRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestCounter.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveProbeAttempt counts one waterfall candidate.
func (m *Metrics) ObserveProbeAttempt(method, outcome string) {
	if m == nil {
		return
	}
	m.probeAttempts.WithLabelValues(method, outcome).Inc()
}

// ObserveScanRead counts one scanner slot read.
func (m *Metrics) ObserveScanRead(outcome string) {
	if m == nil {
		return
	}
	m.scanReads.WithLabelValues(outcome).Inc()
}

// ObserveStatSource counts which source produced a statistic.
func (m *Metrics) ObserveStatSource(metric, source string) {
	if m == nil {
		return
	}
	m.statSources.WithLabelValues(metric, source).Inc()
}

// HTTPClientCollector returns a collector for the named upstream suitable
// for httpclient.WithMetricsCollector.
func (m *Metrics) HTTPClientCollector(client string) httpclient.MetricsCollector {
	if m == nil {
		return &httpclient.NoopMetricsCollector{}
	}
	return &clientCollector{metrics: m, client: client}
}

type clientCollector struct {
	metrics *Metrics
	client  string
}

func (c *clientCollector) RecordRequestDuration(method, path string, statusCode int, duration time.Duration) {
	c.metrics.clientDuration.WithLabelValues(c.client, method).Observe(duration.Seconds())
}

func (c *clientCollector) RecordRequestCount(method, path string, statusCode int) {
	c.metrics.clientRequests.WithLabelValues(c.client, method, strconv.Itoa(statusCode)).Inc()
}

func (c *clientCollector) RecordRequestError(method, path string) {
	c.metrics.clientErrors.WithLabelValues(c.client, method).Inc()
}
