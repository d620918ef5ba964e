// Package metrics provides Prometheus metrics for the calculation service.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Calculation outcomes used as the "outcome" label.
const (
	OutcomeSuccess      = "success"
	OutcomeInvalidInput = "invalid_input"
	OutcomeFault        = "fault"
)

// Manager owns the service's Prometheus collectors.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Business
	calculations *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
	errorsByType        *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// global pairs the package-level manager with the registry served on /metrics.
type global struct {
	manager  *Manager
	registry *prometheus.Registry
}

var current atomic.Pointer[global] //nolint:gochecknoglobals // singleton used by the package-level recorders

func init() { //nolint:gochecknoinits // global metrics setup
	Configure()
}

// Configure replaces the global manager with one built from opts on a fresh
// custom registry, so default Go metrics are not exported. Call it before
// serving traffic; series recorded earlier are discarded.
func Configure(opts ...Option) {
	registry := prometheus.NewRegistry()
	opts = append(opts, WithPrometheusRegistry(registry))
	current.Store(&global{manager: NewManager(opts...), registry: registry})
}

func globalManager() *Manager { return current.Load().manager }

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "calc",
		subsystem:        "api",
		histogramBuckets: []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.calculations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "calculations_total",
		Help:        "Total number of calculations by outcome",
		ConstLabels: m.constLabels,
	}, []string{"outcome"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_endpoint_total",
		Help:        "Total number of error responses by endpoint",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "error_type"})

	m.errorsByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_type_total",
		Help:        "Total number of error responses by type and severity",
		ConstLabels: m.constLabels,
	}, []string{"error_type", "severity"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "memory_usage_bytes",
		Help:        "Current heap allocation in bytes",
		ConstLabels: m.constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "goroutine_count",
		Help:        "Current number of goroutines",
		ConstLabels: m.constLabels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "gc_pause_time_milliseconds",
		Help:        "Average GC pause time in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})
}

// RecordCalculation counts one calculation with the given outcome.
func (m *Manager) RecordCalculation(outcome string) {
	m.calculations.WithLabelValues(outcome).Inc()
}

// RecordHTTPRequest counts one HTTP request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes one request duration in milliseconds.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint counts one error response for an endpoint.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	m.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType counts one error response by type and severity.
func (m *Manager) RecordErrorByType(errorType, severity string) {
	m.errorsByType.WithLabelValues(errorType, severity).Inc()
}

// UpdateSystemMemoryUsage sets the heap allocation gauge.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) {
	m.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func (m *Manager) UpdateSystemGoroutineCount(count int) {
	m.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime observes an average GC pause in milliseconds.
func (m *Manager) RecordSystemGCPauseTime(pauseMs float64) {
	m.systemGCPauseTime.Observe(pauseMs)
}

// RecordCalculation counts one calculation on the global manager.
func RecordCalculation(outcome string) { globalManager().RecordCalculation(outcome) }

// RecordHTTPRequest counts one HTTP request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager().RecordHTTPRequest(endpoint, method, statusCode)
}

// RecordHTTPRequestDuration observes a request duration on the global manager.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager().RecordHTTPRequestDuration(endpoint, method, statusCode, durationMs)
}

// RecordErrorByEndpoint counts an error response on the global manager.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager().RecordErrorByEndpoint(endpoint, method, errorType)
}

// RecordErrorByType counts an error response on the global manager.
func RecordErrorByType(errorType, severity string) {
	globalManager().RecordErrorByType(errorType, severity)
}

// UpdateSystemMemoryUsage sets the heap gauge on the global manager.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager().UpdateSystemMemoryUsage(bytes) }

// UpdateSystemGoroutineCount sets the goroutine gauge on the global manager.
func UpdateSystemGoroutineCount(count int) { globalManager().UpdateSystemGoroutineCount(count) }

// RecordSystemGCPauseTime observes a GC pause on the global manager.
func RecordSystemGCPauseTime(pauseMs float64) { globalManager().RecordSystemGCPauseTime(pauseMs) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return current.Load().registry
}
