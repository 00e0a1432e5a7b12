// Package metrics provides Prometheus metrics for the dexkeeper service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the dexkeeper service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec

	// Collection Metrics
	collectionSize    prometheus.Gauge
	collectionChanges *prometheus.CounterVec
	importedRecords   prometheus.Counter

	// Store Metrics
	storeLatency *prometheus.HistogramVec
	storeErrors  *prometheus.CounterVec

	// Analytics and reference data
	analyticsLatency prometheus.Histogram
	refdataLookups   *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "dexkeeper",
		subsystem:        "collection",
		histogramBuckets: []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
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

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_errors_total",
		Help:      "HTTP error responses by endpoint and error type",
	}, []string{"endpoint", "method", "error_type"})

	m.collectionSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records",
		Help:      "Number of records currently in the collection",
	})

	m.collectionChanges = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "changes_total",
		Help:      "Collection mutations by kind (add, update, remove, clear)",
	}, []string{"kind"})

	m.importedRecords = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "imported_records_total",
		Help:      "Records written by collection imports",
	})

	m.storeLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_operation_milliseconds",
		Help:      "Latency of persistence store operations in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"backend", "operation"})

	m.storeErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_errors_total",
		Help:      "Failed persistence store operations",
	}, []string{"backend", "operation"})

	m.analyticsLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analytics_compute_milliseconds",
		Help:      "Time to compute an analytics snapshot in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.refdataLookups = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refdata_lookups_total",
		Help:      "Reference data lookups by kind and result",
	}, []string{"kind", "result"})
}

// RecordHTTPRequest increments the HTTP request counter.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records the HTTP request duration in milliseconds.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint increments the error counter for an endpoint.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	m.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateCollectionSize sets the collection size gauge.
func (m *Manager) UpdateCollectionSize(n int) {
	m.collectionSize.Set(float64(n))
}

// RecordCollectionChange counts a mutation of the given kind.
func (m *Manager) RecordCollectionChange(kind string) {
	m.collectionChanges.WithLabelValues(kind).Inc()
}

// RecordImportedRecords adds n imported records.
func (m *Manager) RecordImportedRecords(n int) {
	m.importedRecords.Add(float64(n))
}

// RecordStoreLatency records a store operation latency in milliseconds.
func (m *Manager) RecordStoreLatency(backend, operation string, latencyMs float64) {
	m.storeLatency.WithLabelValues(backend, operation).Observe(latencyMs)
}

// RecordStoreError counts a failed store operation.
func (m *Manager) RecordStoreError(backend, operation string) {
	m.storeErrors.WithLabelValues(backend, operation).Inc()
}

// RecordAnalyticsLatency records the analytics compute time in milliseconds.
func (m *Manager) RecordAnalyticsLatency(latencyMs float64) {
	m.analyticsLatency.Observe(latencyMs)
}

// RecordRefdataLookup counts a reference data lookup.
func (m *Manager) RecordRefdataLookup(kind string, found bool) {
	result := "miss"
	if found {
		result = "hit"
	}
	m.refdataLookups.WithLabelValues(kind, result).Inc()
}

// Package-level helpers delegate to the global manager.

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode)
}

// RecordHTTPRequestDuration records the HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequestDuration(endpoint, method, statusCode, durationMs)
}

// RecordErrorByEndpoint increments the error counter for an endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// UpdateCollectionSize sets the collection size gauge.
func UpdateCollectionSize(n int) {
	globalManager.UpdateCollectionSize(n)
}

// RecordCollectionChange counts a mutation of the given kind.
func RecordCollectionChange(kind string) {
	globalManager.RecordCollectionChange(kind)
}

// RecordImportedRecords adds n imported records.
func RecordImportedRecords(n int) {
	globalManager.RecordImportedRecords(n)
}

// RecordStoreLatency records a store operation latency in milliseconds.
func RecordStoreLatency(backend, operation string, latencyMs float64) {
	globalManager.RecordStoreLatency(backend, operation, latencyMs)
}

// RecordStoreError counts a failed store operation.
func RecordStoreError(backend, operation string) {
	globalManager.RecordStoreError(backend, operation)
}

// RecordAnalyticsLatency records the analytics compute time in milliseconds.
func RecordAnalyticsLatency(latencyMs float64) {
	globalManager.RecordAnalyticsLatency(latencyMs)
}

// RecordRefdataLookup counts a reference data lookup.
func RecordRefdataLookup(kind string, found bool) {
	globalManager.RecordRefdataLookup(kind, found)
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
