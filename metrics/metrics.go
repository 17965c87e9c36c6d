// Package metrics provides Prometheus metrics for the identifier checker.
// It tracks tool and HTTP traffic, validation outcomes, cache performance and
// classifier decisions.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const (
	Namespace = "idcheck"
)

var (
	// RequestsTotal counts total MCP tool calls by tool name and status
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "requests_total",
		Help:      "Total number of MCP tool calls",
	}, []string{"tool", "status"})

	// RequestDuration measures request latency distribution
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "request_duration_seconds",
		Help:      "Request latency distribution by tool",
		Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
	}, []string{"tool"})

	// RequestInFlight tracks currently executing requests
	RequestInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "requests_in_flight",
		Help:      "Number of requests currently being processed",
	}, []string{"tool"})

	// ValidationsTotal counts identifier checks by scheme and verdict
	ValidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "validations_total",
		Help:      "Identifier validations by scheme and result",
	}, []string{"scheme", "valid"})

	// ValidationErrors counts reported validation errors by scheme and kind
	ValidationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "validation_errors_total",
		Help:      "Validation errors by scheme and error kind",
	}, []string{"scheme", "kind"})

	// BatchSize tracks the number of identifiers per batch request
	BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "batch_size",
		Help:      "Number of identifiers per batch validation",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	})

	// CacheHits counts cache hits
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "cache_hits_total",
		Help:      "Total cache hit count",
	})

	// CacheMisses counts cache misses
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "cache_misses_total",
		Help:      "Total cache miss count",
	})

	// CacheSize tracks current cache entry count
	CacheSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "cache_entries",
		Help:      "Current number of cache entries",
	})

	// CacheEvictions counts cache evictions
	CacheEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "cache_evictions_total",
		Help:      "Total cache eviction count",
	})

	// ClassificationsTotal counts classified messages by category
	ClassificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "classifications_total",
		Help:      "Classified messages by category",
	}, []string{"category"})

	// PanicsRecovered counts recovered panics
	PanicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "panics_recovered_total",
		Help:      "Number of panics recovered in tool handlers",
	}, []string{"tool"})

	// HTTPRequestsTotal counts HTTP API requests
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration measures HTTP request latency
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency distribution",
		Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"method", "route"})
)

// RecordRequest records a completed request with its duration and status
func RecordRequest(tool string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	RequestsTotal.WithLabelValues(tool, status).Inc()
	RequestDuration.WithLabelValues(tool).Observe(duration)
}

// RecordValidation records one identifier verdict and the kinds of any errors.
// Unrecognised identifiers are recorded under scheme "unknown".
func RecordValidation(scheme string, valid bool, errorKinds []string) {
	if scheme == "" {
		scheme = "unknown"
	}
	ValidationsTotal.WithLabelValues(scheme, strconv.FormatBool(valid)).Inc()
	for _, kind := range errorKinds {
		ValidationErrors.WithLabelValues(scheme, kind).Inc()
	}
}

// RecordCacheAccess records a cache hit or miss
func RecordCacheAccess(hit bool) {
	if hit {
		CacheHits.Inc()
	} else {
		CacheMisses.Inc()
	}
}

// SetCacheSize updates the current cache size gauge
func SetCacheSize(size int64) {
	CacheSize.Set(float64(size))
}

// RecordCacheEvictions adds n evicted entries
func RecordCacheEvictions(n int) {
	CacheEvictions.Add(float64(n))
}

// RecordClassification records the category chosen for a message
func RecordClassification(category string) {
	ClassificationsTotal.WithLabelValues(category).Inc()
}

// RecordHTTPRequest records a served HTTP request. route is the chi route pattern, not
// the raw path, to keep label cardinality bounded.
func RecordHTTPRequest(method, route string, status int, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration)
}
