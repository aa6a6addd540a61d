package typesense

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the search client. A nil
// *Metrics is a valid no-op receiver so tests and tools can skip metrics
// wiring.
type Metrics struct {
	Registry        *prometheus.Registry
	RequestsTotal   prometheus.Counter
	SearchesTotal   prometheus.Counter
	RequestDuration prometheus.Histogram
	ErrorsTotal     *prometheus.CounterVec
}

// NewMetrics constructs and registers all collectors on a dedicated
// registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "search_requests_total",
			Help: "Total multi-search HTTP requests issued.",
		},
	)
	searches := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "search_subqueries_total",
			Help: "Total sub-searches carried inside multi-search requests.",
		},
	)
	requestDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "search_request_duration_seconds",
			Help:    "Multi-search request latency.",
			Buckets: prometheus.DefBuckets,
		},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_errors_total",
			Help: "Total search client errors by type.",
		},
		[]string{"error_type"},
	)

	registry.MustRegister(requests, searches, requestDuration, errorsTotal)

	return &Metrics{
		Registry:        registry,
		RequestsTotal:   requests,
		SearchesTotal:   searches,
		RequestDuration: requestDuration,
		ErrorsTotal:     errorsTotal,
	}
}

// IncRequest records one issued request carrying n sub-searches.
func (m *Metrics) IncRequest(n int) {
	if m == nil {
		return
	}
	m.RequestsTotal.Inc()
	m.SearchesTotal.Add(float64(n))
}

// ObserveDuration records a request duration.
func (m *Metrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.Observe(d.Seconds())
}

// IncError increments the error counter for a type label.
func (m *Metrics) IncError(errorType string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}
