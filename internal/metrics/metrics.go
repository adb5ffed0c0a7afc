package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all Prometheus metrics for the asset registry.
type Registry struct {
	// HTTP metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Storage metrics
	StorageQueriesTotal  prometheus.CounterVec
	StorageQueryDuration prometheus.HistogramVec

	// Registry business metrics
	AssetsRegisteredTotal  prometheus.CounterVec
	AssetsRemovedTotal     prometheus.CounterVec
	DelegationChangesTotal prometheus.Counter
}

// NewRegistry initializes and returns a Registry with all metrics
// registered on the default gatherer.
func NewRegistry() *Registry {
	return &Registry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "registry_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "registry_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		// In-flight is counted before routing, so no endpoint label exists
		// for it yet.
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "registry_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		StorageQueriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "registry_storage_queries_total",
				Help: "Total storage queries by operation",
			},
			[]string{"operation"},
		),
		StorageQueryDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "registry_storage_query_duration_seconds",
				Help:    "Storage query execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"operation"},
		),

		AssetsRegisteredTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "registry_assets_registered_total",
				Help: "Assets registered since startup, by kind",
			},
			[]string{"kind"},
		),
		AssetsRemovedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "registry_assets_removed_total",
				Help: "Assets removed since startup, by kind",
			},
			[]string{"kind"},
		),
		DelegationChangesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "registry_delegation_changes_total",
				Help: "Delegatee set/clear operations applied",
			},
		),
	}
}
