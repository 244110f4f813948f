package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application-level metrics that are not tied to HTTP transport.
type Metrics struct {
	StoreOperationDuration *prometheus.HistogramVec
	StoreOperationErrors   *prometheus.CounterVec
}

// NewMetrics creates and registers the application metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StoreOperationDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "employeeapi_store_operation_duration_seconds",
			Help:    "Duration of employee storage operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}), // operation: save, find_all, find_by_id, delete_by_id
		StoreOperationErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "employeeapi_store_operation_errors_total",
			Help: "Total number of failed employee storage operations, excluding not-found lookups.",
		}, []string{"operation"}),
	}

	for _, op := range []string{"save", "find_all", "find_by_id", "delete_by_id"} {
		m.StoreOperationErrors.WithLabelValues(op)
	}

	return m
}
