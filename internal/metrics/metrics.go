// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eduspace_mutations_total",
			Help: "Total number of persisted mutations",
		},
		[]string{"app", "op"},
	)

	StorageFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eduspace_storage_fallbacks_total",
			Help: "Stored values that could not be decoded and were replaced by defaults",
		},
		[]string{"key"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)

	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gradebook_exports_total",
			Help: "Grade-book workbook exports by outcome",
		},
		[]string{"result"},
	)
)
