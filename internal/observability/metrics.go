package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "ride_api_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// CacheHits tracks cache hits/misses
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ride_api_cache_hits_total",
			Help: "Number of cache hits",
		},
		[]string{"operation"},
	)

	// DatabaseOperations tracks database operations
	DatabaseOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ride_api_database_operations_total",
			Help: "Number of database operations",
		},
		[]string{"operation", "status"},
	)

	// CPFVerifications tracks CPF verification outcomes
	CPFVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ride_api_cpf_verifications_total",
			Help: "Number of CPF verification attempts by outcome",
		},
		[]string{"status"},
	)

	// VerificationQueueDepth tracks pending verification jobs
	VerificationQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ride_api_verification_queue_depth",
			Help: "Number of verification jobs waiting in the queue",
		},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ride_api_active_connections",
			Help: "Number of active connections",
		},
	)
)
