package rpcclient

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the client.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestErrors   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	ExecutionsTotal      *prometheus.CounterVec
	InconsistenciesTotal *prometheus.CounterVec
}

var (
	metrics     *Metrics
	metricsOnce sync.Once
)

// GetMetrics returns the process-wide Metrics instance, registering the
// collectors with the default registry on first use.
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = newMetrics()
	})
	return metrics
}

func newMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "multirpc_rpc_requests_total",
			Help: "Total number of JSON-RPC requests put on the wire, by endpoint, method and outcome",
		}, []string{"endpoint", "method", "status"}),
		RequestErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "multirpc_rpc_request_errors_total",
			Help: "Total number of failed JSON-RPC requests, by endpoint and method",
		}, []string{"endpoint", "method"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "multirpc_rpc_request_duration_seconds",
			Help:    "JSON-RPC request latency in seconds, by endpoint and method",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint", "method"}),
		ExecutionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "multirpc_executions_total",
			Help: "Total number of logical executions, by strategy and outcome",
		}, []string{"strategy", "success"}),
		InconsistenciesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "multirpc_inconsistencies_total",
			Help: "Total number of parallel executions whose successful responses diverged",
		}, []string{"method"}),
	}
}
