package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics
var (
	GatewayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "momo_gateway_requests_total",
			Help: "Total number of MTN MoMo gateway operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	GatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "momo_gateway_request_duration_seconds",
			Help:    "Duration of MTN MoMo gateway operations, token exchange included",
			Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10, 30},
		},
		[]string{"operation"},
	)

	CallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "momo_callbacks_total",
			Help: "Total number of MTN MoMo callbacks by resulting action",
		},
		[]string{"action"},
	)
)

// Outcome labels besides the domain outcomes.
const (
	OutcomeInvalid = "invalid"
)

// ObserveGateway records one gateway operation.
func ObserveGateway(operation, outcome string, started time.Time) {
	GatewayRequestsTotal.WithLabelValues(operation, outcome).Inc()
	GatewayRequestDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}
