package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Gateway round-trip metrics, one observation per HTTP call
	gatewayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paytrace_requests_total",
			Help: "Total number of PayTrace API requests",
		},
		[]string{"endpoint", "result"},
	)

	gatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "paytrace_request_duration_seconds",
			Help: "Duration of PayTrace API requests in seconds",
			// 50ms to 30s; authorizations usually land between 0.5s and 3s
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint"},
	)

	gatewayRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "paytrace_requests_in_flight",
			Help: "Number of PayTrace API requests currently awaiting a response",
		},
	)
)

// Result labels for gateway calls
const (
	ResultSuccess = "success"
	ResultFailure = "failure" // processor answered with success=false
	ResultError   = "error"   // transport or decode error, no outcome
)

// TrackGatewayCall marks a request as in flight and returns a func that records its
// result and duration when the response (or error) arrives
func TrackGatewayCall(endpoint string) func(result string) {
	start := time.Now()
	gatewayRequestsInFlight.Inc()
	return func(result string) {
		gatewayRequestsInFlight.Dec()
		gatewayRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		gatewayRequestsTotal.WithLabelValues(endpoint, result).Inc()
	}
}
