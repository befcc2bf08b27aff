package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(authBackendRequestsTotal, authBackendLatencyMs, backendLoginAttemptsTotal)
}

var (
	// outcome: success | rejected | transport
	authBackendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_backend_requests_total",
			Help: "Credential checks sent to the authentication backend, by outcome.",
		},
		[]string{"outcome"},
	)

	authBackendLatencyMs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "auth_backend_latency_ms",
			Help:    "Authentication backend latency in milliseconds.",
			Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600, 3000},
		},
	)

	// outcome: success | invalid | unavailable | error
	backendLoginAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_login_attempts_total",
			Help: "Requests served by the login endpoint, by outcome.",
		},
		[]string{"outcome"},
	)
)

func ObserveAuthBackend(outcome string, latencyMs int64) {
	authBackendRequestsTotal.WithLabelValues(outcome).Inc()
	authBackendLatencyMs.Observe(float64(latencyMs))
}

func IncBackendLogin(outcome string) { backendLoginAttemptsTotal.WithLabelValues(outcome).Inc() }
