package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		sessionsStartedTotal,
		sessionsCompletedTotal,
		actionsTotal,
		transitionsTotal,
		validationFailuresTotal,
		intentsDroppedTotal,
		httpRateLimitedTotal,
	)
}

var (
	sessionsStartedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_sessions_started_total",
			Help: "Wizard sessions started, by flow.",
		},
		[]string{"flow"},
	)

	sessionsCompletedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_sessions_completed_total",
			Help: "Wizard sessions that reached completed, by flow and entry route.",
		},
		[]string{"flow", "via"},
	)

	actionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_actions_total",
			Help: "Actions dispatched to wizard sessions.",
		},
		[]string{"action"},
	)

	transitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_transitions_total",
			Help: "Mode changes, by source and target mode.",
		},
		[]string{"from", "to"},
	)

	validationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_validation_failures_total",
			Help: "Submits refused by a step validator.",
		},
		[]string{"mode"},
	)

	intentsDroppedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_intents_dropped_total",
			Help: "Intents that could not be delivered.",
		},
		[]string{"kind"},
	)

	httpRateLimitedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Requests refused by the per-session rate limiter.",
		},
	)
)

func IncSessionStarted(flow string) { sessionsStartedTotal.WithLabelValues(flow).Inc() }

func IncSessionCompleted(flow, via string) {
	sessionsCompletedTotal.WithLabelValues(flow, via).Inc()
}

func IncAction(action string) { actionsTotal.WithLabelValues(action).Inc() }

func IncTransition(from, to string) { transitionsTotal.WithLabelValues(from, to).Inc() }

func IncValidationFailure(mode string) { validationFailuresTotal.WithLabelValues(mode).Inc() }

func IncIntentDropped(kind string) { intentsDroppedTotal.WithLabelValues(kind).Inc() }

func IncRateLimited() { httpRateLimitedTotal.Inc() }
