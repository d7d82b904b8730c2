// Package metrics exposes the operational counters an EraRuntime emits:
// events produced, validation rejections by reason, and agenda slips. It
// follows the same prometheus.NewCounterVec/MustRegister shape as
// activation/metrics.go in the teacher.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "highway"

var eventsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_total",
		Help:      "number of HighwayEvent emitted by an era runtime, by event kind.",
	},
	[]string{"kind"},
)

var rejectionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_rejections_total",
		Help:      "number of messages rejected by Validate, by reason.",
	},
	[]string{"reason"},
)

var agendaSlipsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "agenda_slips_total",
		Help:      "number of StartRound actions handled after their round had already elapsed.",
	},
)

func init() {
	prometheus.MustRegister(eventsTotal, rejectionsTotal, agendaSlipsTotal)
}

// ObserveEvent increments the events_total counter for the given event kind
// label (e.g. "lambda_message", "lambda_response", "omega_message", "era").
func ObserveEvent(kind string) {
	eventsTotal.WithLabelValues(kind).Inc()
}

// ObserveRejection increments the validation_rejections_total counter for the
// given reason label.
func ObserveRejection(reason string) {
	rejectionsTotal.WithLabelValues(reason).Inc()
}

// ObserveAgendaSlip increments the agenda_slips_total counter.
func ObserveAgendaSlip() {
	agendaSlipsTotal.Inc()
}
