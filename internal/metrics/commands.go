package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	commandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gallerybot",
			Name:      "commands_total",
			Help:      "Chat commands processed, by outcome",
		},
		[]string{"command", "outcome"},
	)

	resolveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gallerybot",
			Name:      "resolve_duration_seconds",
			Help:      "Representation resolution duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"kind"},
	)

	transcodesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gallerybot",
			Name:      "transcodes_total",
			Help:      "On-the-fly transcode attempts, by result",
		},
		[]string{"result"},
	)
)

// Command outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeNoMatch   = "no_match"
	OutcomeForbidden = "forbidden"
	OutcomeError     = "error"
)

// RegisterCommandMetrics registers the command pipeline metrics explicitly
// (no init()).
func RegisterCommandMetrics() {
	prometheus.MustRegister(commandsTotal)
	prometheus.MustRegister(resolveDuration)
	prometheus.MustRegister(transcodesTotal)
}

// CommandProcessed counts one processed chat command.
func CommandProcessed(command, outcome string) {
	commandsTotal.WithLabelValues(command, outcome).Inc()
}

// ObserveResolve records a representation resolution, labelled by the kind
// of deliverable produced (file, buffer, none).
func ObserveResolve(kind string, d time.Duration) {
	resolveDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// TranscodeResult counts one transcode attempt (ok, empty, error).
func TranscodeResult(result string) {
	transcodesTotal.WithLabelValues(result).Inc()
}
