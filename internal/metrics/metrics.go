package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	audioReport = "audio_report"

	// Job metrics
	jobsTotal      = "jobs_total"
	jobsInFlight   = "jobs_in_flight"
	stepDuration   = "step_duration_seconds"
	readinessPolls = "readiness_outcomes_total"

	// Labels
	statusLabel  = "status"
	stepLabel    = "step"
	outcomeLabel = "outcome"
)

/**
* Metrics definition
**/
var jobsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: audioReport,
		Name:      jobsTotal,
		Help:      "number of jobs that reached a terminal status",
	},
	[]string{statusLabel},
)

var jobsInFlightMetric = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Namespace: audioReport,
		Name:      jobsInFlight,
		Help:      "number of jobs currently held by a worker",
	},
)

var stepDurationMetric = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: audioReport,
		Name:      stepDuration,
		Help:      "duration of each pipeline step",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
	},
	[]string{stepLabel},
)

var readinessOutcomesMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: audioReport,
		Name:      readinessPolls,
		Help:      "outcome of waiting for uploaded media to become usable",
	},
	[]string{outcomeLabel},
)

func IncreaseJobsTotalMetric(status string) {
	jobsTotalMetric.With(prometheus.Labels{statusLabel: status}).Inc()
}

func IncJobsInFlight() {
	jobsInFlightMetric.Inc()
}

func DecJobsInFlight() {
	jobsInFlightMetric.Dec()
}

// ObserveStep records how long step took since start.
func ObserveStep(step string, start time.Time) {
	stepDurationMetric.With(prometheus.Labels{stepLabel: step}).Observe(time.Since(start).Seconds())
}

func IncreaseReadinessOutcomeMetric(outcome string) {
	readinessOutcomesMetric.With(prometheus.Labels{outcomeLabel: outcome}).Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(jobsTotalMetric)
	prometheus.MustRegister(jobsInFlightMetric)
	prometheus.MustRegister(stepDurationMetric)
	prometheus.MustRegister(readinessOutcomesMetric)
}
