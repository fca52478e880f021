package seed

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	stepRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "erkseed",
			Subsystem: "seed",
			Name:      "step_runs_total",
			Help:      "Seed steps run, by outcome (succeeded, failed, skipped).",
		},
		[]string{"step", "outcome"},
	)

	stepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "erkseed",
			Subsystem: "seed",
			Name:      "step_duration_seconds",
			Help:      "Wall time of each seed step.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		},
		[]string{"step"},
	)
)
