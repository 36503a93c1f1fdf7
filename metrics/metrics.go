package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skillmatrix_submissions_total",
			Help: "Total number of scored questionnaire submissions",
		},
	)

	GenerationCalls = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skillmatrix_generation_calls_total",
			Help: "Total number of narrative generation calls issued",
		},
	)

	GenerationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skillmatrix_generation_failures_total",
			Help: "Total number of narrative generation calls that failed",
		},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "skillmatrix_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"method", "path"},
	)
)
