package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bmr_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bmr_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"route", "method"},
	)

	CalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bmr_calculations_total",
			Help: "Calculations by outcome (ok, invalid, error)",
		},
		[]string{"source", "outcome"},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bmr_validation_failures_total",
			Help: "Rejected measurements by offending field",
		},
		[]string{"field"},
	)

	BatchFilesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bmr_batch_files_total",
			Help: "Processed batch files by outcome",
		},
		[]string{"outcome"},
	)
)

const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"

	SourceHTTP  = "http"
	SourceBatch = "batch"
)

// ObserveCalculation records a calculation outcome. field is the rejected
// field for invalid input and empty otherwise.
func ObserveCalculation(source, outcome, field string) {
	CalculationsTotal.WithLabelValues(source, outcome).Inc()
	if outcome == OutcomeInvalid && field != "" {
		ValidationFailures.WithLabelValues(field).Inc()
	}
}
