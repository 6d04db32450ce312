package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DecisionsTotal tracks advisory decisions per technique and source
	DecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_decisions_total",
			Help: "Total number of advisory decisions",
		},
		[]string{"technique", "source"},
	)

	// InvalidSituationsTotal tracks rejected inputs
	InvalidSituationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "advisor_invalid_situations_total",
			Help: "Total number of rejected advisory requests",
		},
	)

	// ReviewQueuePending tracks records awaiting human triage
	ReviewQueuePending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "advisor_review_queue_pending",
			Help: "Number of advisory decisions awaiting review",
		},
	)

	// RecordErrorsTotal tracks audit persistence failures
	RecordErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "advisor_record_errors_total",
			Help: "Total number of failed audit writes",
		},
	)

	// HTTPRequestDuration tracks request latency per endpoint
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "advisor_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)
