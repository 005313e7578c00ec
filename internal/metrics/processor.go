package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	processorBatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "settlement",
		Subsystem: "processor",
		Name:      "batches_total",
		Help:      "Count of batch runs per action type.",
	}, []string{"action", "status"})
	processorBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "settlement",
		Subsystem: "processor",
		Name:      "batch_duration_seconds",
		Help:      "Duration of batch runs per action type.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"action", "status"})
	processorRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "settlement",
		Subsystem: "processor",
		Name:      "requests_total",
		Help:      "Count of requests handled, by action type and outcome.",
	}, []string{"action", "outcome"})
	processorTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "settlement",
		Subsystem: "processor",
		Name:      "state_transitions_total",
		Help:      "Count of request state transitions.",
	}, []string{"kind", "to"})
)

// Request outcomes recorded per batch item.
const (
	OutcomeSubmitted = "submitted"
	OutcomeDeferred  = "deferred"
	OutcomeFailed    = "failed"
)

// Processor tracks metrics for batch processing runs.
type Processor struct{}

// NewProcessor creates a Processor metrics collector.
func NewProcessor() *Processor {
	return &Processor{}
}

// ObserveBatch records the outcome and duration of a whole batch run.
func (m Processor) ObserveBatch(action string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	processorBatchesTotal.WithLabelValues(action, status).Inc()
	processorBatchDuration.WithLabelValues(action, status).Observe(time.Since(started).Seconds())
}

// ObserveRequest records the outcome of a single request within a batch.
func (m Processor) ObserveRequest(action, outcome string) {
	processorRequestsTotal.WithLabelValues(action, outcome).Inc()
}

// ObserveTransition records a request state transition.
func (m Processor) ObserveTransition(kind, to string) {
	processorTransitionsTotal.WithLabelValues(kind, to).Inc()
}
