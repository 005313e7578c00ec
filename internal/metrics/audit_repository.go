package metrics

import (
	"time"

	"github.com/custodia-tech/settlement-backend/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	auditRepositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "settlement",
		Subsystem: "audit_repository",
		Name:      "operations_total",
		Help:      "Count of audit repository operations.",
	}, []string{"operation", "network", "status"})
	auditRepositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "settlement",
		Subsystem: "audit_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of audit repository operations.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30},
	}, []string{"operation", "network", "status"})
)

// AuditRepository tracks metrics for ClickHouse audit trail operations.
type AuditRepository struct{}

// NewAuditRepository creates an AuditRepository metrics collector.
func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

// Observe records duration and status of a repository operation.
func (m AuditRepository) Observe(operation string, network model.Network, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	if network == "" {
		network = "unknown"
	}

	auditRepositoryRequestsTotal.WithLabelValues(operation, string(network), status).Inc()
	auditRepositoryRequestDuration.WithLabelValues(operation, string(network), status).Observe(time.Since(started).Seconds())
}
