package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	UpdatesAccepted prometheus.Counter
	UpdatesRejected *prometheus.CounterVec
	RiskRescorings  prometheus.Counter
	RiskNotApproved prometheus.Counter
	Notifications   *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		UpdatesAccepted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "emend_updates_accepted_total",
			Help: "Total number of registration updates persisted",
		}),
		UpdatesRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "emend_updates_rejected_total",
			Help: "Total number of registration updates rejected, by pipeline stage",
		}, []string{"stage"}),
		RiskRescorings: promauto.NewCounter(prometheus.CounterOpts{
			Name: "emend_risk_rescorings_total",
			Help: "Total number of risk engine calls made after accepted merges",
		}),
		RiskNotApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "emend_risk_not_approved_total",
			Help: "Total number of risk verdicts recorded with approval=false",
		}),
		Notifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "emend_notifications_total",
			Help: "Total number of downstream notifications dispatched, by queue",
		}, []string{"queue"}),
	}
}

// IncrementUpdatesAccepted increments the accepted updates counter by 1.
func (m *Metrics) IncrementUpdatesAccepted() {
	if m != nil {
		m.UpdatesAccepted.Inc()
	}
}

// IncrementUpdatesRejected increments the rejection counter for a pipeline stage.
func (m *Metrics) IncrementUpdatesRejected(stage string) {
	if m != nil {
		m.UpdatesRejected.WithLabelValues(stage).Inc()
	}
}

// IncrementRiskRescorings increments the risk re-scoring counter by 1.
func (m *Metrics) IncrementRiskRescorings() {
	if m != nil {
		m.RiskRescorings.Inc()
	}
}

// IncrementRiskNotApproved increments the non-approved verdict counter by 1.
func (m *Metrics) IncrementRiskNotApproved() {
	if m != nil {
		m.RiskNotApproved.Inc()
	}
}

// IncrementNotifications increments the dispatched notification counter for a queue.
func (m *Metrics) IncrementNotifications(queue string) {
	if m != nil {
		m.Notifications.WithLabelValues(queue).Inc()
	}
}
