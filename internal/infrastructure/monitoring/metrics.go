// Package monitoring collects Prometheus metrics for the freshness engine.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/misebox/v1/internal/ports/outbound"
)

// EngineMetrics implements outbound.EngineMetrics with Prometheus collectors.
type EngineMetrics struct {
	scansTotal        prometheus.Counter
	itemsScanned      prometheus.Counter
	itemsChanged      prometheus.Counter
	alertsRaised      prometheus.Counter
	classifications   *prometheus.CounterVec
	estimatorCalls    *prometheus.CounterVec
	notificationsSent *prometheus.CounterVec
}

// NewEngineMetrics registers the engine's collectors on the given registerer.
// Pass prometheus.DefaultRegisterer in production.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	factory := promauto.With(reg)
	return &EngineMetrics{
		scansTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "misebox_scans_total",
			Help: "Total number of completed inventory scans",
		}),
		itemsScanned: factory.NewCounter(prometheus.CounterOpts{
			Name: "misebox_scan_items_total",
			Help: "Total number of items examined by scans",
		}),
		itemsChanged: factory.NewCounter(prometheus.CounterOpts{
			Name: "misebox_scan_items_changed_total",
			Help: "Total number of items whose freshness state changed",
		}),
		alertsRaised: factory.NewCounter(prometheus.CounterOpts{
			Name: "misebox_scan_alerts_total",
			Help: "Total number of alert-worthy transitions observed by scans",
		}),
		classifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "misebox_classifications_total",
			Help: "Classifications by inference source",
		}, []string{"source", "changed"}),
		estimatorCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "misebox_estimator_calls_total",
			Help: "External estimator calls by outcome",
		}, []string{"outcome"}),
		notificationsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "misebox_notifications_generated_total",
			Help: "Notifications emitted by generator kind",
		}, []string{"kind"}),
	}
}

// ScanCompleted records one finished scan.
func (m *EngineMetrics) ScanCompleted(itemsScanned, itemsChanged, alertCount int) {
	m.scansTotal.Inc()
	m.itemsScanned.Add(float64(itemsScanned))
	m.itemsChanged.Add(float64(itemsChanged))
	m.alertsRaised.Add(float64(alertCount))
}

// ClassificationRecorded records one classification outcome.
func (m *EngineMetrics) ClassificationRecorded(source string, changed bool) {
	changedLabel := "false"
	if changed {
		changedLabel = "true"
	}
	m.classifications.WithLabelValues(source, changedLabel).Inc()
}

// EstimatorCall records one estimator round trip.
func (m *EngineMetrics) EstimatorCall(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.estimatorCalls.WithLabelValues(outcome).Inc()
}

// NotificationsGenerated records one generator run.
func (m *EngineMetrics) NotificationsGenerated(kind string, count int) {
	m.notificationsSent.WithLabelValues(kind).Add(float64(count))
}

var _ outbound.EngineMetrics = (*EngineMetrics)(nil)
