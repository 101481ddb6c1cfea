package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus observability primitives for the
// reconciliation pipeline.
type Metrics struct {
	webhookEvents *prometheus.CounterVec
	linkPassRuns  *prometheus.CounterVec
	linkOutcomes  *prometheus.CounterVec
	duplicateSize prometheus.Histogram
}

// NewMetrics registers and returns Prometheus metrics.
func NewMetrics() *Metrics {
	webhookEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "memberdesk_webhook_events_total",
		Help: "Counts webhook deliveries by event kind and outcome.",
	}, []string{"kind", "outcome"})

	linkPassRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "memberdesk_link_pass_runs_total",
		Help: "Counts best-membership link passes by trigger and status.",
	}, []string{"trigger", "status"})

	linkOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "memberdesk_link_outcomes_total",
		Help: "Counts per-person link decisions by outcome.",
	}, []string{"outcome"})

	duplicateSize := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "memberdesk_duplicate_group_size",
		Help:    "Membership count per duplicate email group.",
		Buckets: []float64{2, 3, 4, 5, 10},
	})

	prometheus.MustRegister(webhookEvents, linkPassRuns, linkOutcomes, duplicateSize)

	return &Metrics{
		webhookEvents: webhookEvents,
		linkPassRuns:  linkPassRuns,
		linkOutcomes:  linkOutcomes,
		duplicateSize: duplicateSize,
	}
}

func (m *Metrics) RecordWebhookEvent(kind, outcome string) {
	if m == nil {
		return
	}
	m.webhookEvents.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) RecordLinkPass(trigger, status string) {
	if m == nil {
		return
	}
	m.linkPassRuns.WithLabelValues(trigger, status).Inc()
}

func (m *Metrics) RecordLinkOutcome(outcome string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.linkOutcomes.WithLabelValues(outcome).Add(float64(count))
}

func (m *Metrics) ObserveDuplicateGroup(size int) {
	if m == nil {
		return
	}
	m.duplicateSize.Observe(float64(size))
}
