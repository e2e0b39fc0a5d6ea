// Package monitoring exposes Prometheus metrics for the session core.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the session core.
type Metrics struct {
	SessionsLive      prometheus.Gauge
	ActivationsTotal  *prometheus.CounterVec
	ConflictsTotal    prometheus.Counter
	TeardownsTotal    prometheus.Counter
	TransientsStarted prometheus.Counter
	ReclaimRuns       prometheus.Counter
	LayoutRestores    prometheus.Counter
}

// NewMetrics creates a new metrics collector registered on the default
// registry.
func NewMetrics() *Metrics {
	return &Metrics{
		SessionsLive: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "dirview_sessions_live",
			Help: "Number of live sessions across all surfaces",
		}),
		ActivationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dirview_activations_total",
				Help: "Total session activations by outcome",
			},
			[]string{"outcome"}, // "ok", "conflict"
		),
		ConflictsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dirview_conflicts_total",
			Help: "Total overlay-ownership conflicts",
		}),
		TeardownsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dirview_teardowns_total",
			Help: "Total session teardowns",
		}),
		TransientsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dirview_transients_started_total",
			Help: "Total transient child sessions started",
		}),
		ReclaimRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dirview_reclaim_runs_total",
			Help: "Total reclaim passes after teardown",
		}),
		LayoutRestores: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dirview_layout_restores_total",
			Help: "Total window-layout snapshot restores",
		}),
	}
}

// RecordActivation increments the activation counter for an outcome and
// adjusts the live-session gauge.
func (m *Metrics) RecordActivation(outcome string) {
	if m == nil {
		return
	}
	m.ActivationsTotal.WithLabelValues(outcome).Inc()
	if outcome == "conflict" {
		m.ConflictsTotal.Inc()
	}
}

// RecordTeardown increments the teardown counter.
func (m *Metrics) RecordTeardown() {
	if m == nil {
		return
	}
	m.TeardownsTotal.Inc()
}

// RecordTransient increments the transient-start counter.
func (m *Metrics) RecordTransient() {
	if m == nil {
		return
	}
	m.TransientsStarted.Inc()
}

// RecordReclaim increments the reclaim-pass counter.
func (m *Metrics) RecordReclaim() {
	if m == nil {
		return
	}
	m.ReclaimRuns.Inc()
}

// RecordRestore increments the layout-restore counter.
func (m *Metrics) RecordRestore() {
	if m == nil {
		return
	}
	m.LayoutRestores.Inc()
}

// SetLive records the current number of live sessions.
func (m *Metrics) SetLive(n int) {
	if m == nil {
		return
	}
	m.SessionsLive.Set(float64(n))
}
