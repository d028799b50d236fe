// Package metrics provides Prometheus metrics for liveness sessions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	FramesTotal      *prometheus.CounterVec
	DecisionsTotal   *prometheus.CounterVec
	Displacement     prometheus.Histogram
	SessionsEvicted  prometheus.Counter
	DetectorDuration prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		FramesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kycscan_liveness_frames_total",
			Help: "Liveness frames received by outcome (stored, skipped, no_face)",
		}, []string{"outcome"}),

		DecisionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kycscan_liveness_decisions_total",
			Help: "Liveness evaluations by result",
		}, []string{"live"}),

		Displacement: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "kycscan_liveness_average_displacement",
			Help:    "Average landmark displacement at evaluation time",
			Buckets: []float64{0.001, 0.005, 0.01, 0.02, 0.04, 0.08, 0.16},
		}),

		SessionsEvicted: f.NewCounter(prometheus.CounterOpts{
			Name: "kycscan_liveness_sessions_evicted_total",
			Help: "Idle liveness sessions removed by the cleanup worker",
		}),

		DetectorDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "kycscan_liveness_detector_duration_seconds",
			Help:    "Latency of face-mesh landmark detection",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) RecordFrame(outcome string) {
	if m == nil {
		return
	}
	m.FramesTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordDecision(live bool, displacement float64) {
	if m == nil {
		return
	}
	label := "false"
	if live {
		label = "true"
	}
	m.DecisionsTotal.WithLabelValues(label).Inc()
	m.Displacement.Observe(displacement)
}

func (m *Metrics) RecordEvicted(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SessionsEvicted.Add(float64(n))
}

func (m *Metrics) ObserveDetector(seconds float64) {
	if m == nil {
		return
	}
	m.DetectorDuration.Observe(seconds)
}
