package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordDecision(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.RecordDecision(true, 0.05)
	m.RecordDecision(false, 0.001)
	m.RecordDecision(false, 0.002)

	assert.InDelta(t, 1, testutil.ToFloat64(m.DecisionsTotal.WithLabelValues("true")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.DecisionsTotal.WithLabelValues("false")), 0)
}

func TestRecordEvictedIgnoresZero(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.RecordEvicted(0)
	m.RecordEvicted(2)
	assert.InDelta(t, 2, testutil.ToFloat64(m.SessionsEvicted), 0)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordFrame("stored")
		m.RecordDecision(true, 1)
		m.RecordEvicted(1)
		m.ObserveDetector(0.1)
	})
}
