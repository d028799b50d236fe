// Package metrics provides Prometheus metrics for document extraction.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the extraction pipeline collectors.
type Metrics struct {
	ExtractionsTotal   *prometheus.CounterVec   // completed extractions by operation and strategy
	FallbacksTotal     *prometheus.CounterVec   // strategy failures that moved the chain on
	FailuresTotal      *prometheus.CounterVec   // requests where every strategy failed
	ExtractionDuration *prometheus.HistogramVec // end-to-end orchestration latency
	LeadsExtracted     prometheus.Histogram     // leads per successful lead extraction
	TempFilesOpen      prometheus.Gauge         // temporary images currently on disk
}

// New registers the collectors with reg. Tests pass a fresh registry.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ExtractionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kycscan_document_extractions_total",
			Help: "Completed document extractions by operation and strategy",
		}, []string{"operation", "strategy"}),

		FallbacksTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kycscan_document_fallbacks_total",
			Help: "Strategy failures that triggered a fallback, by operation and failed strategy",
		}, []string{"operation", "strategy"}),

		FailuresTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kycscan_document_failures_total",
			Help: "Extractions that exhausted every strategy, by operation and error code",
		}, []string{"operation", "code"}),

		ExtractionDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kycscan_document_extraction_duration_seconds",
			Help:    "Duration of document extraction by operation",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		}, []string{"operation"}),

		LeadsExtracted: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "kycscan_document_leads_extracted",
			Help:    "Number of leads returned per lead extraction",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50},
		}),

		TempFilesOpen: f.NewGauge(prometheus.GaugeOpts{
			Name: "kycscan_document_temp_files_open",
			Help: "Temporary image files currently held by in-flight requests",
		}),
	}
}

func (m *Metrics) RecordExtraction(operation, strategy string, seconds float64) {
	if m == nil {
		return
	}
	m.ExtractionsTotal.WithLabelValues(operation, strategy).Inc()
	m.ExtractionDuration.WithLabelValues(operation).Observe(seconds)
}

func (m *Metrics) RecordFallback(operation, strategy string) {
	if m == nil {
		return
	}
	m.FallbacksTotal.WithLabelValues(operation, strategy).Inc()
}

func (m *Metrics) RecordFailure(operation, code string) {
	if m == nil {
		return
	}
	m.FailuresTotal.WithLabelValues(operation, code).Inc()
}

func (m *Metrics) ObserveLeads(n int) {
	if m == nil {
		return
	}
	m.LeadsExtracted.Observe(float64(n))
}

func (m *Metrics) TempFileOpened() {
	if m == nil {
		return
	}
	m.TempFilesOpen.Inc()
}

func (m *Metrics) TempFileClosed() {
	if m == nil {
		return
	}
	m.TempFilesOpen.Dec()
}
