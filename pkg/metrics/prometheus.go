package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder exposes Prometheus instruments for the analytics pipeline.
type Recorder struct {
	analysisDuration *prometheus.HistogramVec
	alertsPublished  *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec
	cacheOps         *prometheus.CounterVec
}

var (
	defaultRecorder *Recorder
	recorderOnce    sync.Once
)

// NewRecorder returns the process-wide Recorder. Instruments are registered
// on the default registry exactly once.
func NewRecorder() *Recorder {
	recorderOnce.Do(func() {
		defaultRecorder = &Recorder{
			analysisDuration: prometheus.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "buildpulse_analysis_duration_seconds",
					Help:    "Time spent computing each analysis",
					Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
				},
				[]string{"analysis"},
			),
			alertsPublished: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "buildpulse_alerts_published_total",
					Help: "Alerts published to downstream channels",
				},
				[]string{"severity"},
			),
			errorsTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "buildpulse_errors_total",
					Help: "Errors by kind",
				},
				[]string{"kind"},
			),
			cacheOps: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "buildpulse_cache_requests_total",
					Help: "Insight cache lookups by analysis and outcome",
				},
				[]string{"analysis", "outcome"},
			),
		}
		prometheus.MustRegister(
			defaultRecorder.analysisDuration,
			defaultRecorder.alertsPublished,
			defaultRecorder.errorsTotal,
			defaultRecorder.cacheOps,
		)
	})
	return defaultRecorder
}

// RecordAnalysis records the wall time of one analysis run.
func (r *Recorder) RecordAnalysis(analysis string, seconds float64) {
	r.analysisDuration.WithLabelValues(analysis).Observe(seconds)
}

// RecordAlertsPublished counts alerts fanned out, bucketed by severity.
func (r *Recorder) RecordAlertsPublished(severity string, n int) {
	if n <= 0 {
		return
	}
	r.alertsPublished.WithLabelValues(severity).Add(float64(n))
}

// RecordError counts an error by kind.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordCache counts a cache lookup outcome for an analysis.
func (r *Recorder) RecordCache(analysis string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	r.cacheOps.WithLabelValues(analysis, outcome).Inc()
}
