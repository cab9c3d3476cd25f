package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	SweepLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "buildpulse",
			Subsystem: "monitor",
			Name:      "sweep_latency_seconds",
			Help:      "Latency of anomaly sweep runs",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	SweepErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "buildpulse",
			Subsystem: "monitor",
			Name:      "sweep_errors_total",
			Help:      "Errors by sweep stage",
		},
		[]string{"stage"},
	)

	ActiveAlerts = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "buildpulse",
			Subsystem: "monitor",
			Name:      "active_alerts",
			Help:      "Alerts present in the latest sweep, by severity",
		},
		[]string{"severity"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(SweepLatency, SweepErrors, ActiveAlerts)
	})
}
