package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes the service's Prometheus instruments.
type Recorder struct {
	runsTotal   *prometheus.CounterVec
	runDuration *prometheus.HistogramVec
	seriesLen   prometheus.Gauge
}

// New creates a Recorder registered against reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		runsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "etfflows_pipeline_runs_total",
				Help: "Total pipeline runs by data source",
			},
			[]string{"source"},
		),
		runDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "etfflows_pipeline_run_duration_seconds",
				Help:    "Duration of pipeline runs in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		seriesLen: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "etfflows_series_length",
				Help: "Record count of the most recent series",
			},
		),
	}
}

// RecordRun records one pipeline run.
func (r *Recorder) RecordRun(live bool, seconds float64, records int) {
	source := "fallback"
	if live {
		source = "live"
	}
	r.runsTotal.WithLabelValues(source).Inc()
	r.runDuration.WithLabelValues(source).Observe(seconds)
	r.seriesLen.Set(float64(records))
}
