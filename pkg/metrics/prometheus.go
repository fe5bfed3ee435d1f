package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	datasetLoads *prometheus.CounterVec
	degraded     *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	buildLatency *prometheus.HistogramVec
	relayLatency *prometheus.HistogramVec
}

// New creates a recorder registered on reg. A nil reg uses the default
// registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Recorder{
		datasetLoads: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashpull_dataset_loads_total",
				Help: "Dataset load attempts by source and outcome",
			},
			[]string{"source", "outcome"},
		),
		degraded: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashpull_degraded_views_total",
				Help: "Dashboard views served with placeholder figures",
			},
			[]string{"dashboard", "kind"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashpull_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		buildLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dashpull_build_duration_seconds",
				Help:    "Time to derive and build a dashboard view",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"dashboard"},
		),
		relayLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dashpull_relay_duration_seconds",
				Help:    "Chat relay round trip by outcome",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 45, 60},
			},
			[]string{"outcome"},
		),
	}
}

func (r *Recorder) RecordDatasetLoad(source, outcome string) {
	r.datasetLoads.WithLabelValues(source, outcome).Inc()
}

func (r *Recorder) RecordDegraded(dashboard, kind string) {
	r.degraded.WithLabelValues(dashboard, kind).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

func (r *Recorder) RecordBuild(dashboard string, seconds float64) {
	r.buildLatency.WithLabelValues(dashboard).Observe(seconds)
}

func (r *Recorder) RecordRelay(outcome string, seconds float64) {
	r.relayLatency.WithLabelValues(outcome).Observe(seconds)
}

// Nop discards every observation.
type Nop struct{}

func (Nop) RecordDatasetLoad(string, string) {}
func (Nop) RecordDegraded(string, string)    {}
func (Nop) RecordError(string)               {}
func (Nop) RecordBuild(string, float64)      {}
func (Nop) RecordRelay(string, float64)      {}
