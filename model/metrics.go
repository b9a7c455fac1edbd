package model

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts sampler activity. A nil *Metrics records nothing.
type Metrics struct {
	Sweeps        prometheus.Counter
	Resamples     prometheus.Counter
	ZeroMass      prometheus.Counter
	SweepDuration prometheus.Histogram
}

// NewMetrics registers the sampler metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Sweeps: f.NewCounter(prometheus.CounterOpts{
			Name: "gibbslda_sweeps_total",
			Help: "Completed Gibbs sweeps over the corpus.",
		}),
		Resamples: f.NewCounter(prometheus.CounterOpts{
			Name: "gibbslda_resamples_total",
			Help: "Occurrences resampled.",
		}),
		ZeroMass: f.NewCounter(prometheus.CounterOpts{
			Name: "gibbslda_zero_mass_total",
			Help: "Resamples that fell back to the uniform distribution.",
		}),
		SweepDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "gibbslda_sweep_duration_seconds",
			Help:    "Wall time of one sweep.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms to ~4min
		}),
	}
}

func (m *Metrics) sweep(seconds float64) {
	if m == nil {
		return
	}
	m.Sweeps.Inc()
	m.SweepDuration.Observe(seconds)
}

func (m *Metrics) resample() {
	if m == nil {
		return
	}
	m.Resamples.Inc()
}

func (m *Metrics) zeroMass() {
	if m == nil {
		return
	}
	m.ZeroMass.Inc()
}
