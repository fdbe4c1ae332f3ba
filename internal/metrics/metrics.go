package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hamed0406/sitecheck/internal/domain"
)

// Metrics holds the Prometheus collectors for the probing engine.
// It carries its own registry so repeated runs (and tests) never
// trip over duplicate registration.
type Metrics struct {
	registry *prometheus.Registry

	probesTotal   *prometheus.CounterVec
	probeDuration prometheus.Histogram
	roundsTotal   prometheus.Counter
	roundDuration prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		probesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitecheck_probes_total",
				Help: "Probe results by terminal outcome kind.",
			},
			[]string{"outcome"},
		),
		probeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sitecheck_probe_duration_seconds",
				Help:    "Duration of the attempt that produced each terminal outcome.",
				Buckets: prometheus.DefBuckets,
			},
		),
		roundsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sitecheck_rounds_total",
				Help: "Completed probe rounds.",
			},
		),
		roundDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sitecheck_round_duration_seconds",
				Help:    "Wall time to run and drain one full round.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
	m.registry.MustRegister(m.probesTotal, m.probeDuration, m.roundsTotal, m.roundDuration)
	return m
}

func (m *Metrics) ObserveResult(r domain.ProbeResult) {
	m.probesTotal.WithLabelValues(string(r.Outcome.Kind)).Inc()
	m.probeDuration.Observe(float64(r.ResponseTimeMS) / 1000)
}

func (m *Metrics) ObserveRound(took time.Duration) {
	m.roundsTotal.Inc()
	m.roundDuration.Observe(took.Seconds())
}

// Registry exposes the collectors for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
