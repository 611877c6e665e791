package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records one run. Each run owns its registry so the result can be
// written out for the node-exporter textfile collector.
type Metrics struct {
	registry *prometheus.Registry

	runsCounter       *prometheus.CounterVec
	fetchDurationHist prometheus.Histogram
	contactsGauge     *prometheus.GaugeVec
}

// NewMetrics creates the run metrics on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		runsCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "contact_fetcher",
				Name:      "runs_total",
				Help:      "Total number of runs by outcome.",
			},
			[]string{"outcome"}, // error code name, e.g. "NO_ERROR"
		),
		fetchDurationHist: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "contact_fetcher",
				Name:      "fetch_duration_seconds",
				Help:      "Duration of the contact source request.",
				Buckets:   prometheus.DefBuckets,
			},
		),
		contactsGauge: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "contact_fetcher",
				Name:      "contacts",
				Help:      "Number of contacts at each pipeline stage.",
			},
			[]string{"stage"}, // "fetched", "rendered"
		),
	}
}

// ObserveOutcome counts a finished run under its error code name.
func (m *Metrics) ObserveOutcome(outcome string) {
	m.runsCounter.WithLabelValues(outcome).Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all metrics to path in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
