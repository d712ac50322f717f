// Package metrics exposes Prometheus counters for provider calls.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "repurpose"

// Outcome labels
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeFallback = "fallback"
)

// Metrics holds the service counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	transcriptions *prometheus.CounterVec
	generations    *prometheus.CounterVec
}

// New creates the counters and registers them with reg
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		transcriptions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transcription_attempts_total",
				Help:      "Speech-to-text provider attempts",
			}, []string{"provider", "outcome"}),
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generations_total",
				Help:      "Per-platform content generations",
			}, []string{"platform", "outcome"}),
	}
	if err := reg.Register(m.transcriptions); err != nil {
		return nil, err
	}
	if err := reg.Register(m.generations); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) ObserveTranscription(provider, outcome string) {
	if m == nil {
		return
	}
	m.transcriptions.WithLabelValues(provider, outcome).Inc()
}

func (m *Metrics) ObserveGeneration(platform, outcome string) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(platform, outcome).Inc()
}
