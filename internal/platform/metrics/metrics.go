// Package metrics exposes Prometheus instruments for the advisor.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Acquisition sources.
const (
	SourceRemote    = "remote"
	SourceSynthetic = "synthetic"
	SourceTimeout   = "timeout"
)

// Advisory outcomes.
const (
	AdviceCacheHit  = "cache_hit"
	AdviceGenerated = "generated"
	AdviceFallback  = "fallback"
)

// Recorder owns the advisor's collectors.
type Recorder struct {
	acquisitions *prometheus.CounterVec
	advisories   *prometheus.CounterVec
	decisions    *prometheus.CounterVec
	durations    *prometheus.HistogramVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		acquisitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "etf_advisor",
			Name:      "acquisitions_total",
			Help:      "Market data acquisitions by source.",
		}, []string{"kind", "source"}),
		advisories: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "etf_advisor",
			Name:      "advisories_total",
			Help:      "Advice requests by outcome.",
		}, []string{"outcome"}),
		decisions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "etf_advisor",
			Name:      "decisions_total",
			Help:      "Strategy decisions by final action.",
		}, []string{"action"}),
		durations: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "etf_advisor",
			Name:      "operation_duration_seconds",
			Help:      "Latency of advisor operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

func (r *Recorder) RecordAcquisition(kind, source string) {
	r.acquisitions.WithLabelValues(kind, source).Inc()
}

func (r *Recorder) RecordAdvisory(outcome string) {
	r.advisories.WithLabelValues(outcome).Inc()
}

func (r *Recorder) RecordDecision(action string) {
	r.decisions.WithLabelValues(action).Inc()
}

// ObserveDuration records the time elapsed since start.
func (r *Recorder) ObserveDuration(operation string, start time.Time) {
	r.durations.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
