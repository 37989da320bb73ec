package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics manages the Prometheus metrics for the assessment pipeline.
type Metrics struct {
	Assessments        *prometheus.CounterVec
	AssessmentLatency  *prometheus.HistogramVec
	CacheLookups       *prometheus.CounterVec
	CacheInvalidations prometheus.Counter
}

// NewMetrics creates and registers the Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		Assessments: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pulse_assessments_total",
				Help: "Total number of risk assessments.",
			},
			[]string{"severity", "result"},
		),
		AssessmentLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pulse_assessment_latency_seconds",
				Help:    "Latency of risk assessments.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		),
		CacheLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pulse_profile_cache_lookups_total",
				Help: "Profile cache lookups by outcome.",
			},
			[]string{"outcome"},
		),
		CacheInvalidations: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "pulse_profile_cache_invalidations_total",
				Help: "Explicit profile cache invalidations.",
			},
		),
	}
}

// RecordAssessment records one assessment outcome.
func (m *Metrics) RecordAssessment(severity, result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.Assessments.WithLabelValues(severity, result).Inc()
	m.AssessmentLatency.WithLabelValues(result).Observe(duration.Seconds())
}

// RecordCacheLookup records a cache hit or miss.
func (m *Metrics) RecordCacheLookup(outcome string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(outcome).Inc()
}

// RecordCacheInvalidation records an explicit eviction.
func (m *Metrics) RecordCacheInvalidation() {
	if m == nil {
		return
	}
	m.CacheInvalidations.Inc()
}
