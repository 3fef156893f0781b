// Package metrics provides Prometheus metrics for the resolution pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the assistant. A nil *Metrics is
// valid and records nothing, so unit tests need no registry.
type Metrics struct {
	ResolutionsTotal   *prometheus.CounterVec
	ResolutionDuration *prometheus.HistogramVec

	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter

	FallbackErrorsTotal  prometheus.Counter
	FallbackBlockedTotal prometheus.Counter
}

// New creates and registers all assistant metrics on the default registry.
func New() *Metrics {
	m := &Metrics{}

	m.ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_resolutions_total",
			Help: "Total number of resolved queries by terminal source",
		},
		[]string{"source"},
	)

	m.ResolutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assistant_resolution_duration_seconds",
			Help:    "Duration of query resolution in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"source"},
	)

	m.CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assistant_cache_hits_total",
			Help: "Total number of response cache hits",
		},
	)

	m.CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assistant_cache_misses_total",
			Help: "Total number of response cache misses",
		},
	)

	m.FallbackErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assistant_fallback_errors_total",
			Help: "Total number of failed external AI fallback calls",
		},
	)

	m.FallbackBlockedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assistant_fallback_blocked_total",
			Help: "Total number of fallback calls blocked by policy",
		},
	)

	return m
}

// RecordResolution records a terminal resolution with its source and duration.
func (m *Metrics) RecordResolution(source string, duration time.Duration) {
	if m == nil {
		return
	}
	m.ResolutionsTotal.WithLabelValues(source).Inc()
	m.ResolutionDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordCacheHit increments the cache hit counter.
func (m *Metrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.CacheHitsTotal.Inc()
}

// RecordCacheMiss increments the cache miss counter.
func (m *Metrics) RecordCacheMiss() {
	if m == nil {
		return
	}
	m.CacheMissesTotal.Inc()
}

// RecordFallbackError increments the fallback error counter.
func (m *Metrics) RecordFallbackError() {
	if m == nil {
		return
	}
	m.FallbackErrorsTotal.Inc()
}

// RecordFallbackBlocked increments the policy-blocked counter.
func (m *Metrics) RecordFallbackBlocked() {
	if m == nil {
		return
	}
	m.FallbackBlockedTotal.Inc()
}
