package metrics

import (
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "market_sync_"

// Component constants
const (
	ComponentSyncer   = "syncer"
	ComponentUpstream = "upstream"
	ComponentHistory  = "history"
	ComponentFallback = "fallback"
)

var (
	// UpstreamRequestsTotal counts requests to the price feeds
	// Cardinality: ~5 (success, error, rate_limited, timeout, no_data)
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "upstream_requests_total",
			Help: "Total number of HTTP requests to upstream price feeds",
		},
		[]string{"status"},
	)

	// ComponentUpstreamRequestsTotal counts feed requests per component
	ComponentUpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "component_upstream_requests_total",
			Help: "Total number of HTTP requests to upstream price feeds per component",
		},
		[]string{"component", "status"},
	)

	// SyncCycleDuration tracks the duration of one refresh cycle
	SyncCycleDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "sync_cycle_duration_seconds",
			Help: "Time taken to complete one price refresh cycle",
		},
		[]string{"component"},
	)

	// FallbackTierTotal counts fallback resolutions by chosen tier
	// Cardinality: 4 (cache, scalar_store, floor_default, none)
	FallbackTierTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "fallback_tier_total",
			Help: "Degraded-data resolutions by the fallback tier that supplied the value",
		},
		[]string{"tier"},
	)

	// CacheSizeGauge tracks the number of entries in the price cache
	CacheSizeGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "cache_size",
			Help: "Number of entries in the price cache",
		},
		[]string{"component"},
	)

	// RetryCounter counts upstream retry attempts per component
	RetryCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "retry_attempts_total",
			Help: "Total number of upstream retry attempts per component",
		},
		[]string{"component"},
	)

	// RateLimitCounter counts rate limiter waits per component
	RateLimitCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "rate_limit_hits_total",
			Help: "Total number of rate limit waits per component",
		},
		[]string{"component"},
	)
)

// MetricsWriter provides a unified interface for recording component metrics
type MetricsWriter struct {
	componentName string
}

// NewMetricsWriter creates a new MetricsWriter for the specified component
func NewMetricsWriter(componentName string) *MetricsWriter {
	return &MetricsWriter{
		componentName: componentName,
	}
}

// GetComponentName returns the component name
func (mw *MetricsWriter) GetComponentName() string {
	return mw.componentName
}

// RecordUpstreamRequest records an upstream feed request with its status
func (mw *MetricsWriter) RecordUpstreamRequest(status string) {
	UpstreamRequestsTotal.WithLabelValues(status).Inc()
	ComponentUpstreamRequestsTotal.WithLabelValues(mw.componentName, status).Inc()
}

// RecordSyncCycle records the duration of one refresh cycle
func (mw *MetricsWriter) RecordSyncCycle(duration time.Duration) {
	SyncCycleDuration.WithLabelValues(mw.componentName).Observe(duration.Seconds())
	log.Printf("Metrics: %s sync cycle took %.2fs", mw.componentName, duration.Seconds())
}

// RecordCacheSize records the number of entries in the price cache
func (mw *MetricsWriter) RecordCacheSize(size int) {
	CacheSizeGauge.WithLabelValues(mw.componentName).Set(float64(size))
}

// RecordFallbackTier records which tier supplied a degraded value
func (mw *MetricsWriter) RecordFallbackTier(tier string) {
	FallbackTierTotal.WithLabelValues(tier).Inc()
	log.Printf("Metrics: %s resolved a degraded value from tier %s", mw.componentName, tier)
}

// RecordRetryAttempt records an upstream retry attempt
func (mw *MetricsWriter) RecordRetryAttempt() {
	RetryCounter.WithLabelValues(mw.componentName).Inc()
}

// RecordRateLimitWait records a rate limiter wait
func (mw *MetricsWriter) RecordRateLimitWait() {
	RateLimitCounter.WithLabelValues(mw.componentName).Inc()
}

// Implement the upstream status handler interface for MetricsWriter

// OnRequest records an HTTP request with its status
func (mw *MetricsWriter) OnRequest(status string) {
	mw.RecordUpstreamRequest(status)
}

// OnRetry records an HTTP retry attempt
func (mw *MetricsWriter) OnRetry() {
	mw.RecordRetryAttempt()
}
