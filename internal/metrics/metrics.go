// file: internal/metrics/metrics.go
// version: 1.1.0
// guid: 9f8e7d6c-5b4a-3210-9fed-cba876543210

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	searchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bibsearch",
		Name:      "searches_total",
		Help:      "Total number of searches by query kind and strategy",
	}, []string{"kind", "strategy"})
	searchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bibsearch",
		Name:      "search_duration_seconds",
		Help:      "Histogram of end-to-end search durations in seconds by query kind",
		Buckets:   prometheus.ExponentialBuckets(0.05, 1.6, 10), // ~50ms up to ~30s
	}, []string{"kind"})

	sourceRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bibsearch",
		Name:      "source_requests_total",
		Help:      "Total number of source fetches by source and outcome status",
	}, []string{"source", "status"})
	sourceDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bibsearch",
		Name:      "source_request_duration_seconds",
		Help:      "Histogram of per-source fetch durations in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.05, 1.6, 10),
	}, []string{"source"})

	cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bibsearch",
		Name:      "cache_hits_total",
		Help:      "Total number of result cache hits",
	})
	cacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bibsearch",
		Name:      "cache_misses_total",
		Help:      "Total number of result cache misses",
	})
	cacheEntries = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "bibsearch",
		Name:      "cache_entries",
		Help:      "Current number of entries in the result cache",
	})
)

// Register initializes metrics with the global Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(searchesTotal, searchDuration,
			sourceRequests, sourceDuration,
			cacheHits, cacheMisses, cacheEntries)
	})
}

// Search lifecycle helpers
func IncSearch(kind, strategy string) { searchesTotal.WithLabelValues(kind, strategy).Inc() }
func ObserveSearchDuration(kind string, d time.Duration) {
	searchDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// Per-source helpers
func IncSourceRequest(source, status string) { sourceRequests.WithLabelValues(source, status).Inc() }
func ObserveSourceDuration(source string, d time.Duration) {
	sourceDuration.WithLabelValues(source).Observe(d.Seconds())
}

// Cache helpers
func IncCacheHit()          { cacheHits.Inc() }
func IncCacheMiss()         { cacheMisses.Inc() }
func SetCacheEntries(n int) { cacheEntries.Set(float64(n)) }
