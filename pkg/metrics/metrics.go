// Package metrics holds the Prometheus collectors shared across the service.
// Collectors are registered on the default registry, which the API server
// exposes on its metrics path.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "phishguard"

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// Cache lookup results.
const (
	CacheHit     = "hit"
	CacheMiss    = "miss"
	CacheExpired = "expired"
)

var (
	// HTTPRequests counts served requests by method and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint: gochecknoglobals
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests partitioned by method and status code.",
	}, []string{"method", "code"})

	// HTTPDuration observes request latency by method.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{ //nolint: gochecknoglobals
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency partitioned by method.",
		Buckets:   DefaultBuckets,
	}, []string{"method"})

	// CacheLookups counts cache reads by cache name and result.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint: gochecknoglobals
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Cache reads partitioned by cache and result.",
	}, []string{"cache", "result"})

	// CacheEvictions counts entries removed because a cache was full.
	CacheEvictions = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint: gochecknoglobals
		Namespace: namespace,
		Name:      "cache_evictions_total",
		Help:      "Entries evicted because the cache reached its capacity.",
	}, []string{"cache"})

	// DetectorDuration observes how long each detector takes.
	DetectorDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{ //nolint: gochecknoglobals
		Namespace: namespace,
		Name:      "detector_duration_seconds",
		Help:      "Detector latency partitioned by detector key.",
		Buckets:   DefaultBuckets,
	}, []string{"detector"})

	// DetectorFailures counts detectors that could not evaluate.
	DetectorFailures = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint: gochecknoglobals
		Namespace: namespace,
		Name:      "detector_failures_total",
		Help:      "Findings with zero confidence partitioned by detector key.",
	}, []string{"detector"})

	// Verdicts counts finished analyses by risk level.
	Verdicts = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint: gochecknoglobals
		Namespace: namespace,
		Name:      "verdicts_total",
		Help:      "Completed analyses partitioned by risk level.",
	}, []string{"level"})

	// Escalations counts the outcome of the escalation step.
	Escalations = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint: gochecknoglobals
		Namespace: namespace,
		Name:      "escalations_total",
		Help:      "Escalation step outcomes.",
	}, []string{"outcome"})

	// BlacklistSyncs counts feed synchronizations by mode and outcome.
	BlacklistSyncs = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint: gochecknoglobals
		Namespace: namespace,
		Name:      "blacklist_syncs_total",
		Help:      "Blacklist feed synchronizations partitioned by mode and outcome.",
	}, []string{"mode", "outcome"})

	// BlacklistSyncRows counts hostnames inserted by feed synchronizations.
	BlacklistSyncRows = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint: gochecknoglobals
		Namespace: namespace,
		Name:      "blacklist_sync_rows_total",
		Help:      "Hostnames inserted by blacklist synchronizations partitioned by mode.",
	}, []string{"mode"})

	// BlacklistSize is the number of hostnames in the loaded blacklist.
	BlacklistSize = promauto.NewGauge(prometheus.GaugeOpts{ //nolint: gochecknoglobals
		Namespace: namespace,
		Name:      "blacklist_entries",
		Help:      "Hostnames in the loaded blacklist.",
	})
)
