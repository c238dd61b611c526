// Package metrics defines the Prometheus collectors exported by the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, path, and status code
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes HTTP request latency by method and path
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "folio_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// UpstreamRequestsTotal counts portfolio API requests by endpoint and outcome
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_upstream_requests_total",
			Help: "Total number of upstream portfolio API requests",
		},
		[]string{"endpoint", "outcome"},
	)

	// ImageCacheLookupsTotal counts image cache reads by result (hit, miss, error)
	ImageCacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_image_cache_lookups_total",
			Help: "Total number of image cache lookups",
		},
		[]string{"result"},
	)

	// ImageCacheWritesTotal counts image cache writes by result (success, rejected, error)
	ImageCacheWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_image_cache_writes_total",
			Help: "Total number of image cache write attempts",
		},
		[]string{"result"},
	)

	// CachedImagesGauge tracks the number of cached images currently in the store
	CachedImagesGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_cached_images",
			Help: "Number of rendered images currently held in the cache store",
		},
	)

	// CacheSweepDuration observes the duration of cache stats sweeps
	CacheSweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "folio_cache_sweep_duration_seconds",
			Help:    "Duration of cache stats sweep runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)
