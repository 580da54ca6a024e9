// Package metrics defines the Prometheus metrics exported on /metrics.
// Metrics are registered with the default registry through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "metalpedia"

// HTTPRequestsTotal counts handled requests.
// Labels: method, route (gin full path), status.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures request latency per route.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// MutationsTotal counts entity mutations.
// Labels:
//   - entity: band, album, member, link, user
//   - action: create, update, delete
var MutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Total number of successful entity mutations.",
	},
	[]string{"entity", "action"},
)

// MediaUploadsTotal counts upload attempts.
// Labels:
//   - kind: avatar, album_cover, band_logo, band_image
//   - outcome: stored, rejected, failed
var MediaUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_uploads_total",
		Help:      "Total number of media uploads by kind and outcome.",
	},
	[]string{"kind", "outcome"},
)

// MediaRemovalsTotal counts best-effort object removals.
// Label outcome: removed, deferred, failed
var MediaRemovalsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_removals_total",
		Help:      "Total number of media object removals by outcome.",
	},
	[]string{"outcome"},
)

// OrphansSweptTotal counts objects deleted by the orphan sweep.
var OrphansSweptTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_orphans_swept_total",
		Help:      "Total number of unreferenced media objects deleted by the sweep.",
	},
)

// CacheLookupsTotal counts stats cache lookups.
// Label result: hit, miss
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of cache lookups by result.",
	},
	[]string{"key", "result"},
)

// PanicsTotal counts handler panics caught by the recovery middleware.
var PanicsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_panics_total",
		Help:      "Total number of recovered handler panics.",
	},
)
