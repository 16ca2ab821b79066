// Package metrics defines and registers all custom Prometheus metrics for
// the tasktrack web front-end. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default registry at import time; the router
// exposes them under /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tasktrack"

// UpstreamRequestsTotal counts calls sent to the external API.
// Labels:
//   - method: HTTP method of the upstream call
//   - class: response class ("2xx".."5xx", or "error" when no response)
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests sent to the external API, by method and response class.",
	},
	[]string{"method", "class"},
)

// UpstreamRequestDuration measures the wall time of one upstream call,
// excluding any refresh-and-replay that follows it.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of individual requests to the external API.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"method"},
)

// TokenRefreshTotal counts token-refresh exchanges.
// Label:
//   - result: "success" or "failure"
var TokenRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_total",
		Help:      "Total number of access-token refresh attempts, by result.",
	},
	[]string{"result"},
)

// ProfileCacheTotal counts profile-cache lookups.
// Label:
//   - result: "hit" or "miss"
var ProfileCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_cache_total",
		Help:      "Total number of profile cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)
