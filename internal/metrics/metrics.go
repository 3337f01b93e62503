// Package metrics 定义服务暴露的 Prometheus 指标。
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edufleex_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "edufleex_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "edufleex_rate_limited_total",
			Help: "Requests rejected by the favorite write rate limiter",
		},
	)

	// 收藏
	FavoriteMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edufleex_favorite_mutations_total",
			Help: "Favorite add/remove operations by outcome",
		},
		[]string{"op", "outcome"}, // op: add/remove; outcome: ok/noop/error
	)

	// 播放计数
	ViewEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edufleex_view_events_total",
			Help: "Video view events by delivery path",
		},
		[]string{"path"}, // kafka, direct, consumed, failed
	)

	// 缓存
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edufleex_cache_lookups_total",
			Help: "Cache lookups by result",
		},
		[]string{"cache", "result"}, // result: hit/miss/error
	)

	// 搜索
	SearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edufleex_search_requests_total",
			Help: "Video searches by backend",
		},
		[]string{"backend"}, // elasticsearch, database
	)
)

// RecordHTTPRequest 记录一次 HTTP 请求
func RecordHTTPRequest(method, route string, status int, elapsed time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
