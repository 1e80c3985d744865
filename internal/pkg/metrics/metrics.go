package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Gateway
	GatewayRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cairogo_gateway_token_refreshes_total",
			Help: "Token refresh attempts triggered by a 401, by outcome",
		},
		[]string{"outcome"}, // "success", "failure", "no_refresh_token"
	)

	GatewayRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cairogo_gateway_retries_total",
			Help: "Requests retried after a successful token refresh, by retry status",
		},
		[]string{"status"},
	)

	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cairogo_backend_request_duration_seconds",
			Help:    "Duration of calls to the travel REST API",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)

	// Recommendations
	RecommendationJoinMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cairogo_recommendation_join_misses_total",
			Help: "ML recommendations dropped because no catalog attraction matched by name",
		},
	)

	RecommendationJoinHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cairogo_recommendation_join_hits_total",
			Help: "ML recommendations matched to a catalog attraction",
		},
	)

	MLBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cairogo_ml_circuit_breaker_state",
			Help: "ML service circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	// Favorites
	FavoriteMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cairogo_favorite_mutations_total",
			Help: "Favorites ledger mutations by ledger mode and operation",
		},
		[]string{"mode", "op"},
	)

	// Cache
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cairogo_cache_hits_total",
			Help: "Cache hits by cached entity",
		},
		[]string{"entity"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cairogo_cache_misses_total",
			Help: "Cache misses by cached entity",
		},
		[]string{"entity"},
	)

	// HTTP surface
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cairogo_api_request_duration_seconds",
			Help:    "Duration of gateway API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cairogo_active_sessions",
			Help: "Session stores currently held in memory",
		},
	)
)

func RecordBackendRequest(method, endpoint string, status int, duration time.Duration) {
	BackendRequestDuration.WithLabelValues(method, endpoint, strconv.Itoa(status)).Observe(duration.Seconds())
}

func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

func RecordCache(entity string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(entity).Inc()
		return
	}
	CacheMisses.WithLabelValues(entity).Inc()
}
