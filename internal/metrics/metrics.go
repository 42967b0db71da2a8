package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Review sentiment metrics
var (
	// ReviewsScoredTotal counts scored reviews by resulting label
	ReviewsScoredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviews_scored_total",
			Help: "Total reviews scored by sentiment label",
		},
		[]string{"label"},
	)

	// ReviewSentimentScore tracks the distribution of review scores
	ReviewSentimentScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "review_sentiment_score",
			Help:    "Sentiment score of submitted reviews",
			Buckets: []float64{-1, -0.6, -0.2, 0, 0.2, 0.6, 1},
		},
	)

	// ReviewsRescoredTotal counts reviews whose stored score changed during a rescore
	ReviewsRescoredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reviews_rescored_total",
			Help: "Reviews whose stored sentiment changed during a rescore",
		},
	)
)

// Order metrics
var (
	// OrdersPlacedTotal counts placed orders by payment method
	OrdersPlacedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Total orders placed by payment method",
		},
		[]string{"payment_method"},
	)

	OrderStatusChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_status_changes_total",
			Help: "Order status updates by new status",
		},
		[]string{"status"},
	)
)

// Summary cache metrics
var (
	// SummaryCacheOpsTotal tracks cache operations by operation and result (hit/miss/error/ok)
	SummaryCacheOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summary_cache_operations_total",
			Help: "Sentiment summary cache operations by operation and result",
		},
		[]string{"operation", "result"},
	)

	// CircuitBreakerState tracks the cache breaker (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// HTTPErrorsTotal tracks error responses by error type
	HTTPErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total HTTP errors by error type",
		},
		[]string{"type"},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)
