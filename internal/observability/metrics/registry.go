// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds.
	// Insight requests fan out to the upstream, so the tail buckets reach 30s.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestsInFlight tracks the current number of HTTP requests being processed
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	// HTTPRequestSize measures HTTP request body size in bytes
	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)
)

// Pipeline metrics track the fetch, enrich and aggregate stages
var (
	// ArticlesFetchedTotal counts raw articles received per provider
	ArticlesFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newspulse_articles_fetched_total",
			Help: "Total number of raw articles received from upstream providers",
		},
		[]string{"provider"},
	)

	// UpstreamFetchDuration measures time to fetch one batch from a provider
	UpstreamFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newspulse_upstream_fetch_duration_seconds",
			Help:    "Time taken to fetch an article batch from the upstream provider",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"provider"},
	)

	// UpstreamFetchErrors counts upstream failures by provider and error type
	UpstreamFetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newspulse_upstream_fetch_errors_total",
			Help: "Total number of upstream fetch failures",
		},
		[]string{"provider", "error_type"},
	)

	// ArticlesEnrichedTotal counts enriched articles by sentiment label
	ArticlesEnrichedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newspulse_articles_enriched_total",
			Help: "Total number of articles enriched, by sentiment label",
		},
		[]string{"sentiment"},
	)

	// PolarityScoresTotal counts scorer invocations by result
	PolarityScoresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newspulse_polarity_scores_total",
			Help: "Total number of headline polarity scores",
		},
		[]string{"result"}, // result: success, degraded
	)

	// ScorerRequestDuration measures remote scorer latency
	ScorerRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newspulse_scorer_request_duration_seconds",
			Help:    "Time taken by a remote polarity scorer request",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"scorer"},
	)

	// PipelineRefreshTotal counts pipeline refresh runs by result
	PipelineRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newspulse_pipeline_refresh_total",
			Help: "Total number of pipeline refresh runs",
		},
		[]string{"result"}, // result: success, no_data
	)

	// PipelineRefreshDuration measures end-to-end refresh time
	PipelineRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "newspulse_pipeline_refresh_duration_seconds",
			Help:    "Time taken by a full fetch, enrich and aggregate run",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		},
	)

	// CircuitBreakerState exposes breaker state per upstream (0 closed, 1 half-open, 2 open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "newspulse_circuit_breaker_state",
			Help: "Circuit breaker state: 0 closed, 1 half-open, 2 open",
		},
		[]string{"circuit"},
	)

	// ConfigFallbacksTotal counts environment values rejected in favor of the default
	ConfigFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newspulse_config_fallbacks_total",
			Help: "Total number of invalid environment values replaced by their default",
		},
		[]string{"key"},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}
