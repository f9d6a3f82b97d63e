package metrics

import (
	"time"
)

// RecordArticlesFetched records the number of raw articles a provider returned.
func RecordArticlesFetched(provider string, count int) {
	ArticlesFetchedTotal.WithLabelValues(provider).Add(float64(count))
}

// RecordUpstreamFetch records the latency of one upstream fetch.
func RecordUpstreamFetch(provider string, duration time.Duration) {
	UpstreamFetchDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordUpstreamFetchError records an upstream failure.
// errorType should be a short stable token such as "transport", "status" or "payload".
func RecordUpstreamFetchError(provider, errorType string) {
	UpstreamFetchErrors.WithLabelValues(provider, errorType).Inc()
}

// RecordArticleEnriched records one enriched article under its sentiment label.
func RecordArticleEnriched(sentiment string) {
	ArticlesEnrichedTotal.WithLabelValues(sentiment).Inc()
}

// RecordPolarityScore records whether a headline was scored or degraded to neutral.
func RecordPolarityScore(success bool) {
	result := "success"
	if !success {
		result = "degraded"
	}
	PolarityScoresTotal.WithLabelValues(result).Inc()
}

// RecordScorerRequest records the latency of a remote scorer call.
func RecordScorerRequest(scorer string, duration time.Duration) {
	ScorerRequestDuration.WithLabelValues(scorer).Observe(duration.Seconds())
}

// RecordPipelineRefresh records the outcome and duration of a refresh run.
func RecordPipelineRefresh(success bool, duration time.Duration) {
	result := "success"
	if !success {
		result = "no_data"
	}
	PipelineRefreshTotal.WithLabelValues(result).Inc()
	PipelineRefreshDuration.Observe(duration.Seconds())
}

// SetCircuitBreakerState publishes the numeric state of a named circuit breaker.
func SetCircuitBreakerState(circuit string, state int) {
	CircuitBreakerState.WithLabelValues(circuit).Set(float64(state))
}

// RecordConfigFallback records that the value of an environment variable was invalid.
func RecordConfigFallback(key string) {
	ConfigFallbacksTotal.WithLabelValues(key).Inc()
}
