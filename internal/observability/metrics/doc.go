// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Pipeline metrics (fetched articles, upstream errors, sentiment labels)
//   - Scorer and circuit breaker health
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "newspulse/internal/observability/metrics"
//
//	func fetch(ctx context.Context) {
//	    start := time.Now()
//	    articles, err := client.Fetch(ctx, q)
//	    metrics.RecordUpstreamFetch("newsapi", time.Since(start))
//	    if err != nil {
//	        metrics.RecordUpstreamFetchError("newsapi", "transport")
//	        return
//	    }
//	    metrics.RecordArticlesFetched("newsapi", len(articles))
//	}
package metrics
