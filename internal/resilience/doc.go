// Package resilience holds fault tolerance patterns for upstream calls.
//
// Every upstream (the news provider and the remote sentiment scorers) is
// guarded by a circuit breaker. Failed calls are not retried: a refresh either
// succeeds or reports no data, and the caller may ask again.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.NewsAPIConfig())
//	articles, err := circuitbreaker.Do(cb, func() ([]entity.RawArticle, error) {
//	    return fetch(ctx, q)
//	})
package resilience
