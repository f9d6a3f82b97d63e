// Package fetch runs the article pipeline: it pulls one batch from the
// configured upstream provider, enriches every article and aggregates the result.
package fetch

import (
	"errors"
	"fmt"
)

// Sentinel errors for the pipeline.
var (
	// ErrUpstreamFetch matches every failure to obtain a batch from the provider.
	ErrUpstreamFetch = errors.New("upstream fetch failed")

	// ErrUpstreamStatus indicates a non-success HTTP status or an API-level error status.
	ErrUpstreamStatus = errors.New("upstream returned an error status")

	// ErrMalformedPayload indicates that the upstream body could not be decoded.
	ErrMalformedPayload = errors.New("malformed upstream payload")

	// ErrUpstreamTransport indicates a network level failure (DNS, TLS, timeout, reset).
	ErrUpstreamTransport = errors.New("upstream transport failure")

	// ErrUpstreamUnavailable indicates that the call was rejected locally because the
	// provider's circuit breaker is open.
	ErrUpstreamUnavailable = errors.New("upstream temporarily unavailable")

	// ErrNoData is returned by Refresh when the batch could not be fetched at all.
	// It is distinct from a successful fetch that returned zero articles.
	ErrNoData = errors.New("no data")
)

// UpstreamError describes a failed provider call. It matches ErrUpstreamFetch,
// its Kind sentinel and the wrapped cause with errors.Is.
type UpstreamError struct {
	Provider   string
	Kind       error
	StatusCode int
	Message    string
	Err        error
}

// Error renders the diagnostic surfaced to the caller.
func (e *UpstreamError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" && e.Kind != nil {
		msg = e.Kind.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s: %s", e.Provider, msg)
}

// Unwrap exposes ErrUpstreamFetch, the Kind sentinel and the cause.
func (e *UpstreamError) Unwrap() []error {
	errs := []error{ErrUpstreamFetch}
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// errorType maps an upstream failure to a stable metric label.
func errorType(err error) string {
	switch {
	case errors.Is(err, ErrUpstreamUnavailable):
		return "circuit_open"
	case errors.Is(err, ErrUpstreamStatus):
		return "status"
	case errors.Is(err, ErrMalformedPayload):
		return "payload"
	case errors.Is(err, ErrUpstreamTransport):
		return "transport"
	default:
		return "unknown"
	}
}
