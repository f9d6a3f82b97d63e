// Package observability groups the logging, metrics and tracing support
// shared by the newspulse binaries.
//
// Subpackages:
//   - logging: slog constructors and context propagation
//   - metrics: Prometheus registry and recorders for the refresh pipeline
//   - tracing: OpenTelemetry tracer setup and HTTP middleware
//
// Example usage:
//
//	import (
//	    "newspulse/internal/observability/logging"
//	    "newspulse/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started")
//
//	    metrics.RecordArticlesFetched("newsapi", 20)
//	}
package observability
