// Package logging provides structured logging utilities with context propagation.
//
// This package wraps the standard library's log/slog package with helper functions
// for common logging patterns used throughout the application.
//
// Example usage:
//
//	import "newspulse/internal/observability/logging"
//
//	func main() {
//	    logger := logging.New(logging.Options{Format: logging.FormatText, Writer: os.Stderr})
//	    slog.SetDefault(logger)
//	}
//
//	func handleRequest(ctx context.Context) {
//	    logger := logging.WithRequestID(ctx, slog.Default())
//	    logger.Info("building insights")
//	}
package logging
