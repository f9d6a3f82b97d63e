// Package tracing provides OpenTelemetry tracing integration.
//
// The HTTP middleware opens a server span per request and the pipeline opens
// child spans for the fetch, enrich and aggregate stages.
//
// Example usage:
//
//	import "newspulse/internal/observability/tracing"
//
//	func main() {
//	    shutdown := tracing.Init(1.0)
//	    defer shutdown(context.Background())
//	}
//
//	func refresh(ctx context.Context) {
//	    ctx, span := tracing.StartSpan(ctx, "pipeline.refresh")
//	    defer span.End()
//	}
package tracing
