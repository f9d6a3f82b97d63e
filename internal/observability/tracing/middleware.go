package tracing

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"newspulse/internal/handler/http/pathutil"
	"newspulse/internal/handler/http/requestid"
	"newspulse/internal/handler/http/responsewriter"
)

// maxQueryAttrLen bounds the search text copied onto a span.
const maxQueryAttrLen = 128

// Middleware starts a server span per request, continuing any W3C trace
// context the caller sent. The trace ID is echoed in X-Trace-Id.
//
// Span names use the normalized route, e.g. "GET /insights". For refresh
// requests the search parameters are recorded so a slow trace shows what was asked.
// 5xx responses set the span status to Error; 4xx responses do not.
//
//	handler := tracing.Middleware(mux)
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		route := pathutil.NormalizePath(r.URL.Path)
		ctx, span := tracer.Start(ctx, r.Method+" "+route, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		w.Header().Set("X-Trace-Id", span.SpanContext().TraceID().String())

		span.SetAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.path", r.URL.Path),
			attribute.String("http.route", route),
		)
		if reqID := requestid.FromContext(ctx); reqID != "" {
			span.SetAttributes(attribute.String("request.id", reqID))
		}
		if route == "/insights" {
			span.SetAttributes(insightAttributes(r)...)
		}

		rw := responsewriter.Wrap(w)
		next.ServeHTTP(rw, r.WithContext(ctx))

		status := rw.StatusCode()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	})
}

// insightAttributes copies the raw refresh parameters that were supplied.
func insightAttributes(r *http.Request) []attribute.KeyValue {
	params := r.URL.Query()
	var attrs []attribute.KeyValue
	if q := params.Get("q"); q != "" {
		if runes := []rune(q); len(runes) > maxQueryAttrLen {
			q = string(runes[:maxQueryAttrLen])
		}
		attrs = append(attrs, attribute.String("insights.query", q))
	}
	for _, name := range []string{"language", "count", "top", "min_mentions"} {
		if v := params.Get(name); v != "" && len(v) <= 16 {
			attrs = append(attrs, attribute.String("insights."+name, v))
		}
	}
	return attrs
}
