package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newspulse/internal/observability/metrics"
)

func TestMetricsMiddleware_CountsByNormalizedPath(t *testing.T) {
	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("body"))
	}))

	known := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/insights", "418")
	unknown := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/:unmatched", "418")
	knownBefore := testutil.ToFloat64(known)
	unknownBefore := testutil.ToFloat64(unknown)

	for _, path := range []string{"/insights?top=5", "/insights/", "/nope/1", "/nope/2"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(known)-knownBefore)
	assert.Equal(t, 2.0, testutil.ToFloat64(unknown)-unknownBefore)
}

func TestMetricsMiddleware_InFlightReturnsToBaseline(t *testing.T) {
	before := testutil.ToFloat64(metrics.HTTPRequestsInFlight)
	var during float64
	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		during = testutil.ToFloat64(metrics.HTTPRequestsInFlight)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, before+1, during)
	assert.Equal(t, before, testutil.ToFloat64(metrics.HTTPRequestsInFlight))
}

func TestMetricsHandler(t *testing.T) {
	MetricsMiddleware(okHandler()).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/live", nil))

	rr := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "http_requests_total"))
}
