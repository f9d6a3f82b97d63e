package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBreaker struct {
	name string
	open bool
}

func (b stubBreaker) Name() string { return b.name }
func (b stubBreaker) IsOpen() bool { return b.open }

func TestHealthHandler_ServeHTTP(t *testing.T) {
	fixed := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		breakers   []Breaker
		wantStatus string
		wantChecks map[string]string
	}{
		{
			name:       "no upstreams",
			wantStatus: StatusHealthy,
			wantChecks: map[string]string{},
		},
		{
			name:       "all closed",
			breakers:   []Breaker{stubBreaker{name: "newsapi"}, stubBreaker{name: "claude-api"}},
			wantStatus: StatusHealthy,
			wantChecks: map[string]string{"newsapi": StatusHealthy, "claude-api": StatusHealthy},
		},
		{
			name:       "one open",
			breakers:   []Breaker{stubBreaker{name: "newsapi", open: true}, stubBreaker{name: "claude-api"}},
			wantStatus: StatusDegraded,
			wantChecks: map[string]string{"newsapi": StatusDegraded, "claude-api": StatusHealthy},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &HealthHandler{Version: "test", Breakers: tt.breakers, Now: func() time.Time { return fixed }}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "no-cache, no-store, must-revalidate", rr.Header().Get("Cache-Control"))

			var resp HealthResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, "test", resp.Version)
			assert.Equal(t, "2024-03-15T09:30:00Z", resp.Timestamp)

			got := make(map[string]string, len(resp.Checks))
			for name, c := range resp.Checks {
				got[name] = c.Status
			}
			assert.Equal(t, tt.wantChecks, got)
		})
	}
}

func TestReadyHandler_ServeHTTP(t *testing.T) {
	t.Run("ready when closed", func(t *testing.T) {
		h := &ReadyHandler{Breakers: []Breaker{stubBreaker{name: "newsapi"}}}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "ready", rr.Body.String())
	})

	t.Run("not ready when open", func(t *testing.T) {
		h := &ReadyHandler{Breakers: []Breaker{
			stubBreaker{name: "rss-search", open: true},
			stubBreaker{name: "newsapi", open: true},
		}}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.JSONEq(t, `{"status":"not ready","open_circuits":["newsapi","rss-search"]}`, rr.Body.String())
	})
}

func TestLiveHandler_ServeHTTP(t *testing.T) {
	rr := httptest.NewRecorder()
	(&LiveHandler{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "alive", rr.Body.String())
}
