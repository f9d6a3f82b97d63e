// Package http provides the HTTP surface of the insight service: middleware,
// health probes and metrics exposition. Route handlers live in subpackages.
package http

import (
	"log/slog"
	"net/http"
	"sort"
	"time"

	"newspulse/internal/handler/http/respond"
)

// Health statuses reported by HealthHandler.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// Breaker is the view of an upstream circuit breaker the probes need.
// *circuitbreaker.CircuitBreaker satisfies it.
type Breaker interface {
	Name() string
	IsOpen() bool
}

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthHandler reports the state of every upstream dependency.
// An open breaker makes the service degraded, not unhealthy: the process is
// fine and requests will fail fast with 502 until the upstream recovers.
type HealthHandler struct {
	Version  string
	Breakers []Breaker
	Now      func() time.Time
}

// ServeHTTP always answers 200 with per-upstream detail.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	checks := make(map[string]CheckStatus, len(h.Breakers))
	status := StatusHealthy
	for _, b := range h.Breakers {
		if b.IsOpen() {
			checks[b.Name()] = CheckStatus{Status: StatusDegraded, Message: "circuit open"}
			status = StatusDegraded
			continue
		}
		checks[b.Name()] = CheckStatus{Status: StatusHealthy}
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

// ReadyHandler fails readiness while any required upstream breaker is open,
// so a load balancer can route around an instance whose provider is down.
type ReadyHandler struct {
	Breakers []Breaker
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var open []string
	for _, b := range h.Breakers {
		if b.IsOpen() {
			open = append(open, b.Name())
		}
	}

	if len(open) > 0 {
		sort.Strings(open)
		respond.JSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":        "not ready",
			"open_circuits": open,
		})
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ready")); err != nil {
		slog.Default().Warn("ready: failed to write response", slog.Any("error", err))
	}
}

// LiveHandler handles liveness probe requests.
type LiveHandler struct{}

// ServeHTTP always returns 200 OK while the process can respond.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		slog.Default().Warn("alive: failed to write response", slog.Any("error", err))
	}
}
