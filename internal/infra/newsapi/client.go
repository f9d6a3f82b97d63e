// Package newsapi implements fetch.ArticleFetcher against the NewsAPI
// /v2/everything endpoint.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"newspulse/internal/domain/entity"
	"newspulse/internal/resilience/circuitbreaker"
	"newspulse/internal/usecase/fetch"
)

const (
	// ProviderName identifies this upstream in logs, metrics and reports.
	ProviderName = "newsapi"

	// DefaultBaseURL is the public NewsAPI host.
	DefaultBaseURL = "https://newsapi.org"

	everythingPath = "/v2/everything"
	userAgent      = "NewsPulseBot/1.0"

	// maxBodyBytes caps the response body; a full 100-article page is far below it.
	maxBodyBytes = 8 << 20

	unknownErrorMessage = "Unknown error"
)

// Config holds the client settings.
type Config struct {
	BaseURL string
	APIKey  string

	// Timeout bounds a single upstream call.
	Timeout time.Duration

	// RateLimit is the sustained request rate in requests per second.
	// Zero or negative disables pacing.
	RateLimit float64
	Burst     int
}

// Client fetches article batches from NewsAPI.
// It paces requests with a token bucket and guards them with a circuit breaker.
// No retries are attempted: a failed call is reported to the caller as-is.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	breaker    *circuitbreaker.CircuitBreaker
}

// NewClient creates a Client. A nil httpClient gets one with cfg.Timeout.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	limit := rate.Inf
	burst := cfg.Burst
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		limiter:    rate.NewLimiter(limit, burst),
		breaker:    circuitbreaker.New(circuitbreaker.NewsAPIConfig()),
	}
}

// Breaker exposes the client's circuit breaker for health reporting.
func (c *Client) Breaker() *circuitbreaker.CircuitBreaker {
	return c.breaker
}

// Fetch retrieves one batch for q. Every error wraps fetch.ErrUpstreamFetch.
func (c *Client) Fetch(ctx context.Context, q fetch.Query) ([]entity.RawArticle, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &fetch.UpstreamError{Provider: ProviderName, Kind: fetch.ErrUpstreamTransport, Err: err}
	}

	articles, err := circuitbreaker.Do(c.breaker, func() ([]entity.RawArticle, error) {
		return c.doFetch(ctx, q)
	})
	if err != nil {
		if circuitbreaker.IsRejection(err) {
			slog.WarnContext(ctx, "newsapi circuit breaker open, request rejected",
				slog.String("service", ProviderName),
				slog.String("state", c.breaker.State().String()))
			return nil, &fetch.UpstreamError{Provider: ProviderName, Kind: fetch.ErrUpstreamUnavailable, Err: err}
		}
		return nil, err
	}
	return articles, nil
}

// doFetch performs the HTTP call without pacing or circuit breaking.
func (c *Client) doFetch(ctx context.Context, q fetch.Query) ([]entity.RawArticle, error) {
	params := url.Values{}
	params.Set("q", q.Text)
	params.Set("language", q.Language)
	params.Set("pageSize", strconv.Itoa(q.Count))

	endpoint := c.baseURL + everythingPath + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &fetch.UpstreamError{Provider: ProviderName, Kind: fetch.ErrUpstreamTransport, Err: err}
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &fetch.UpstreamError{Provider: ProviderName, Kind: fetch.ErrUpstreamTransport, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &fetch.UpstreamError{Provider: ProviderName, Kind: fetch.ErrUpstreamTransport, Err: err}
	}

	var payload everythingResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, &fetch.UpstreamError{
				Provider:   ProviderName,
				Kind:       fetch.ErrUpstreamStatus,
				StatusCode: resp.StatusCode,
				Message:    http.StatusText(resp.StatusCode),
			}
		}
		return nil, &fetch.UpstreamError{
			Provider: ProviderName,
			Kind:     fetch.ErrMalformedPayload,
			Err:      fmt.Errorf("decode response: %w", err),
		}
	}

	if payload.Status != "ok" || resp.StatusCode >= http.StatusBadRequest {
		msg := payload.Message
		if msg == "" {
			msg = unknownErrorMessage
		}
		return nil, &fetch.UpstreamError{
			Provider:   ProviderName,
			Kind:       fetch.ErrUpstreamStatus,
			StatusCode: resp.StatusCode,
			Message:    msg,
		}
	}

	slog.DebugContext(ctx, "newsapi batch received",
		slog.Int("total_results", payload.TotalResults),
		slog.Int("articles", len(payload.Articles)))

	raws := make([]entity.RawArticle, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		raws = append(raws, a.toRaw())
	}
	return raws, nil
}
