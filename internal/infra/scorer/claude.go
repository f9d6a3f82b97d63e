package scorer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"

	"newspulse/internal/observability/metrics"
	"newspulse/internal/resilience/circuitbreaker"
)

// ClaudeConfig holds configuration parameters for the Claude scorer.
type ClaudeConfig struct {
	APIKey string

	// BaseURL overrides the API host. Empty uses the SDK default.
	BaseURL string

	// Model is the Claude API model identifier to use for scoring.
	Model string

	// MaxTokens is the maximum number of tokens for the API response.
	MaxTokens int

	// Timeout is the maximum duration for a single scoring API call.
	Timeout time.Duration
}

// DefaultClaudeConfig returns a small, fast model configuration.
func DefaultClaudeConfig() ClaudeConfig {
	return ClaudeConfig{
		Model:     "claude-haiku-4-5",
		MaxTokens: 16,
		Timeout:   20 * time.Second,
	}
}

// Claude scores headlines with Anthropic's Claude API behind a circuit breaker.
// SDK retries are disabled: one headline costs at most one call.
type Claude struct {
	client         anthropic.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	config         ClaudeConfig
}

// NewClaude creates a Claude scorer.
func NewClaude(cfg ClaudeConfig) *Claude {
	defaults := DefaultClaudeConfig()
	if cfg.Model == "" {
		cfg.Model = defaults.Model
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaults.MaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	slog.Info("Initialized Claude polarity scorer",
		slog.String("model", cfg.Model))

	return &Claude{
		client:         anthropic.NewClient(opts...),
		circuitBreaker: circuitbreaker.New(circuitbreaker.ClaudeAPIConfig()),
		config:         cfg,
	}
}

// Breaker exposes the scorer's circuit breaker for health reporting.
func (c *Claude) Breaker() *circuitbreaker.CircuitBreaker {
	return c.circuitBreaker
}

// Polarity returns the model's polarity for headline in [-1, 1].
func (c *Claude) Polarity(ctx context.Context, headline string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	score, err := circuitbreaker.Do(c.circuitBreaker, func() (float64, error) {
		return c.doScore(ctx, headline)
	})
	if err != nil {
		if circuitbreaker.IsRejection(err) {
			slog.WarnContext(ctx, "claude api circuit breaker open, request rejected",
				slog.String("service", "claude-api"),
				slog.String("state", c.circuitBreaker.State().String()))
			return 0, fmt.Errorf("%w: %w", ErrScorerUnavailable, err)
		}
		return 0, err
	}
	return score, nil
}

// doScore performs the actual API call without circuit breaking.
func (c *Claude) doScore(ctx context.Context, headline string) (float64, error) {
	requestID := uuid.NewString()
	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(buildPrompt(headline)),
			),
		},
	})

	duration := time.Since(start)
	metrics.RecordScorerRequest(KindClaude, duration)

	if err != nil {
		slog.ErrorContext(ctx, "Polarity scoring failed",
			slog.String("request_id", requestID),
			slog.String("scorer", KindClaude),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return 0, fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		return 0, fmt.Errorf("claude api returned empty response")
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return 0, fmt.Errorf("claude api returned unexpected response type")
	}

	score, err := parseScore(textBlock.Text)
	if err != nil {
		return 0, err
	}

	slog.DebugContext(ctx, "Polarity scored",
		slog.String("request_id", requestID),
		slog.String("scorer", KindClaude),
		slog.Float64("score", score),
		slog.Duration("duration", duration))
	return score, nil
}
