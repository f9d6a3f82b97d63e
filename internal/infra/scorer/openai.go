package scorer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"newspulse/internal/observability/metrics"
	"newspulse/internal/resilience/circuitbreaker"
)

// OpenAIConfig holds configuration parameters for the OpenAI scorer.
type OpenAIConfig struct {
	APIKey string

	// BaseURL overrides the API host, including the /v1 prefix.
	BaseURL string

	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// DefaultOpenAIConfig returns a small, fast model configuration.
func DefaultOpenAIConfig() OpenAIConfig {
	return OpenAIConfig{
		Model:     openai.GPT4oMini,
		MaxTokens: 16,
		Timeout:   20 * time.Second,
	}
}

// OpenAI scores headlines with the OpenAI chat completions API behind a circuit breaker.
type OpenAI struct {
	client         *openai.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	config         OpenAIConfig
}

// NewOpenAI creates an OpenAI scorer.
func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	defaults := DefaultOpenAIConfig()
	if cfg.Model == "" {
		cfg.Model = defaults.Model
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaults.MaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	slog.Info("Initialized OpenAI polarity scorer",
		slog.String("model", cfg.Model))

	return &OpenAI{
		client:         openai.NewClientWithConfig(clientCfg),
		circuitBreaker: circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		config:         cfg,
	}
}

// Breaker exposes the scorer's circuit breaker for health reporting.
func (o *OpenAI) Breaker() *circuitbreaker.CircuitBreaker {
	return o.circuitBreaker
}

// Polarity returns the model's polarity for headline in [-1, 1].
func (o *OpenAI) Polarity(ctx context.Context, headline string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	score, err := circuitbreaker.Do(o.circuitBreaker, func() (float64, error) {
		return o.doScore(ctx, headline)
	})
	if err != nil {
		if circuitbreaker.IsRejection(err) {
			slog.WarnContext(ctx, "openai api circuit breaker open, request rejected",
				slog.String("service", "openai-api"),
				slog.String("state", o.circuitBreaker.State().String()))
			return 0, fmt.Errorf("%w: %w", ErrScorerUnavailable, err)
		}
		return 0, err
	}
	return score, nil
}

// doScore performs the actual API call without circuit breaking.
func (o *OpenAI) doScore(ctx context.Context, headline string) (float64, error) {
	requestID := uuid.NewString()
	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.config.Model,
		MaxTokens:   o.config.MaxTokens,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(headline)},
		},
	})

	duration := time.Since(start)
	metrics.RecordScorerRequest(KindOpenAI, duration)

	if err != nil {
		slog.ErrorContext(ctx, "Polarity scoring failed",
			slog.String("request_id", requestID),
			slog.String("scorer", KindOpenAI),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return 0, fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("openai api returned no choices")
	}

	score, err := parseScore(resp.Choices[0].Message.Content)
	if err != nil {
		return 0, err
	}

	slog.DebugContext(ctx, "Polarity scored",
		slog.String("request_id", requestID),
		slog.String("scorer", KindOpenAI),
		slog.Float64("score", score),
		slog.Duration("duration", duration))
	return score, nil
}
