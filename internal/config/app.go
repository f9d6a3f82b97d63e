// Package config loads newspulse settings from the environment and the
// optional gazetteer file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"newspulse/internal/domain/entity"
	"newspulse/internal/usecase/aggregate"
	"newspulse/internal/usecase/fetch"
	pkgconfig "newspulse/pkg/config"
)

// Upstream providers.
const (
	ProviderNewsAPI = "newsapi"
	ProviderRSS     = "rss"
)

// Polarity scorers.
const (
	ScorerLexicon = "lexicon"
	ScorerClaude  = "claude"
	ScorerOpenAI  = "openai"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// AppConfig holds everything the binaries need to wire the pipeline.
type AppConfig struct {
	// Provider selects the upstream: "newsapi" or "rss".
	Provider       string
	NewsAPIKey     string
	NewsAPIBaseURL string
	RSSSearchURL   string

	// Query defaults applied when a refresh leaves a field empty.
	DefaultQuery    string
	DefaultLanguage string
	DefaultCount    int

	TopCountries int
	MinMentions  int

	UpstreamTimeout time.Duration
	// UpstreamRateLimit is in requests per second. Zero disables pacing.
	UpstreamRateLimit float64
	UpstreamBurst     int

	// Scorer selects the polarity scorer: "lexicon", "claude" or "openai".
	Scorer          string
	ScorerTimeout   time.Duration
	AnthropicAPIKey string
	OpenAIAPIKey    string

	// GazetteerFile is an optional YAML place list; GazetteerExtra is appended to it.
	GazetteerFile  string
	GazetteerExtra []string

	HTTPAddr        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	// Per-IP limit on /insights.
	RateLimitRequests int
	RateLimitWindow   time.Duration

	TraceSampleRatio float64
}

// LoadAppConfig reads the configuration from environment variables and validates it.
//
// Environment variables:
//   - NEWS_PROVIDER: newsapi | rss (default: newsapi)
//   - NEWSAPI_KEY, NEWSAPI_BASE_URL, RSS_SEARCH_URL
//   - DEFAULT_QUERY, DEFAULT_LANGUAGE (default: en), DEFAULT_COUNT (default: 20)
//   - TOP_COUNTRIES (default: 10), MIN_COUNTRY_MENTIONS (default: 2)
//   - UPSTREAM_TIMEOUT (default: 15s), UPSTREAM_RATE_LIMIT (default: 1 req/s), UPSTREAM_BURST (default: 1)
//   - SENTIMENT_SCORER: lexicon | claude | openai (default: lexicon), SCORER_TIMEOUT (default: 20s)
//   - ANTHROPIC_API_KEY, OPENAI_API_KEY
//   - GAZETTEER_FILE, GAZETTEER_EXTRA (comma-separated)
//   - HTTP_ADDR (default: :8080), REQUEST_TIMEOUT (default: 60s), SHUTDOWN_TIMEOUT (default: 10s)
//   - RATELIMIT_REQUESTS (default: 30), RATELIMIT_WINDOW (default: 1m)
//   - TRACE_SAMPLE_RATIO (default: 1.0)
func LoadAppConfig() (*AppConfig, error) {
	cfg := &AppConfig{
		Provider:          strings.ToLower(pkgconfig.GetEnvString("NEWS_PROVIDER", ProviderNewsAPI)),
		NewsAPIKey:        pkgconfig.GetEnvString("NEWSAPI_KEY", ""),
		NewsAPIBaseURL:    pkgconfig.GetEnvString("NEWSAPI_BASE_URL", "https://newsapi.org"),
		RSSSearchURL:      pkgconfig.GetEnvString("RSS_SEARCH_URL", "https://news.google.com/rss/search"),
		DefaultQuery:      pkgconfig.GetEnvString("DEFAULT_QUERY", fetch.DefaultQueryText),
		DefaultLanguage:   pkgconfig.GetEnvString("DEFAULT_LANGUAGE", fetch.DefaultLanguage),
		DefaultCount:      pkgconfig.GetEnvInt("DEFAULT_COUNT", fetch.DefaultCount),
		TopCountries:      pkgconfig.GetEnvInt("TOP_COUNTRIES", aggregate.DefaultTopCountries),
		MinMentions:       pkgconfig.GetEnvInt("MIN_COUNTRY_MENTIONS", aggregate.DefaultMinMentions),
		UpstreamTimeout:   pkgconfig.GetEnvDuration("UPSTREAM_TIMEOUT", 15*time.Second),
		UpstreamRateLimit: pkgconfig.GetEnvFloat("UPSTREAM_RATE_LIMIT", 1),
		UpstreamBurst:     pkgconfig.GetEnvInt("UPSTREAM_BURST", 1),
		Scorer:            strings.ToLower(pkgconfig.GetEnvString("SENTIMENT_SCORER", ScorerLexicon)),
		ScorerTimeout:     pkgconfig.GetEnvDuration("SCORER_TIMEOUT", 20*time.Second),
		AnthropicAPIKey:   pkgconfig.GetEnvString("ANTHROPIC_API_KEY", ""),
		OpenAIAPIKey:      pkgconfig.GetEnvString("OPENAI_API_KEY", ""),
		GazetteerFile:     pkgconfig.GetEnvString("GAZETTEER_FILE", ""),
		GazetteerExtra:    pkgconfig.GetEnvStringList("GAZETTEER_EXTRA", nil),
		HTTPAddr:          pkgconfig.GetEnvString("HTTP_ADDR", ":8080"),
		RequestTimeout:    pkgconfig.GetEnvDuration("REQUEST_TIMEOUT", 60*time.Second),
		ShutdownTimeout:   pkgconfig.GetEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		RateLimitRequests: pkgconfig.GetEnvInt("RATELIMIT_REQUESTS", 30),
		RateLimitWindow:   pkgconfig.GetEnvDuration("RATELIMIT_WINDOW", time.Minute),
		TraceSampleRatio:  pkgconfig.GetEnvFloat("TRACE_SAMPLE_RATIO", 1.0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails closed on missing credentials and out-of-range values.
func (c *AppConfig) Validate() error {
	switch c.Provider {
	case ProviderNewsAPI:
		if c.NewsAPIKey == "" {
			return invalid("NEWSAPI_KEY is required when NEWS_PROVIDER=newsapi")
		}
	case ProviderRSS:
		if c.RSSSearchURL == "" {
			return invalid("RSS_SEARCH_URL is required when NEWS_PROVIDER=rss")
		}
	default:
		return invalid("NEWS_PROVIDER must be %q or %q, got %q", ProviderNewsAPI, ProviderRSS, c.Provider)
	}

	switch c.Scorer {
	case ScorerLexicon:
	case ScorerClaude:
		if c.AnthropicAPIKey == "" {
			return invalid("ANTHROPIC_API_KEY is required when SENTIMENT_SCORER=claude")
		}
	case ScorerOpenAI:
		if c.OpenAIAPIKey == "" {
			return invalid("OPENAI_API_KEY is required when SENTIMENT_SCORER=openai")
		}
	default:
		return invalid("SENTIMENT_SCORER must be one of lexicon, claude, openai, got %q", c.Scorer)
	}

	if err := entity.ValidateQuery(c.DefaultQuery, c.DefaultLanguage, c.DefaultCount); err != nil {
		return fmt.Errorf("%w: default query: %w", ErrInvalidConfig, err)
	}

	if c.TopCountries < 0 {
		return invalid("TOP_COUNTRIES must not be negative")
	}
	if c.MinMentions < 1 {
		return invalid("MIN_COUNTRY_MENTIONS must be at least 1")
	}
	if c.UpstreamRateLimit < 0 {
		return invalid("UPSTREAM_RATE_LIMIT must not be negative")
	}
	if c.RateLimitRequests < 1 {
		return invalid("RATELIMIT_REQUESTS must be at least 1")
	}
	if c.TraceSampleRatio < 0 || c.TraceSampleRatio > 1 {
		return invalid("TRACE_SAMPLE_RATIO must be between 0.0 and 1.0")
	}

	durations := []struct {
		key string
		d   time.Duration
	}{
		{"UPSTREAM_TIMEOUT", c.UpstreamTimeout},
		{"SCORER_TIMEOUT", c.ScorerTimeout},
		{"SHUTDOWN_TIMEOUT", c.ShutdownTimeout},
		{"RATELIMIT_WINDOW", c.RateLimitWindow},
	}
	for _, d := range durations {
		if err := pkgconfig.ValidatePositiveDuration(d.d); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, d.key, err)
		}
	}
	if err := pkgconfig.ValidateDurationRange(c.RequestTimeout, time.Second, 5*time.Minute); err != nil {
		return fmt.Errorf("%w: REQUEST_TIMEOUT: %w", ErrInvalidConfig, err)
	}

	return nil
}

// Query returns the configured default refresh query.
func (c *AppConfig) Query() fetch.Query {
	return fetch.Query{Text: c.DefaultQuery, Language: c.DefaultLanguage, Count: c.DefaultCount}
}

// AggregateOptions returns the configured aggregation options.
func (c *AppConfig) AggregateOptions() aggregate.Options {
	return aggregate.Options{TopCountries: c.TopCountries, MinMentions: c.MinMentions}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
