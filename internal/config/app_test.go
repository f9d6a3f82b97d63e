package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newspulse/internal/domain/entity"
	"newspulse/internal/usecase/aggregate"
	"newspulse/internal/usecase/fetch"
)

var appEnvKeys = []string{
	"NEWS_PROVIDER", "NEWSAPI_KEY", "NEWSAPI_BASE_URL", "RSS_SEARCH_URL",
	"DEFAULT_QUERY", "DEFAULT_LANGUAGE", "DEFAULT_COUNT", "TOP_COUNTRIES",
	"MIN_COUNTRY_MENTIONS", "UPSTREAM_TIMEOUT", "UPSTREAM_RATE_LIMIT", "UPSTREAM_BURST",
	"SENTIMENT_SCORER", "SCORER_TIMEOUT", "ANTHROPIC_API_KEY", "OPENAI_API_KEY",
	"GAZETTEER_FILE", "GAZETTEER_EXTRA", "HTTP_ADDR", "REQUEST_TIMEOUT",
	"SHUTDOWN_TIMEOUT", "RATELIMIT_REQUESTS", "RATELIMIT_WINDOW", "TRACE_SAMPLE_RATIO",
}

// clearAppEnv blanks every variable LoadAppConfig reads; t.Setenv restores them.
func clearAppEnv(t *testing.T) {
	t.Helper()
	for _, k := range appEnvKeys {
		t.Setenv(k, "")
	}
}

func TestLoadAppConfig_Defaults(t *testing.T) {
	clearAppEnv(t)
	t.Setenv("NEWSAPI_KEY", "key")

	cfg, err := LoadAppConfig()
	require.NoError(t, err)

	assert.Equal(t, ProviderNewsAPI, cfg.Provider)
	assert.Equal(t, ScorerLexicon, cfg.Scorer)
	assert.Equal(t, fetch.Query{
		Text:     "electronics OR semiconductors OR manufacturing",
		Language: "en",
		Count:    20,
	}, cfg.Query())
	assert.Equal(t, aggregate.Options{TopCountries: 10, MinMentions: 2}, cfg.AggregateOptions())
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 1.0, cfg.TraceSampleRatio)
	assert.Nil(t, cfg.GazetteerExtra)
}

func TestLoadAppConfig_Overrides(t *testing.T) {
	clearAppEnv(t)
	t.Setenv("NEWS_PROVIDER", "RSS")
	t.Setenv("DEFAULT_QUERY", "semiconductor fab")
	t.Setenv("DEFAULT_LANGUAGE", "ta")
	t.Setenv("DEFAULT_COUNT", "50")
	t.Setenv("TOP_COUNTRIES", "5")
	t.Setenv("MIN_COUNTRY_MENTIONS", "3")
	t.Setenv("SENTIMENT_SCORER", "claude")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("GAZETTEER_EXTRA", "Mexico, Brazil")
	t.Setenv("UPSTREAM_RATE_LIMIT", "0.5")

	cfg, err := LoadAppConfig()
	require.NoError(t, err)

	assert.Equal(t, ProviderRSS, cfg.Provider)
	assert.Equal(t, ScorerClaude, cfg.Scorer)
	assert.Equal(t, fetch.Query{Text: "semiconductor fab", Language: "ta", Count: 50}, cfg.Query())
	assert.Equal(t, aggregate.Options{TopCountries: 5, MinMentions: 3}, cfg.AggregateOptions())
	assert.Equal(t, []string{"Mexico", "Brazil"}, cfg.GazetteerExtra)
	assert.Equal(t, 0.5, cfg.UpstreamRateLimit)
}

func TestAppConfig_Validate(t *testing.T) {
	valid := func() AppConfig {
		return AppConfig{
			Provider:          ProviderNewsAPI,
			NewsAPIKey:        "key",
			RSSSearchURL:      "https://news.google.com/rss/search",
			DefaultQuery:      "chips",
			DefaultLanguage:   "en",
			DefaultCount:      20,
			TopCountries:      10,
			MinMentions:       2,
			UpstreamTimeout:   15 * time.Second,
			Scorer:            ScorerLexicon,
			ScorerTimeout:     20 * time.Second,
			RequestTimeout:    60 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			RateLimitRequests: 30,
			RateLimitWindow:   time.Minute,
			TraceSampleRatio:  1,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr bool
		wantMsg string
	}{
		{name: "valid", mutate: func(*AppConfig) {}},
		{name: "newsapi without key", mutate: func(c *AppConfig) { c.NewsAPIKey = "" }, wantErr: true, wantMsg: "NEWSAPI_KEY"},
		{name: "rss without key is fine", mutate: func(c *AppConfig) { c.Provider = ProviderRSS; c.NewsAPIKey = "" }},
		{name: "unknown provider", mutate: func(c *AppConfig) { c.Provider = "bing" }, wantErr: true, wantMsg: "NEWS_PROVIDER"},
		{name: "claude without key", mutate: func(c *AppConfig) { c.Scorer = ScorerClaude }, wantErr: true, wantMsg: "ANTHROPIC_API_KEY"},
		{name: "openai without key", mutate: func(c *AppConfig) { c.Scorer = ScorerOpenAI }, wantErr: true, wantMsg: "OPENAI_API_KEY"},
		{name: "openai with key", mutate: func(c *AppConfig) { c.Scorer = ScorerOpenAI; c.OpenAIAPIKey = "sk" }},
		{name: "unknown scorer", mutate: func(c *AppConfig) { c.Scorer = "vader" }, wantErr: true, wantMsg: "SENTIMENT_SCORER"},
		{name: "count too large", mutate: func(c *AppConfig) { c.DefaultCount = 101 }, wantErr: true, wantMsg: "count must be between 1 and 100"},
		{name: "bad language", mutate: func(c *AppConfig) { c.DefaultLanguage = "EN" }, wantErr: true, wantMsg: "language"},
		{name: "negative top", mutate: func(c *AppConfig) { c.TopCountries = -1 }, wantErr: true, wantMsg: "TOP_COUNTRIES"},
		{name: "zero min mentions", mutate: func(c *AppConfig) { c.MinMentions = 0 }, wantErr: true, wantMsg: "MIN_COUNTRY_MENTIONS"},
		{name: "zero upstream timeout", mutate: func(c *AppConfig) { c.UpstreamTimeout = 0 }, wantErr: true, wantMsg: "UPSTREAM_TIMEOUT"},
		{name: "request timeout too long", mutate: func(c *AppConfig) { c.RequestTimeout = time.Hour }, wantErr: true, wantMsg: "REQUEST_TIMEOUT"},
		{name: "sample ratio too large", mutate: func(c *AppConfig) { c.TraceSampleRatio = 1.5 }, wantErr: true, wantMsg: "TRACE_SAMPLE_RATIO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestAppConfig_Validate_DefaultQueryIsValidationError(t *testing.T) {
	cfg := AppConfig{
		Provider:          ProviderRSS,
		RSSSearchURL:      "https://example.com",
		Scorer:            ScorerLexicon,
		DefaultQuery:      "",
		DefaultLanguage:   "en",
		DefaultCount:      20,
		MinMentions:       2,
		RateLimitRequests: 1,
	}

	err := cfg.Validate()

	var vErr *entity.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "q", vErr.Field)
}
