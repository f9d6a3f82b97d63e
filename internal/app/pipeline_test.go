package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newspulse/internal/config"
	"newspulse/internal/domain/entity"
	fetchUC "newspulse/internal/usecase/fetch"
)

func baseConfig() *config.AppConfig {
	return &config.AppConfig{
		Provider:        config.ProviderRSS,
		RSSSearchURL:    "https://news.google.com/rss/search",
		NewsAPIBaseURL:  "https://newsapi.org",
		DefaultQuery:    "chips",
		DefaultLanguage: "en",
		DefaultCount:    20,
		TopCountries:    10,
		MinMentions:     2,
		UpstreamTimeout: 5 * time.Second,
		Scorer:          config.ScorerLexicon,
		ScorerTimeout:   5 * time.Second,
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(*config.AppConfig)
		wantProvider string
		wantBreakers []string
	}{
		{
			name:         "rss with lexicon",
			mutate:       func(*config.AppConfig) {},
			wantProvider: "rss",
			wantBreakers: []string{"rss-search"},
		},
		{
			name: "newsapi with claude",
			mutate: func(c *config.AppConfig) {
				c.Provider = config.ProviderNewsAPI
				c.NewsAPIKey = "key"
				c.Scorer = config.ScorerClaude
				c.AnthropicAPIKey = "sk-ant-test"
			},
			wantProvider: "newsapi",
			wantBreakers: []string{"newsapi", "claude-api"},
		},
		{
			name: "newsapi with openai",
			mutate: func(c *config.AppConfig) {
				c.Provider = config.ProviderNewsAPI
				c.NewsAPIKey = "key"
				c.Scorer = config.ScorerOpenAI
				c.OpenAIAPIKey = "sk-test"
			},
			wantProvider: "newsapi",
			wantBreakers: []string{"newsapi", "openai-api"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(cfg)

			p, err := Build(cfg)
			require.NoError(t, err)

			assert.Equal(t, tt.wantProvider, p.Service.Provider)
			names := make([]string, 0, len(p.Breakers))
			for _, b := range p.Breakers {
				names = append(names, b.Name())
			}
			assert.Equal(t, tt.wantBreakers, names)
		})
	}
}

func TestBuild_Errors(t *testing.T) {
	t.Run("missing gazetteer file", func(t *testing.T) {
		cfg := baseConfig()
		cfg.GazetteerFile = filepath.Join(t.TempDir(), "missing.yaml")

		_, err := Build(cfg)
		assert.ErrorContains(t, err, "load gazetteer")
	})

	t.Run("unknown scorer", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Scorer = "vader"

		_, err := Build(cfg)
		assert.ErrorContains(t, err, "create scorer")
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Provider = "bing"

		_, err := Build(cfg)
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})
}

func TestBuild_EndToEnd(t *testing.T) {
	feed := `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Search</title>
  <item><title>Kenya chip plant opens to great success</title><link>https://example.com/1</link><pubDate>Fri, 15 Mar 2024 09:30:00 +0000</pubDate></item>
  <item><title>Kenya output falls</title><link>https://example.com/2</link></item>
</channel></rss>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(feed))
	}))
	t.Cleanup(server.Close)

	gazetteerPath := filepath.Join(t.TempDir(), "places.yaml")
	require.NoError(t, os.WriteFile(gazetteerPath, []byte("places:\n  - Kenya\n"), 0o600))

	cfg := baseConfig()
	cfg.RSSSearchURL = server.URL
	cfg.GazetteerFile = gazetteerPath

	p, err := Build(cfg)
	require.NoError(t, err)

	report, err := p.Service.Refresh(context.Background(), fetchUC.Query{Text: "chips"})
	require.NoError(t, err)

	require.Len(t, report.Articles, 2)
	assert.Equal(t, "2024-03-15 09:30", report.Articles[0].Timestamp)
	assert.Equal(t, entity.SentimentPositive, report.Articles[0].Sentiment)
	assert.Equal(t, entity.SentimentNegative, report.Articles[1].Sentiment)
	assert.Equal(t, "Unknown", report.Articles[1].Timestamp)
	assert.False(t, report.View.InsufficientCountryData)
	assert.Equal(t, 2, report.View.Countries[0].Count)
}
