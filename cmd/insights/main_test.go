package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newspulse/internal/handler/http/insight"
)

const feed = `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Search</title>
  <item><title>India chip exports surge</title><link>https://example.com/1</link><pubDate>Fri, 15 Mar 2024 09:30:00 +0000</pubDate></item>
  <item><title>India factory output falls</title><link>https://example.com/2</link></item>
  <item><title>Markets wait for data</title><link>https://example.com/3</link></item>
</channel></rss>`

func rssServer(t *testing.T, status int) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(feed))
	}))
	t.Cleanup(server.Close)
	return server.URL
}

func setRSSEnv(t *testing.T, url string) {
	t.Setenv("NEWS_PROVIDER", "rss")
	t.Setenv("RSS_SEARCH_URL", url)
	t.Setenv("SENTIMENT_SCORER", "lexicon")
	t.Setenv("GAZETTEER_FILE", "")
}

func TestRun_Text(t *testing.T) {
	setRSSEnv(t, rssServer(t, http.StatusOK))

	var stdout, stderr bytes.Buffer
	code := run([]string{"chips"}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	out := stdout.String()
	assert.Contains(t, out, "# News insights: chips")
	assert.Contains(t, out, "## Headline metrics")
	assert.Contains(t, out, "India chip exports surge")
	assert.Contains(t, out, "## Sentiment by country")
}

func TestRun_JSON(t *testing.T) {
	setRSSEnv(t, rssServer(t, http.StatusOK))

	var stdout, stderr bytes.Buffer
	code := run([]string{"--output", "json", "--count", "2", "chips"}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())

	var dto insight.DTO
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &dto))
	assert.Equal(t, "rss", dto.Provider)
	assert.Equal(t, "chips", dto.Query.Q)
	assert.Len(t, dto.Articles, 2)
	assert.Equal(t, "India", dto.Articles[0].Country)
	assert.Equal(t, 2, dto.Summary.TotalArticles)
}

func TestRun_Failures(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		status   int
		wantCode int
		wantErr  string
	}{
		{
			name:     "unknown output format",
			args:     []string{"--output", "yaml"},
			status:   http.StatusOK,
			wantCode: 2,
			wantErr:  "unknown output format",
		},
		{
			name:     "negative min mentions",
			args:     []string{"--min-mentions", "-1"},
			status:   http.StatusOK,
			wantCode: 2,
			wantErr:  "min-mentions must be positive",
		},
		{
			name:     "invalid count",
			args:     []string{"--count", "500"},
			status:   http.StatusOK,
			wantCode: 1,
			wantErr:  "count",
		},
		{
			name:     "upstream failure",
			args:     nil,
			status:   http.StatusServiceUnavailable,
			wantCode: 1,
			wantErr:  "no data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRSSEnv(t, rssServer(t, tt.status))

			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)

			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, stderr.String(), tt.wantErr)
			assert.Empty(t, stdout.String())
		})
	}
}
