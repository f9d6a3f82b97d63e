package scraper_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newspulse/internal/infra/scraper"
	"newspulse/internal/usecase/fetch"
)

const searchFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>"semiconductors" - Google News</title>
    <link>https://news.google.com</link>
    <description>Google News</description>
    <item>
      <title>Taiwan chipmakers expand in Japan</title>
      <link>https://example.com/article1</link>
      <description>&lt;a href="https://example.com/article1"&gt;Taiwan chipmakers&lt;/a&gt;&amp;nbsp;&lt;font color="#6f6f6f"&gt;Nikkei&lt;/font&gt;</description>
      <pubDate>Fri, 15 Mar 2024 18:30:00 +0900</pubDate>
    </item>
    <item>
      <title>Vietnam fab plans</title>
      <link>https://example.com/article2</link>
      <description>Plain   text
        description</description>
      <pubDate>sometime last week</pubDate>
    </item>
    <item>
      <title></title>
      <link>https://example.com/article3</link>
    </item>
  </channel>
</rss>`

func serveFeed(t *testing.T, status int, body string, check func(*http.Request)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRSSFetcher_Fetch_Success(t *testing.T) {
	server := serveFeed(t, http.StatusOK, searchFeed, func(r *http.Request) {
		assert.Equal(t, "semiconductors", r.URL.Query().Get("q"))
		assert.Equal(t, "en", r.URL.Query().Get("hl"))
	})

	fetcher := scraper.NewRSSFetcher(&http.Client{Timeout: 5 * time.Second}, server.URL+"/rss/search")
	items, err := fetcher.Fetch(context.Background(), fetch.Query{Text: "semiconductors", Language: "en", Count: 10})
	require.NoError(t, err)
	require.Len(t, items, 3)

	first := items[0]
	require.NotNil(t, first.Title)
	assert.Equal(t, "Taiwan chipmakers expand in Japan", *first.Title)
	require.NotNil(t, first.Description)
	assert.Equal(t, "Taiwan chipmakers Nikkei", *first.Description)
	require.NotNil(t, first.PublishedAt)
	assert.Equal(t, "2024-03-15T09:30:00Z", *first.PublishedAt, "parsed dates are rendered in UTC")
	assert.Equal(t, `"semiconductors" - Google News`, first.Source)

	second := items[1]
	require.NotNil(t, second.Description)
	assert.Equal(t, "Plain text description", *second.Description)
	require.NotNil(t, second.PublishedAt)
	assert.Equal(t, "sometime last week", *second.PublishedAt, "unparseable dates pass through")

	third := items[2]
	assert.Nil(t, third.Title)
	assert.Nil(t, third.Description)
	assert.Nil(t, third.PublishedAt)
}

func TestRSSFetcher_Fetch_LimitsToCount(t *testing.T) {
	server := serveFeed(t, http.StatusOK, searchFeed, nil)

	fetcher := scraper.NewRSSFetcher(nil, server.URL)
	items, err := fetcher.Fetch(context.Background(), fetch.Query{Text: "chips", Language: "en", Count: 2})
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestRSSFetcher_Fetch_Atom(t *testing.T) {
	atom := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Test Atom Feed</title>
  <updated>2024-01-01T00:00:00Z</updated>
  <entry>
    <title>Atom Article 1</title>
    <link href="https://example.com/atom1"/>
    <summary>Atom summary</summary>
    <published>2024-01-01T00:00:00Z</published>
  </entry>
</feed>`
	server := serveFeed(t, http.StatusOK, atom, nil)

	items, err := scraper.NewRSSFetcher(nil, server.URL).Fetch(context.Background(), fetch.Query{Text: "x", Language: "en", Count: 5})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Atom Article 1", *items[0].Title)
	assert.Equal(t, "https://example.com/atom1", *items[0].URL)
	assert.Equal(t, "2024-01-01T00:00:00Z", *items[0].PublishedAt)
}

func TestRSSFetcher_Fetch_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind error
	}{
		{name: "http error status", status: http.StatusServiceUnavailable, body: "down", wantKind: fetch.ErrUpstreamStatus},
		{name: "not a feed", status: http.StatusOK, body: "<html><body>hello</body></html>", wantKind: fetch.ErrMalformedPayload},
		{name: "truncated xml", status: http.StatusOK, body: `<?xml version="1.0"?><rss version="2.0"><channel><item>`, wantKind: fetch.ErrMalformedPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := serveFeed(t, tt.status, tt.body, nil)

			items, err := scraper.NewRSSFetcher(nil, server.URL).Fetch(context.Background(), fetch.Query{Text: "x", Language: "en", Count: 5})

			assert.Nil(t, items)
			assert.ErrorIs(t, err, fetch.ErrUpstreamFetch)
			assert.ErrorIs(t, err, tt.wantKind)
		})
	}
}

func TestRSSFetcher_Fetch_ContextCanceled(t *testing.T) {
	server := serveFeed(t, http.StatusOK, searchFeed, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := scraper.NewRSSFetcher(nil, server.URL).Fetch(ctx, fetch.Query{Text: "x", Language: "en", Count: 5})
	assert.ErrorIs(t, err, fetch.ErrUpstreamTransport)
}
