// Package scraper implements fetch.ArticleFetcher over RSS/Atom search feeds
// (Google News style "search?q=" endpoints). It uses the gofeed library to parse
// feed content and goquery to reduce HTML descriptions to plain text.
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"newspulse/internal/domain/entity"
	"newspulse/internal/resilience/circuitbreaker"
	"newspulse/internal/usecase/fetch"
)

const (
	// ProviderName identifies this upstream in logs, metrics and reports.
	ProviderName = "rss"

	// DefaultSearchURL is the Google News RSS search endpoint.
	DefaultSearchURL = "https://news.google.com/rss/search"

	userAgent    = "NewsPulseBot/1.0"
	maxFeedBytes = 8 << 20
)

// RSSFetcher fetches one search feed per query and maps its items to raw articles.
// It includes circuit breaker protection; no retries are attempted.
type RSSFetcher struct {
	client         *http.Client
	searchURL      string
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewRSSFetcher creates a new RSSFetcher for searchURL with the given HTTP client.
// The query text and language are appended as the q and hl parameters.
func NewRSSFetcher(client *http.Client, searchURL string) *RSSFetcher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if searchURL == "" {
		searchURL = DefaultSearchURL
	}
	return &RSSFetcher{
		client:         client,
		searchURL:      searchURL,
		circuitBreaker: circuitbreaker.New(circuitbreaker.RSSSearchConfig()),
	}
}

// Breaker exposes the fetcher's circuit breaker for health reporting.
func (f *RSSFetcher) Breaker() *circuitbreaker.CircuitBreaker {
	return f.circuitBreaker
}

// Fetch retrieves and parses the search feed for q and returns at most q.Count items.
func (f *RSSFetcher) Fetch(ctx context.Context, q fetch.Query) ([]entity.RawArticle, error) {
	feedURL, err := f.buildURL(q)
	if err != nil {
		return nil, &fetch.UpstreamError{Provider: ProviderName, Kind: fetch.ErrUpstreamTransport, Err: err}
	}

	items, err := circuitbreaker.Do(f.circuitBreaker, func() ([]entity.RawArticle, error) {
		return f.doFetch(ctx, feedURL, q.Count)
	})
	if err != nil {
		if circuitbreaker.IsRejection(err) {
			slog.WarnContext(ctx, "feed fetch circuit breaker open, request rejected",
				slog.String("service", "rss-search"),
				slog.String("state", f.circuitBreaker.State().String()))
			return nil, &fetch.UpstreamError{Provider: ProviderName, Kind: fetch.ErrUpstreamUnavailable, Err: err}
		}
		return nil, err
	}
	return items, nil
}

func (f *RSSFetcher) buildURL(q fetch.Query) (string, error) {
	u, err := url.Parse(f.searchURL)
	if err != nil {
		return "", fmt.Errorf("parse search url: %w", err)
	}
	params := u.Query()
	params.Set("q", q.Text)
	params.Set("hl", q.Language)
	u.RawQuery = params.Encode()
	return u.String(), nil
}

// doFetch performs the actual feed fetch without circuit breaking.
func (f *RSSFetcher) doFetch(ctx context.Context, feedURL string, limit int) ([]entity.RawArticle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, &fetch.UpstreamError{Provider: ProviderName, Kind: fetch.ErrUpstreamTransport, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &fetch.UpstreamError{Provider: ProviderName, Kind: fetch.ErrUpstreamTransport, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &fetch.UpstreamError{
			Provider:   ProviderName,
			Kind:       fetch.ErrUpstreamStatus,
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, &fetch.UpstreamError{Provider: ProviderName, Kind: fetch.ErrUpstreamTransport, Err: err}
	}

	fp := gofeed.NewParser()
	feed, err := fp.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, &fetch.UpstreamError{
			Provider: ProviderName,
			Kind:     fetch.ErrMalformedPayload,
			Err:      fmt.Errorf("parse feed: %w", err),
		}
	}

	n := len(feed.Items)
	if limit > 0 && n > limit {
		n = limit
	}

	items := make([]entity.RawArticle, 0, n)
	for _, it := range feed.Items[:n] {
		items = append(items, toRawArticle(feed.Title, it))
	}
	return items, nil
}

func toRawArticle(feedTitle string, it *gofeed.Item) entity.RawArticle {
	// Description first, Content as fallback.
	desc := it.Description
	if desc == "" {
		desc = it.Content
	}

	return entity.RawArticle{
		Title:       optional(strings.TrimSpace(it.Title)),
		Description: optional(plainText(desc)),
		URL:         optional(strings.TrimSpace(it.Link)),
		PublishedAt: publishedAt(it),
		Source:      feedTitle,
	}
}

// publishedAt renders the parsed publication time in the raw UTC layout so it
// normalizes like every other provider. Unparseable dates are passed through.
func publishedAt(it *gofeed.Item) *string {
	if it.PublishedParsed != nil {
		ts := it.PublishedParsed.UTC().Format("2006-01-02T15:04:05Z")
		return &ts
	}
	return optional(strings.TrimSpace(it.Published))
}

// plainText strips markup from an HTML fragment and collapses whitespace.
func plainText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.Join(strings.Fields(fragment), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
