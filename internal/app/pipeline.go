// Package app wires configuration into a ready-to-run refresh pipeline.
// Both the HTTP server and the CLI build their pipeline here.
package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"newspulse/internal/config"
	"newspulse/internal/infra/newsapi"
	"newspulse/internal/infra/scorer"
	"newspulse/internal/infra/scraper"
	"newspulse/internal/resilience/circuitbreaker"
	"newspulse/internal/usecase/enrich"
	fetchUC "newspulse/internal/usecase/fetch"
)

// breakerOwner is implemented by upstream adapters guarded by a circuit breaker.
type breakerOwner interface {
	Breaker() *circuitbreaker.CircuitBreaker
}

// Pipeline is a wired refresh service plus the breakers guarding its upstreams.
type Pipeline struct {
	Service  *fetchUC.Service
	Breakers []*circuitbreaker.CircuitBreaker
}

// Build creates the fetcher, the scorer and the enricher selected by cfg.
func Build(cfg *config.AppConfig) (*Pipeline, error) {
	gazetteer, err := config.LoadGazetteer(cfg.GazetteerFile, cfg.GazetteerExtra...)
	if err != nil {
		return nil, fmt.Errorf("load gazetteer: %w", err)
	}

	polarity, err := scorer.New(scorer.Settings{
		Kind:            cfg.Scorer,
		AnthropicAPIKey: cfg.AnthropicAPIKey,
		OpenAIAPIKey:    cfg.OpenAIAPIKey,
		Timeout:         cfg.ScorerTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create scorer: %w", err)
	}

	classifier, err := enrich.NewClassifier(polarity)
	if err != nil {
		return nil, fmt.Errorf("create classifier: %w", err)
	}

	fetcher, provider, err := newFetcher(cfg)
	if err != nil {
		return nil, err
	}

	var breakers []*circuitbreaker.CircuitBreaker
	for _, c := range []any{fetcher, polarity} {
		if owner, ok := c.(breakerOwner); ok {
			breakers = append(breakers, owner.Breaker())
		}
	}

	slog.Info("pipeline configured",
		slog.String("provider", provider),
		slog.String("scorer", cfg.Scorer),
		slog.Int("gazetteer_size", len(gazetteer.Names())),
		slog.Int("top_countries", cfg.TopCountries),
		slog.Int("min_mentions", cfg.MinMentions))

	enricher, err := enrich.NewService(gazetteer, classifier)
	if err != nil {
		return nil, fmt.Errorf("create enricher: %w", err)
	}

	svc := fetchUC.NewService(fetcher, provider, enricher, cfg.AggregateOptions())
	svc.Defaults = cfg.Query()
	return &Pipeline{Service: svc, Breakers: breakers}, nil
}

func newFetcher(cfg *config.AppConfig) (fetchUC.ArticleFetcher, string, error) {
	switch cfg.Provider {
	case config.ProviderNewsAPI:
		return newsapi.NewClient(newsapi.Config{
			BaseURL:   cfg.NewsAPIBaseURL,
			APIKey:    cfg.NewsAPIKey,
			Timeout:   cfg.UpstreamTimeout,
			RateLimit: cfg.UpstreamRateLimit,
			Burst:     cfg.UpstreamBurst,
		}, nil), newsapi.ProviderName, nil
	case config.ProviderRSS:
		return scraper.NewRSSFetcher(&http.Client{Timeout: cfg.UpstreamTimeout}, cfg.RSSSearchURL), scraper.ProviderName, nil
	default:
		return nil, "", fmt.Errorf("%w: unknown provider %q", config.ErrInvalidConfig, cfg.Provider)
	}
}
