package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"newspulse/internal/domain/entity"
	"newspulse/internal/observability/logging"
	"newspulse/internal/observability/metrics"
	"newspulse/internal/observability/tracing"
	"newspulse/internal/usecase/aggregate"
	"newspulse/internal/usecase/enrich"
)

// Defaults applied when a query leaves a field empty.
const (
	DefaultQueryText = "electronics OR semiconductors OR manufacturing"
	DefaultLanguage  = "en"
	DefaultCount     = 20
)

// Query selects one upstream batch.
type Query struct {
	Text     string `json:"q"`
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// Or fills empty fields of q from fallback.
func (q Query) Or(fallback Query) Query {
	if q.Text == "" {
		q.Text = fallback.Text
	}
	if q.Language == "" {
		q.Language = fallback.Language
	}
	if q.Count == 0 {
		q.Count = fallback.Count
	}
	return q
}

// WithDefaults fills empty fields from the package defaults.
func (q Query) WithDefaults() Query {
	if q.Text == "" {
		q.Text = DefaultQueryText
	}
	if q.Language == "" {
		q.Language = DefaultLanguage
	}
	if q.Count == 0 {
		q.Count = DefaultCount
	}
	return q
}

// Validate checks the query against the entity rules.
func (q Query) Validate() error {
	return entity.ValidateQuery(q.Text, q.Language, q.Count)
}

// ArticleFetcher retrieves one batch of raw articles for a query.
// Implementations return an error wrapping ErrUpstreamFetch on failure and never
// return a partial batch together with an error.
type ArticleFetcher interface {
	Fetch(ctx context.Context, q Query) ([]entity.RawArticle, error)
}

// Report is the result of one refresh: the enriched records and their aggregates.
type Report struct {
	ID        string                     `json:"id"`
	Provider  string                     `json:"provider"`
	Query     Query                      `json:"query"`
	FetchedAt time.Time                  `json:"fetched_at"`
	Articles  []entity.NormalizedArticle `json:"articles"`
	View      aggregate.View             `json:"summary"`
}

// Service composes fetch, enrich and aggregate for one explicit refresh.
// It holds no state between calls.
type Service struct {
	Fetcher  ArticleFetcher
	Provider string
	Enricher *enrich.Service
	Options  aggregate.Options
	// Defaults fills fields a caller leaves empty, before the package defaults apply.
	Defaults Query
	Now      func() time.Time
}

// NewService creates a pipeline Service.
func NewService(fetcher ArticleFetcher, provider string, enricher *enrich.Service, opts aggregate.Options) *Service {
	return &Service{
		Fetcher:  fetcher,
		Provider: provider,
		Enricher: enricher,
		Options:  opts,
		Now:      time.Now,
	}
}

// Refresh runs the pipeline with the service's aggregate options.
func (s *Service) Refresh(ctx context.Context, q Query) (*Report, error) {
	return s.RefreshWithOptions(ctx, q, aggregate.Options{})
}

// RefreshWithOptions runs the pipeline once. Zero fields in opts fall back to
// the service's options.
//
// An invalid query returns an entity.ValidationError. A failed upstream fetch
// returns an error matching both ErrNoData and the upstream cause, and nothing
// is enriched. A successful fetch of zero articles is not an error.
func (s *Service) RefreshWithOptions(ctx context.Context, q Query, opts aggregate.Options) (*Report, error) {
	q = q.Or(s.Defaults).WithDefaults()
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if opts.TopCountries == 0 {
		opts.TopCountries = s.Options.TopCountries
	}
	if opts.MinMentions == 0 {
		opts.MinMentions = s.Options.MinMentions
	}

	ctx, span := tracing.StartSpan(ctx, "pipeline.refresh")
	defer span.End()
	span.SetAttributes(
		attribute.String("pipeline.provider", s.Provider),
		attribute.String("pipeline.language", q.Language),
		attribute.Int("pipeline.count", q.Count),
	)

	logger := logging.FromContext(ctx).With(slog.String("provider", s.Provider))
	start := time.Now()

	raws, err := s.fetch(ctx, q)
	if err != nil {
		tracing.RecordError(span, err)
		metrics.RecordPipelineRefresh(false, time.Since(start))
		logger.WarnContext(ctx, "refresh produced no data",
			slog.String("query", q.Text),
			slog.String("error_type", errorType(err)),
			slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", ErrNoData, err)
	}

	_, enrichSpan := tracing.StartSpan(ctx, "pipeline.enrich")
	articles := s.Enricher.Enrich(ctx, raws)
	enrichSpan.SetAttributes(attribute.Int("pipeline.articles", len(articles)))
	enrichSpan.End()

	_, aggSpan := tracing.StartSpan(ctx, "pipeline.aggregate")
	view := aggregate.Build(articles, opts)
	aggSpan.SetAttributes(attribute.Bool("pipeline.insufficient_country_data", view.InsufficientCountryData))
	aggSpan.End()

	duration := time.Since(start)
	metrics.RecordPipelineRefresh(true, duration)
	logger.InfoContext(ctx, "refresh completed",
		slog.String("query", q.Text),
		slog.Int("articles", len(articles)),
		slog.Int("countries", len(view.Countries)),
		slog.Bool("insufficient_country_data", view.InsufficientCountryData),
		slog.Duration("duration", duration))

	return &Report{
		ID:        uuid.NewString(),
		Provider:  s.Provider,
		Query:     q,
		FetchedAt: s.now().UTC(),
		Articles:  articles,
		View:      view,
	}, nil
}

// fetch calls the upstream once. No retries are attempted.
func (s *Service) fetch(ctx context.Context, q Query) ([]entity.RawArticle, error) {
	ctx, span := tracing.StartSpan(ctx, "pipeline.fetch")
	defer span.End()

	start := time.Now()
	raws, err := s.Fetcher.Fetch(ctx, q)
	metrics.RecordUpstreamFetch(s.Provider, time.Since(start))
	if err != nil {
		if !errors.Is(err, ErrUpstreamFetch) {
			err = &UpstreamError{Provider: s.Provider, Kind: ErrUpstreamTransport, Err: err}
		}
		metrics.RecordUpstreamFetchError(s.Provider, errorType(err))
		tracing.RecordError(span, err)
		return nil, err
	}

	metrics.RecordArticlesFetched(s.Provider, len(raws))
	span.SetAttributes(attribute.Int("pipeline.raw_articles", len(raws)))
	return raws, nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
