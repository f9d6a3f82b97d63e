package enrich

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"newspulse/internal/domain/entity"
	"newspulse/internal/observability/metrics"
)

// Service enriches raw articles into normalized records.
type Service struct {
	Gazetteer  *Gazetteer
	Classifier *Classifier
}

// NewService creates an enrichment Service. A nil gazetteer selects DefaultGazetteer;
// a nil classifier is rejected with ErrNilClassifier.
func NewService(gazetteer *Gazetteer, classifier *Classifier) (*Service, error) {
	if classifier == nil {
		return nil, ErrNilClassifier
	}
	if gazetteer == nil {
		gazetteer = DefaultGazetteer()
	}
	return &Service{Gazetteer: gazetteer, Classifier: classifier}, nil
}

// Enrich produces exactly one NormalizedArticle per raw article, in input order.
// No article is dropped: missing fields are replaced with their defaults.
func (s *Service) Enrich(ctx context.Context, raws []entity.RawArticle) []entity.NormalizedArticle {
	start := time.Now()
	out := make([]entity.NormalizedArticle, len(raws))
	for i, raw := range raws {
		out[i] = s.EnrichOne(ctx, raw)
		metrics.RecordArticleEnriched(out[i].Sentiment.String())
	}

	slog.Default().DebugContext(ctx, "articles enriched",
		slog.Int("count", len(out)),
		slog.Duration("duration", time.Since(start)))
	return out
}

// EnrichOne normalizes a single raw article.
func (s *Service) EnrichOne(ctx context.Context, raw entity.RawArticle) entity.NormalizedArticle {
	title := orDefault(raw.Title, entity.DefaultTitle)
	description := orDefault(raw.Description, "")

	return entity.NormalizedArticle{
		Title:     title,
		URL:       orDefault(raw.URL, entity.DefaultURL),
		Timestamp: NormalizeTimestamp(raw.PublishedAt),
		Countries: s.Gazetteer.Extract(description + " " + title),
		Sentiment: s.Classifier.Classify(ctx, title),
	}
}

// orDefault returns *v, or def when v is nil or blank.
func orDefault(v *string, def string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return def
	}
	return *v
}
