package enrich

import (
	"context"
	"log/slog"
	"math"

	"newspulse/internal/domain/entity"
	"newspulse/internal/observability/metrics"
)

// Polarity thresholds. Scores inside [NegativeThreshold, PositiveThreshold] are Neutral.
const (
	PositiveThreshold = 0.1
	NegativeThreshold = -0.1
)

// PolarityScorer scores the polarity of a text in the range [-1.0, 1.0].
// Negative values are unfavorable, positive values favorable.
type PolarityScorer interface {
	Polarity(ctx context.Context, text string) (float64, error)
}

// Classify maps a polarity score to a sentiment label.
// The boundary values 0.1 and -0.1 are Neutral.
func Classify(polarity float64) entity.Sentiment {
	switch {
	case polarity > PositiveThreshold:
		return entity.SentimentPositive
	case polarity < NegativeThreshold:
		return entity.SentimentNegative
	default:
		return entity.SentimentNeutral
	}
}

// Classifier scores headlines with an injected PolarityScorer and labels them.
type Classifier struct {
	scorer PolarityScorer
	logger *slog.Logger
}

// NewClassifier creates a Classifier backed by scorer.
func NewClassifier(scorer PolarityScorer) (*Classifier, error) {
	if scorer == nil {
		return nil, ErrNilScorer
	}
	return &Classifier{scorer: scorer, logger: slog.Default()}, nil
}

// Classify labels a headline. It never fails: a scorer error or a NaN score is
// treated as polarity 0 and yields Neutral.
func (c *Classifier) Classify(ctx context.Context, headline string) entity.Sentiment {
	return Classify(c.polarity(ctx, headline))
}

// polarity returns the clamped score for text, or 0 when scoring fails.
func (c *Classifier) polarity(ctx context.Context, text string) float64 {
	p, err := c.scorer.Polarity(ctx, text)
	if err != nil {
		c.logger.WarnContext(ctx, "polarity scoring failed, treating headline as neutral",
			slog.Int("text_length", len(text)),
			slog.Any("error", err))
		metrics.RecordPolarityScore(false)
		return 0
	}
	if math.IsNaN(p) {
		metrics.RecordPolarityScore(false)
		return 0
	}
	metrics.RecordPolarityScore(true)
	return math.Max(-1, math.Min(1, p))
}
