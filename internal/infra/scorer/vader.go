package scorer

import (
	"context"

	"github.com/jonreiter/govader"
)

// newsTerms adds business-news vocabulary the VADER lexicon lacks, on the
// VADER valence scale (-4 to 4). Terms VADER already rates keep its value.
var newsTerms = map[string]float64{
	// positive
	"surge": 2.0, "surges": 2.0, "soar": 2.2, "soars": 2.2,
	"rebound": 1.6, "rebounds": 1.6, "rise": 1.0, "rises": 1.0,
	"expansion": 1.0, "expands": 1.0,

	// negative
	"fall": -1.4, "falls": -1.4, "drops": -1.1, "decline": -1.5, "declines": -1.5,
	"plunge": -2.4, "plunges": -2.4, "slump": -2.0, "slumps": -2.0,
	"layoffs": -2.2, "shortages": -1.0, "slowdown": -1.6,
	"tariff": -0.8, "tariffs": -0.8, "halt": -1.2, "halts": -1.2,
}

// Vader is the offline polarity scorer. It returns the VADER compound score,
// which already lies in [-1, 1]; text with no rated words scores 0.
type Vader struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVader loads the VADER lexicon and merges newsTerms into it.
func NewVader() *Vader {
	analyzer := govader.NewSentimentIntensityAnalyzer()
	for term, valence := range newsTerms {
		if _, ok := analyzer.Lexicon[term]; !ok {
			analyzer.Lexicon[term] = valence
		}
	}
	return &Vader{analyzer: analyzer}
}

// Polarity never fails. The analyzer is read-only after NewVader, so
// concurrent calls are safe.
func (v *Vader) Polarity(_ context.Context, text string) (float64, error) {
	return clamp(v.analyzer.PolarityScores(text).Compound), nil
}
