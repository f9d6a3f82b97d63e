package scorer

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newspulse/internal/domain/entity"
	"newspulse/internal/usecase/enrich"
)

func TestVader_Polarity(t *testing.T) {
	tests := []struct {
		name string
		text string
		want entity.Sentiment
	}{
		{name: "positive", text: "Chip maker posts great results", want: entity.SentimentPositive},
		{name: "negative", text: "Economy slides into crisis", want: entity.SentimentNegative},
		{name: "news term positive", text: "Chip exports surge", want: entity.SentimentPositive},
		{name: "news term negative", text: "Factory output falls", want: entity.SentimentNegative},
		{name: "no rated words", text: "Quarterly report published on Tuesday", want: entity.SentimentNeutral},
		{name: "empty", text: "", want: entity.SentimentNeutral},
		{name: "negated positive", text: "Not a good quarter for exporters", want: entity.SentimentNegative},
		{name: "case insensitive", text: "GREAT SUCCESS FOR EXPORTERS", want: entity.SentimentPositive},
		{name: "non-latin text", text: "在印度投资", want: entity.SentimentNeutral},
	}

	v := NewVader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := v.Polarity(context.Background(), tt.text)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, score, -1.0)
			assert.LessOrEqual(t, score, 1.0)
			assert.Equal(t, tt.want, enrich.Classify(score), "score %.3f", score)
		})
	}
}

func TestNewVader_MergesNewsTerms(t *testing.T) {
	v := NewVader()

	assert.InDelta(t, newsTerms["surge"], v.analyzer.Lexicon["surge"], 1e-9)
	// crisis is rated by VADER itself and is not overridden.
	assert.InDelta(t, -3.1, v.analyzer.Lexicon["crisis"], 1e-9)
}

func TestVader_ConcurrentUse(t *testing.T) {
	v := NewVader()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			score, err := v.Polarity(context.Background(), "Exports surge")
			assert.NoError(t, err)
			assert.Greater(t, score, 0.0)
		}()
	}
	wg.Wait()
}
