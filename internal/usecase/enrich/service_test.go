package enrich_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newspulse/internal/domain/entity"
	"newspulse/internal/usecase/enrich"
)

// keywordScorer scores +0.5 for "surge" and -0.5 for "slump", 0 otherwise,
// and records which texts it was asked about.
type keywordScorer struct {
	seen []string
}

func (k *keywordScorer) Polarity(_ context.Context, text string) (float64, error) {
	k.seen = append(k.seen, text)
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "surge"):
		return 0.5, nil
	case strings.Contains(lower, "slump"):
		return -0.5, nil
	default:
		return 0, nil
	}
}

func newService(t *testing.T, scorer enrich.PolarityScorer) *enrich.Service {
	t.Helper()
	classifier, err := enrich.NewClassifier(scorer)
	require.NoError(t, err)
	svc, err := enrich.NewService(nil, classifier)
	require.NoError(t, err)
	return svc
}

func TestService_Enrich(t *testing.T) {
	scorer := &keywordScorer{}
	svc := newService(t, scorer)

	raws := []entity.RawArticle{
		{
			Title:       entity.StringPtr("Chip exports surge"),
			Description: entity.StringPtr("Shipments from Taiwan and Japan rose."),
			PublishedAt: entity.StringPtr("2024-03-15T09:30:00Z"),
			URL:         entity.StringPtr("https://example.com/a"),
		},
		{
			// Every field missing.
		},
		{
			Title:       entity.StringPtr("   "),
			Description: entity.StringPtr("India factory output slump"),
			PublishedAt: entity.StringPtr("yesterday"),
			URL:         entity.StringPtr(""),
		},
		{
			Title:       entity.StringPtr("Demand slump hits China"),
			PublishedAt: entity.StringPtr(""),
			URL:         entity.StringPtr("https://example.com/d"),
		},
	}

	got := svc.Enrich(context.Background(), raws)

	want := []entity.NormalizedArticle{
		{
			Title:     "Chip exports surge",
			URL:       "https://example.com/a",
			Timestamp: "2024-03-15 09:30",
			Countries: []string{"Japan", "Taiwan"},
			Sentiment: entity.SentimentPositive,
		},
		{
			Title:     "No title",
			URL:       "#",
			Timestamp: "Unknown",
			Countries: []string{"Global"},
			Sentiment: entity.SentimentNeutral,
		},
		{
			Title:     "No title",
			URL:       "#",
			Timestamp: "yesterday",
			Countries: []string{"India"},
			Sentiment: entity.SentimentNeutral,
		},
		{
			Title:     "Demand slump hits China",
			URL:       "https://example.com/d",
			Timestamp: "Unknown",
			Countries: []string{"China"},
			Sentiment: entity.SentimentNegative,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Enrich mismatch (-want +got):\n%s", diff)
	}

	// Sentiment comes from the headline only: the description "slump" on the
	// third article never reaches the scorer.
	assert.Equal(t, []string{"Chip exports surge", "No title", "No title", "Demand slump hits China"}, scorer.seen)
}

func TestService_Enrich_PreservesLengthAndOrder(t *testing.T) {
	svc := newService(t, &keywordScorer{})

	raws := make([]entity.RawArticle, 25)
	for i := range raws {
		if i%3 == 0 {
			continue
		}
		raws[i].Title = entity.StringPtr(strings.Repeat("x", i+1))
	}

	got := svc.Enrich(context.Background(), raws)

	require.Len(t, got, len(raws))
	for i, a := range got {
		if i%3 == 0 {
			assert.Equal(t, "No title", a.Title)
			continue
		}
		assert.Equal(t, *raws[i].Title, a.Title, "record %d derives from raw %d", i, i)
	}
}

func TestService_Enrich_Empty(t *testing.T) {
	svc := newService(t, &keywordScorer{})

	got := svc.Enrich(context.Background(), nil)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestService_Enrich_CustomGazetteer(t *testing.T) {
	g, err := enrich.NewGazetteer([]string{"Penang", "Johor"})
	require.NoError(t, err)
	classifier, err := enrich.NewClassifier(&keywordScorer{})
	require.NoError(t, err)
	svc, err := enrich.NewService(g, classifier)
	require.NoError(t, err)

	got := svc.EnrichOne(context.Background(), entity.RawArticle{
		Title: entity.StringPtr("Johor and Penang data centres"),
	})

	assert.Equal(t, []string{"Penang", "Johor"}, got.Countries)
}

func TestNewService_Validation(t *testing.T) {
	classifier, err := enrich.NewClassifier(&keywordScorer{})
	require.NoError(t, err)
	g, err := enrich.NewGazetteer([]string{"Penang"})
	require.NoError(t, err)

	tests := []struct {
		name          string
		gazetteer     *enrich.Gazetteer
		classifier    *enrich.Classifier
		wantErr       error
		wantGazetteer []string
	}{
		{name: "nil classifier", gazetteer: g, classifier: nil, wantErr: enrich.ErrNilClassifier},
		{name: "nil classifier and gazetteer", gazetteer: nil, classifier: nil, wantErr: enrich.ErrNilClassifier},
		{name: "nil gazetteer uses default", gazetteer: nil, classifier: classifier, wantGazetteer: enrich.DefaultPlaceNames()},
		{name: "custom gazetteer", gazetteer: g, classifier: classifier, wantGazetteer: []string{"Penang"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := enrich.NewService(tt.gazetteer, tt.classifier)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, svc)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantGazetteer, svc.Gazetteer.Names())
			assert.NotPanics(t, func() {
				svc.EnrichOne(context.Background(), entity.RawArticle{Title: entity.StringPtr("Penang exports surge")})
			})
		})
	}
}
