// Package aggregate computes grouped counts over normalized articles.
// Every function is pure: the same records always give the same result.
package aggregate

import (
	"errors"
	"sort"

	"newspulse/internal/domain/entity"
)

const (
	// DefaultMinMentions suppresses single-mention countries from the cross-tab.
	DefaultMinMentions = 2

	// DefaultTopCountries is the number of countries shown in the country ranking.
	DefaultTopCountries = 10
)

// Mention is one (country, sentiment) pair produced by exploding an article's countries.
type Mention struct {
	Country   string
	Sentiment entity.Sentiment
}

// CountryCount is the number of mentions of one country.
type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// CountrySentimentCount is one cell of the country by sentiment cross-tab.
type CountrySentimentCount struct {
	Country   string           `json:"country"`
	Sentiment entity.Sentiment `json:"sentiment"`
	Count     int              `json:"count"`
}

// Options tunes Build. Zero values select the defaults.
type Options struct {
	// TopCountries limits the country ranking. Negative means no limit.
	TopCountries int
	// MinMentions is the cross-tab threshold.
	MinMentions int
}

func (o Options) withDefaults() Options {
	if o.TopCountries == 0 {
		o.TopCountries = DefaultTopCountries
	}
	if o.MinMentions <= 0 {
		o.MinMentions = DefaultMinMentions
	}
	return o
}

// View is the aggregate summary handed to the presentation layer.
type View struct {
	TotalArticles    int                      `json:"total_articles"`
	Sentiment        map[entity.Sentiment]int `json:"sentiment_counts"`
	Countries        []CountryCount           `json:"country_counts"`
	CountrySentiment []CountrySentimentCount  `json:"country_sentiment"`
	MinMentions      int                      `json:"min_mentions"`

	// InsufficientCountryData is set when articles exist but no country reached
	// MinMentions, so the presentation layer can say so instead of drawing an empty chart.
	InsufficientCountryData bool `json:"insufficient_country_data"`
}

// Build computes every aggregate view over records.
func Build(records []entity.NormalizedArticle, opts Options) View {
	opts = opts.withDefaults()

	crossTab, err := CountrySentiment(records, opts.MinMentions)
	if crossTab == nil {
		crossTab = []CountrySentimentCount{}
	}

	return View{
		TotalArticles:           len(records),
		Sentiment:               SentimentCounts(records),
		Countries:               CountryCounts(records, opts.TopCountries),
		CountrySentiment:        crossTab,
		MinMentions:             opts.MinMentions,
		InsufficientCountryData: errors.Is(err, ErrInsufficientData),
	}
}

// SentimentCounts counts records per sentiment label. All three labels are
// present in the result, so the counts always sum to len(records).
func SentimentCounts(records []entity.NormalizedArticle) map[entity.Sentiment]int {
	counts := make(map[entity.Sentiment]int, 3)
	for _, s := range entity.AllSentiments() {
		counts[s] = 0
	}
	for _, r := range records {
		counts[r.Sentiment]++
	}
	return counts
}

// Mentions explodes the multi-valued countries field: an article naming two
// countries yields two mentions, each carrying the article's sentiment.
// An article with no countries yields a single Global mention.
func Mentions(records []entity.NormalizedArticle) []Mention {
	out := make([]Mention, 0, len(records))
	for _, r := range records {
		countries := r.Countries
		if len(countries) == 0 {
			countries = []string{entity.GlobalCountry}
		}
		for _, c := range countries {
			out = append(out, Mention{Country: c, Sentiment: r.Sentiment})
		}
	}
	return out
}

// CountryCounts totals mentions per country, highest first. Ties keep the order
// in which countries first appear in records. limit <= 0 returns every country.
func CountryCounts(records []entity.NormalizedArticle, limit int) []CountryCount {
	counts := countMentions(Mentions(records))
	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}

// CountrySentiment cross-tabulates country against sentiment for countries with
// at least minMentions mentions. Rows follow the CountryCounts order, then the
// Positive, Neutral, Negative order; zero cells are omitted.
//
// An empty collection returns an empty result and no error. A non-empty
// collection where no country qualifies returns ErrInsufficientData.
func CountrySentiment(records []entity.NormalizedArticle, minMentions int) ([]CountrySentimentCount, error) {
	if len(records) == 0 {
		return []CountrySentimentCount{}, nil
	}
	if minMentions <= 0 {
		minMentions = DefaultMinMentions
	}

	mentions := Mentions(records)

	qualified := make(map[string]bool)
	var order []string
	for _, cc := range countMentions(mentions) {
		if cc.Count >= minMentions {
			qualified[cc.Country] = true
			order = append(order, cc.Country)
		}
	}
	if len(order) == 0 {
		return nil, ErrInsufficientData
	}

	cells := make(map[Mention]int)
	for _, m := range mentions {
		if qualified[m.Country] {
			cells[m]++
		}
	}

	rows := make([]CountrySentimentCount, 0, len(cells))
	for _, country := range order {
		for _, s := range entity.AllSentiments() {
			if n := cells[Mention{Country: country, Sentiment: s}]; n > 0 {
				rows = append(rows, CountrySentimentCount{Country: country, Sentiment: s, Count: n})
			}
		}
	}
	return rows, nil
}

// countMentions groups mentions by country and sorts by descending count.
// The sort is stable over first-appearance order.
func countMentions(mentions []Mention) []CountryCount {
	index := make(map[string]int)
	counts := make([]CountryCount, 0)
	for _, m := range mentions {
		i, ok := index[m.Country]
		if !ok {
			i = len(counts)
			index[m.Country] = i
			counts = append(counts, CountryCount{Country: m.Country})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(a, b int) bool {
		return counts[a].Count > counts[b].Count
	})
	return counts
}
