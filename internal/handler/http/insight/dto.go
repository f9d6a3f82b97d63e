// Package insight provides the HTTP handler that runs one pipeline refresh
// and returns the enriched articles with their aggregates.
package insight

import (
	"time"

	"newspulse/internal/domain/entity"
	"newspulse/internal/usecase/aggregate"
	fetchUC "newspulse/internal/usecase/fetch"
)

// DTO is the JSON body of a successful refresh.
type DTO struct {
	ID        string         `json:"id" example:"6f1c1c4e-8d1e-4f4e-9a57-0f7c3b7b2a10"`
	Provider  string         `json:"provider" example:"newsapi"`
	Query     QueryDTO       `json:"query"`
	FetchedAt time.Time      `json:"fetched_at" example:"2024-03-15T09:30:00Z"`
	Articles  []ArticleDTO   `json:"articles"`
	Summary   aggregate.View `json:"summary"`
}

// QueryDTO echoes the effective query after defaults.
type QueryDTO struct {
	Q        string `json:"q" example:"semiconductors"`
	Language string `json:"language" example:"en"`
	Count    int    `json:"count" example:"20"`
}

// ArticleDTO is one enriched article.
type ArticleDTO struct {
	Title     string   `json:"title" example:"India and China expand chip output"`
	URL       string   `json:"url" example:"https://example.com/article/1"`
	Timestamp string   `json:"timestamp" example:"2024-03-15 09:30"`
	Country   string   `json:"country" example:"India, China"`
	Countries []string `json:"countries"`
	Sentiment string   `json:"sentiment" example:"Positive"`
}

// NewDTO converts a pipeline report to its JSON representation.
func NewDTO(r *fetchUC.Report) DTO {
	articles := make([]ArticleDTO, 0, len(r.Articles))
	for _, a := range r.Articles {
		articles = append(articles, newArticleDTO(a))
	}
	return DTO{
		ID:       r.ID,
		Provider: r.Provider,
		Query: QueryDTO{
			Q:        r.Query.Text,
			Language: r.Query.Language,
			Count:    r.Query.Count,
		},
		FetchedAt: r.FetchedAt,
		Articles:  articles,
		Summary:   r.View,
	}
}

func newArticleDTO(a entity.NormalizedArticle) ArticleDTO {
	return ArticleDTO{
		Title:     a.Title,
		URL:       a.URL,
		Timestamp: a.Timestamp,
		Country:   a.CountryLabel(),
		Countries: a.Countries,
		Sentiment: a.Sentiment.String(),
	}
}
