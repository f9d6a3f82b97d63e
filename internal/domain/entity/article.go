// Package entity defines the core domain entities and validation logic for the application.
// It contains the raw and enriched article records exchanged between the fetch,
// enrichment and aggregation layers, along with their validation rules and domain errors.
package entity

import "strings"

// Placeholder values substituted for missing or unusable article fields.
const (
	// DefaultTitle replaces an absent or blank article title.
	DefaultTitle = "No title"

	// DefaultURL replaces an absent or blank article link.
	DefaultURL = "#"

	// UnknownTimestamp replaces an absent or empty publish timestamp.
	UnknownTimestamp = "Unknown"

	// GlobalCountry is the country label used when no gazetteer entry is mentioned.
	// It also covers news that is genuinely global in scope; the two cases are not separated.
	GlobalCountry = "Global"

	// CountrySeparator joins the countries of a record into a single display label.
	CountrySeparator = ", "
)

// RawArticle represents a loosely-structured article as returned by an upstream news source.
// Every field is optional; nil means the upstream omitted the field or sent null.
type RawArticle struct {
	Title       *string
	Description *string
	PublishedAt *string
	URL         *string

	// Source is the upstream publication name, informational only.
	Source string
}

// NormalizedArticle represents an enriched article with every field resolved to a printable value.
// Instances are built once by the enricher and are read-only afterwards.
type NormalizedArticle struct {
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Timestamp string    `json:"timestamp"`
	Countries []string  `json:"countries"`
	Sentiment Sentiment `json:"sentiment"`
}

// CountryLabel returns the countries joined in gazetteer order, e.g. "India, China".
func (a NormalizedArticle) CountryLabel() string {
	if len(a.Countries) == 0 {
		return GlobalCountry
	}
	return strings.Join(a.Countries, CountrySeparator)
}

// ParseCountryLabel splits a joined country label back into its members.
// Blank members are dropped; an empty label yields the Global singleton.
func ParseCountryLabel(label string) []string {
	parts := strings.Split(label, strings.TrimSpace(CountrySeparator))
	countries := make([]string, 0, len(parts))
	for _, p := range parts {
		if c := strings.TrimSpace(p); c != "" {
			countries = append(countries, c)
		}
	}
	if len(countries) == 0 {
		return []string{GlobalCountry}
	}
	return countries
}

// StringPtr returns a pointer to s. It is convenient when building RawArticle literals.
func StringPtr(s string) *string {
	return &s
}
