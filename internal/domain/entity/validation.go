package entity

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// MinArticleCount and MaxArticleCount bound the batch size of a single refresh.
	// 100 is the largest page NewsAPI serves.
	MinArticleCount = 1
	MaxArticleCount = 100

	// maxQueryLength mirrors NewsAPI's limit on the q parameter.
	maxQueryLength = 500
)

var languagePattern = regexp.MustCompile(`^[a-z]{2}$`)

// ValidateQuery validates the user-supplied parameters of a refresh.
// Returns a ValidationError naming the first offending field.
func ValidateQuery(text, language string, count int) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Field: "q", Message: "query is required"}
	}
	if len(text) > maxQueryLength {
		return &ValidationError{
			Field:   "q",
			Message: fmt.Sprintf("query must not exceed %d characters", maxQueryLength),
		}
	}
	if !languagePattern.MatchString(language) {
		return &ValidationError{Field: "language", Message: "language must be a two-letter lowercase code"}
	}
	if count < MinArticleCount || count > MaxArticleCount {
		return &ValidationError{
			Field:   "count",
			Message: fmt.Sprintf("count must be between %d and %d", MinArticleCount, MaxArticleCount),
		}
	}
	return nil
}
