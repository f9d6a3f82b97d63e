// Package scorer provides enrich.PolarityScorer implementations: an offline
// VADER scorer (the default) and LLM-backed scorers for Claude and OpenAI.
package scorer

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"newspulse/internal/usecase/enrich"
)

// Kinds accepted by New.
const (
	KindLexicon = "lexicon"
	KindClaude  = "claude"
	KindOpenAI  = "openai"
)

var (
	// ErrUnparseableScore is returned when a model reply carries no number.
	ErrUnparseableScore = errors.New("scorer reply did not contain a polarity score")

	// ErrScorerUnavailable is returned when the scorer's circuit breaker is open.
	ErrScorerUnavailable = errors.New("scorer temporarily unavailable")

	// ErrUnknownKind is returned by New for an unsupported scorer kind.
	ErrUnknownKind = errors.New("unknown scorer kind")
)

// maxHeadlineChars bounds what is sent to a remote model.
const maxHeadlineChars = 1000

// Settings selects and configures a scorer.
type Settings struct {
	Kind            string
	AnthropicAPIKey string
	OpenAIAPIKey    string
	Timeout         time.Duration
}

// New builds the scorer named by s.Kind. An empty kind selects the VADER lexicon scorer.
func New(s Settings) (enrich.PolarityScorer, error) {
	switch strings.ToLower(strings.TrimSpace(s.Kind)) {
	case "", KindLexicon:
		return NewVader(), nil
	case KindClaude:
		cfg := DefaultClaudeConfig()
		cfg.APIKey = s.AnthropicAPIKey
		if s.Timeout > 0 {
			cfg.Timeout = s.Timeout
		}
		return NewClaude(cfg), nil
	case KindOpenAI:
		cfg := DefaultOpenAIConfig()
		cfg.APIKey = s.OpenAIAPIKey
		if s.Timeout > 0 {
			cfg.Timeout = s.Timeout
		}
		return NewOpenAI(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
	}
}

// buildPrompt asks the model for a single polarity number.
func buildPrompt(headline string) string {
	if r := []rune(headline); len(r) > maxHeadlineChars {
		headline = string(r[:maxHeadlineChars])
	}
	return "Rate the sentiment polarity of the following news headline on a scale from " +
		"-1.0 (very negative) to 1.0 (very positive), where 0 is neutral. " +
		"Reply with the number only.\n\nHeadline: " + headline
}

var numberPattern = regexp.MustCompile(`[-+]?\d*\.?\d+`)

// signNormalizer maps the minus-like signs models emit onto ASCII.
var signNormalizer = strings.NewReplacer(
	"\u2212", "-", // minus sign
	"\u2013", "-", // en dash
	"\uFE63", "-", // small hyphen-minus
	"\uFF0D", "-", // fullwidth hyphen-minus
	"\uFF0B", "+", // fullwidth plus
)

// parseScore extracts the first number from a model reply and clamps it to [-1, 1].
func parseScore(reply string) (float64, error) {
	match := numberPattern.FindString(signNormalizer.Replace(reply))
	if match == "" {
		return 0, fmt.Errorf("%w: %q", ErrUnparseableScore, truncate(reply, 80))
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnparseableScore, err)
	}
	return clamp(v), nil
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
