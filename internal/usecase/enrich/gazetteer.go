package enrich

import (
	"fmt"
	"regexp"
	"strings"

	"newspulse/internal/domain/entity"
)

// defaultPlaceNames is the gazetteer used when no custom list is configured.
var defaultPlaceNames = []string{
	"India", "USA", "China", "Japan", "Germany", "UK", "France",
	"South Korea", "Taiwan", "Malaysia", "Vietnam", "Singapore",
	"Thailand", "Indonesia", "Philippines", "Europe", "Tamil Nadu",
}

// DefaultPlaceNames returns a copy of the built-in gazetteer in match order.
func DefaultPlaceNames() []string {
	names := make([]string, len(defaultPlaceNames))
	copy(names, defaultPlaceNames)
	return names
}

// RE2's \b only knows ASCII word characters, so boundaries are spelled out
// with Unicode letter and digit classes.
const (
	wordStart = `(?:^|[^\p{L}\p{N}_])`
	wordEnd   = `(?:[^\p{L}\p{N}_]|$)`
)

// place pairs a gazetteer name with its compiled whole-word pattern.
type place struct {
	name    string
	pattern *regexp.Regexp
}

// Gazetteer is a fixed, ordered list of place names matched against free text.
// It is immutable after construction and safe for concurrent use.
type Gazetteer struct {
	places []place
}

// NewGazetteer compiles one case-insensitive whole-word pattern per name.
// Names are trimmed; blanks and case-insensitive duplicates are dropped, keeping
// the first occurrence so the gazetteer order stays stable.
func NewGazetteer(names []string) (*Gazetteer, error) {
	seen := make(map[string]struct{}, len(names))
	places := make([]place, 0, len(names))

	for _, n := range names {
		name := strings.TrimSpace(n)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		pattern, err := regexp.Compile(`(?i)` + wordStart + regexp.QuoteMeta(name) + wordEnd)
		if err != nil {
			return nil, fmt.Errorf("compile pattern for %q: %w", name, err)
		}
		places = append(places, place{name: name, pattern: pattern})
	}

	if len(places) == 0 {
		return nil, ErrEmptyGazetteer
	}
	return &Gazetteer{places: places}, nil
}

// DefaultGazetteer returns a gazetteer built from DefaultPlaceNames.
func DefaultGazetteer() *Gazetteer {
	g, err := NewGazetteer(defaultPlaceNames)
	if err != nil {
		panic(fmt.Sprintf("default gazetteer: %v", err))
	}
	return g
}

// Names returns the place names in gazetteer order.
func (g *Gazetteer) Names() []string {
	names := make([]string, len(g.places))
	for i, p := range g.places {
		names[i] = p.name
	}
	return names
}

// Extract returns every place mentioned in text, in gazetteer order.
// When nothing matches it returns the Global singleton, so the result is never empty.
func (g *Gazetteer) Extract(text string) []string {
	var found []string
	for _, p := range g.places {
		if p.pattern.MatchString(text) {
			found = append(found, p.name)
		}
	}
	if len(found) == 0 {
		return []string{entity.GlobalCountry}
	}
	return found
}

// Label is Extract joined into the display form, e.g. "India, China" or "Global".
func (g *Gazetteer) Label(text string) string {
	return strings.Join(g.Extract(text), entity.CountrySeparator)
}
