// Package enrich turns raw upstream articles into normalized records.
// It resolves display timestamps, tags gazetteer country mentions and classifies
// headline sentiment. Every step is total: malformed fields degrade to defaults
// and never surface as errors.
package enrich

import "errors"

// Sentinel errors for enrichment setup. Enrichment itself never fails.
var (
	// ErrEmptyGazetteer indicates that a gazetteer was built without any usable place name.
	ErrEmptyGazetteer = errors.New("gazetteer has no place names")

	// ErrNilScorer indicates that a classifier was built without a polarity scorer.
	ErrNilScorer = errors.New("polarity scorer is required")

	// ErrNilClassifier indicates that a Service was built without a classifier.
	ErrNilClassifier = errors.New("classifier is required")
)
