package enrich

import (
	"regexp"
	"time"

	"newspulse/internal/domain/entity"
)

const (
	// RawTimestampLayout is the publish timestamp format served by the upstream, e.g. 2024-03-15T09:30:00Z.
	// Month, day, hour, minute and second may drop their leading zero (2024-3-5T9:30:00Z).
	RawTimestampLayout = "2006-1-2T15:4:5Z"

	// DisplayTimestampLayout is the canonical display format, e.g. 2024-03-15 09:30.
	DisplayTimestampLayout = "2006-01-02 15:04"
)

// time.Parse tolerates fractional seconds the layout does not mention; the
// pattern keeps the accepted shape exact.
var rawTimestampPattern = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}T\d{1,2}:\d{1,2}:\d{1,2}Z$`)

// NormalizeTimestamp converts an upstream publish timestamp into display form.
//
//	"2024-03-15T09:30:00Z" -> "2024-03-15 09:30"
//	"2024-3-5T9:30:0Z"     -> "2024-03-05 09:30"
//	"garbage"              -> "garbage"
//	nil or ""              -> "Unknown"
func NormalizeTimestamp(raw *string) string {
	if raw == nil || *raw == "" {
		return entity.UnknownTimestamp
	}
	if !rawTimestampPattern.MatchString(*raw) {
		return *raw
	}
	t, err := time.Parse(RawTimestampLayout, *raw)
	if err != nil {
		return *raw
	}
	return t.Format(DisplayTimestampLayout)
}
