package gdata

import (
	"strings"
	"time"
)

// Unset is the sentinel for timestamp fields that should be omitted.
const Unset int64 = -1

const (
	iso8601Layout = "2006-01-02T15:04:05Z"
	dateLayout    = "2006-01-02"
)

// iso8601Layouts are tried in order when parsing. Values without a zone are
// taken as UTC.
var iso8601Layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05Z0700",
	"20060102T150405Z",
}

// FormatISO8601 renders Unix seconds as an ISO 8601 UTC timestamp.
func FormatISO8601(t int64) string {
	return time.Unix(t, 0).UTC().Format(iso8601Layout)
}

// ParseISO8601 parses an ISO 8601 timestamp into Unix seconds.
func ParseISO8601(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, layout := range iso8601Layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Unix(), true
		}
	}
	return 0, false
}

// FormatDate renders Unix seconds as a YYYY-MM-DD date in UTC.
func FormatDate(t int64) string {
	return time.Unix(t, 0).UTC().Format(dateLayout)
}

// ParseDate parses a YYYY-MM-DD date into Unix seconds at UTC midnight.
func ParseDate(s string) (int64, bool) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return t.Unix(), true
}

// TimeToUnix converts t to Unix seconds, mapping the zero time to Unset.
func TimeToUnix(t time.Time) int64 {
	if t.IsZero() {
		return Unset
	}
	return t.Unix()
}
