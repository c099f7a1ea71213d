package report

import (
	"strings"
	"time"
)

// Date formats observed in vendor responses. The schema calls for
// xs:date, but vendors ship timestamps and slash dates too.
var dateFormats = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// parseDate attempts to parse a date string in multiple common formats.
// Returns nil if the input is empty or unparseable.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return &t
		}
	}
	return nil
}

// dateOrZero is the lenient period-date parse: an unparseable date maps to
// the zero date rather than failing the load. The validator surfaces the
// resulting out-of-range periods as rule violations.
func dateOrZero(s string) time.Time {
	if t := parseDate(s); t != nil {
		return *t
	}
	return time.Time{}
}
