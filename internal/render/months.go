package render

import (
	"strings"
	"time"
)

// monthLabel is the column-label layout for one calendar month, e.g. "Jan-23".
const monthLabel = "Jan-06"

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthEnd returns the last day of t's month.
func MonthEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location())
}

// eachMonth calls fn once per calendar month from start to end inclusive.
// start is expected to be a month-start boundary.
func eachMonth(start, end time.Time, fn func(month time.Time)) {
	for m := start; !m.After(end); m = m.AddDate(0, 1, 0) {
		fn(m)
	}
}

// wrapComma wraps a field in double quotes when it contains a comma.
// Embedded quotes are left untouched; spreadsheet importers accept this
// and the files are column-compatible with the legacy harvester's output.
func wrapComma(s string) string {
	if strings.Contains(s, ",") {
		return "\"" + s + "\""
	}
	return s
}
