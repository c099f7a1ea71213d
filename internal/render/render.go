// Package render turns a canonical report plus a requested month range
// into spreadsheet-ready CSV text. Each supported report type has a fixed
// column contract; everything else is reported as unsupported.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/openlibstats/miso/internal/model"
)

// UnsupportedReportTypeError means the renderer has no column layout for
// the requested type. It is reported, not fatal; no file gets produced.
type UnsupportedReportTypeError struct {
	Type string
}

func (e *UnsupportedReportTypeError) Error() string {
	return fmt.Sprintf("Report Type %s currently not supported.", e.Type)
}

// Options carries the per-request rendering context.
type Options struct {
	// LibraryCode appears on the second metadata header line.
	LibraryCode string
	// RunDate appears under the "Date run:" line. Zero means now.
	RunDate time.Time
}

// Render emits the CSV for one report. The month range is inclusive and
// normalized: start snaps to the first day of its month, end to the last
// day of its month.
func Render(sr *model.SushiReport, rt model.ReportType, start, end time.Time, opts Options, log zerolog.Logger) (string, error) {
	if !rt.Renderable() {
		return "", &UnsupportedReportTypeError{Type: rt.Name}
	}

	start = MonthStart(start)
	end = MonthEnd(end)

	runDate := opts.RunDate
	if runDate.IsZero() {
		runDate = time.Now()
	}

	var b strings.Builder
	writeMetaHeader(&b, rt, opts.LibraryCode, runDate)

	switch rt.Name {
	case "JR1":
		writeJR1Header(&b, start, end)
		writeJR1Rows(&b, sr, start, end)
	case "DB1":
		writeDBHeader(&b, start, end, true)
		writeDBRows(&b, sr, start, end, true, log)
	case "DB3":
		writeDBHeader(&b, start, end, false)
		writeDBRows(&b, sr, start, end, false, log)
	default:
		return "", &UnsupportedReportTypeError{Type: rt.Name}
	}

	return b.String(), nil
}

// writeMetaHeader emits the fixed metadata rows shared by every report
// type: title/caption, library code, and the run date.
func writeMetaHeader(b *strings.Builder, rt model.ReportType, libraryCode string, runDate time.Time) {
	fmt.Fprintf(b, "%s,%s\n", rt.Title, rt.Caption)
	fmt.Fprintln(b, libraryCode)
	fmt.Fprintln(b, "Date run:")
	fmt.Fprintf(b, "%d-%d-%d\n", runDate.Year(), int(runDate.Month()), runDate.Day())
}
