// Package validate applies the COUNTER date and duration business rules to
// a parsed report. Rule violations are diagnostics, never errors: every
// violation is accumulated so one pass surfaces the complete set of
// defects, and the caller decides whether to proceed.
package validate

import (
	"fmt"
	"time"

	"github.com/openlibstats/miso/internal/model"
)

// Result is a validation verdict: the logical AND of every rule outcome
// plus all violation messages in encounter order.
type Result struct {
	Valid    bool
	Messages []string
}

// Check validates the first counter report of a response. A response with
// no report data fails immediately with a single message; otherwise every
// (item, metric) pair is checked against the start-day, end-day, and
// duration rules independently.
func Check(sr *model.SushiReport) Result {
	report := sr.FirstReport()
	if report == nil || len(report.Items) == 0 {
		return Result{Valid: false, Messages: []string{"No Counter Data found."}}
	}

	res := Result{Valid: true}

	for _, item := range report.Items {
		for _, metric := range item.Metrics() {
			if !CheckStartDay(metric.Start) {
				res.fail(fmt.Sprintf(
					"Report Item %q has a metric start date that is not the first day of the month. The start date given was %s.",
					item.Name, shortDate(metric.Start)))
			}

			if !CheckEndDay(metric.End) {
				res.fail(fmt.Sprintf(
					"Report Item %q has a metric end date that is not the last day of the month. The end date given was %s.",
					item.Name, shortDate(metric.End)))
			}

			switch sr.ReportType.Family {
			case model.FamilyJournal, model.FamilyDatabase:
				// Every metric must describe exactly one calendar month.
				if !CheckDuration(metric.Start, metric.End, 0) {
					res.fail(fmt.Sprintf(
						"Report Item %q has a metric duration of more than 1 month. The given dates were from %s to %s.",
						item.Name, shortDate(metric.Start), shortDate(metric.End)))
				}
			}
		}
	}

	return res
}

func (r *Result) fail(msg string) {
	r.Valid = false
	r.Messages = append(r.Messages, msg)
}

// shortDate renders a date without zero padding, e.g. "2023-1-5", matching
// the diagnostic format librarians already grep for.
func shortDate(t time.Time) string {
	return fmt.Sprintf("%d-%d-%d", t.Year(), int(t.Month()), t.Day())
}
