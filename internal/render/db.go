package render

import (
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/openlibstats/miso/internal/model"
)

func writeDBHeader(b *strings.Builder, start, end time.Time, withPublisher bool) {
	if withPublisher {
		b.WriteString(",Publisher,Platform,")
	} else {
		b.WriteString(",Platform,")
	}
	eachMonth(start, end, func(month time.Time) {
		b.WriteString(",")
		b.WriteString(month.Format(monthLabel))
	})
	b.WriteString(",YTD Total\n")
}

// writeDBRows emits two rows per database item, "Searches run" and
// "Sessions", each carrying the count-typed instance for every month in
// range. DB3 is the service-level variant: identity is Platform-only, so
// the Publisher column is omitted.
func writeDBRows(b *strings.Builder, sr *model.SushiReport, start, end time.Time, withPublisher bool, log zerolog.Logger) {
	report := sr.FirstReport()
	if report == nil {
		return
	}

	for _, item := range report.Items {
		monthData := scanMonthData(item, log)

		identity := wrapComma(item.Name)
		if withPublisher {
			identity += "," + wrapComma(item.Publisher)
		}
		identity += "," + wrapComma(item.Platform)

		for _, category := range []struct{ label, key string }{
			{"Searches run", string(model.CategorySearches)},
			{"Sessions", string(model.CategorySessions)},
		} {
			b.WriteString(identity)
			b.WriteString(",")
			b.WriteString(category.label)
			eachMonth(start, end, func(month time.Time) {
				b.WriteString(",")
				b.WriteString(monthData[month.Format(monthLabel)+category.key])
			})
			b.WriteString(",0\n")
		}
	}
}

// scanMonthData builds the (month label, category) lookup table for one
// item from its count-typed instances. Multi-month metrics are silently
// discarded; a duplicate (month, category) entry is logged and ignored,
// never overwritten. The table is local to the item and discarded after
// its rows are written.
func scanMonthData(item *model.ReportItem, log zerolog.Logger) map[string]string {
	monthData := make(map[string]string)

	for _, metric := range item.Metrics() {
		// Month-number comparison like the duration rule: data spanning
		// calendar months is not usable for a per-month column.
		if metric.Start.Month() != metric.End.Month() {
			continue
		}

		key := metric.Start.Format(monthLabel) + string(metric.Category)
		for _, inst := range metric.Instances {
			if inst.Type != model.MetricCount {
				continue
			}
			if _, dup := monthData[key]; dup {
				log.Warn().
					Str("month", metric.Start.Format(monthLabel)).
					Str("category", string(metric.Category)).
					Msg("ignoring duplicate month data")
				continue
			}
			monthData[key] = strconv.Itoa(inst.Count)
		}
	}

	return monthData
}
