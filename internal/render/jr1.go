package render

import (
	"strconv"
	"strings"
	"time"

	"github.com/openlibstats/miso/internal/model"
)

func writeJR1Header(b *strings.Builder, start, end time.Time) {
	b.WriteString(",Publisher,Platform,Print ISSN,Online ISSN")
	eachMonth(start, end, func(month time.Time) {
		b.WriteString(",")
		b.WriteString(month.Format(monthLabel))
	})
	b.WriteString(",YTD Total,YTD HTML,YTD PDF\n")
}

// writeJR1Rows emits one row per journal item: identity columns, then the
// ft_total count of the Requests metric for each month in range (blank,
// not zero, when no matching metric or instance exists). The trailing YTD
// columns are always literal zero; a single report cannot derive a true
// year-to-date aggregate.
func writeJR1Rows(b *strings.Builder, sr *model.SushiReport, start, end time.Time) {
	report := sr.FirstReport()
	if report == nil {
		return
	}

	for _, item := range report.Items {
		var printISSN, onlineISSN string
		if item.Journal != nil {
			printISSN = item.Journal.PrintISSN
			onlineISSN = item.Journal.OnlineISSN
		}

		b.WriteString(wrapComma(item.Name))
		b.WriteString(",")
		b.WriteString(wrapComma(item.Publisher))
		b.WriteString(",")
		b.WriteString(wrapComma(item.Platform))
		b.WriteString(",")
		b.WriteString(printISSN)
		b.WriteString(",")
		b.WriteString(onlineISSN)

		eachMonth(start, end, func(month time.Time) {
			b.WriteString(",")
			metric, ok := item.LookupMetric(MonthStart(month), MonthEnd(month), model.CategoryRequests)
			if !ok {
				return
			}
			for _, inst := range metric.Instances {
				if inst.Type == model.MetricFTTotal {
					b.WriteString(strconv.Itoa(inst.Count))
					return
				}
			}
		})

		b.WriteString(",0,0,0\n")
	}
}
