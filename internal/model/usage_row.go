package model

import (
	"time"

	"github.com/google/uuid"
)

// UsageRow is the flattened, export-ready representation of a single
// counted instance: one row per (item, metric, instance). It backs both
// the Parquet exporter and the Postgres archive COPY.
type UsageRow struct {
	// Archive identity, populated by the store. Excluded from Parquet.
	HarvestBatchID uuid.UUID `parquet:"-"`
	HarvestRunID   int64     `parquet:"-"`

	ReportType string `parquet:"report_type,dict"`
	Release    string `parquet:"release,dict"`

	ItemName   string  `parquet:"item_name"`
	Publisher  string  `parquet:"publisher"`
	Platform   string  `parquet:"platform"`
	PrintISSN  *string `parquet:"print_issn,optional"`
	OnlineISSN *string `parquet:"online_issn,optional"`

	Category    string    `parquet:"category,dict"`
	MetricType  string    `parquet:"metric_type,dict"`
	PeriodBegin time.Time `parquet:"period_begin,timestamp"`
	PeriodEnd   time.Time `parquet:"period_end,timestamp"`
	Count       int64     `parquet:"count"`
}

// UsageColumns returns the archive table column names in COPY order.
func UsageColumns() []string {
	return []string{
		"harvest_batch_id", "harvest_run_id",
		"report_type", "release",
		"item_name", "publisher", "platform", "print_issn", "online_issn",
		"category", "metric_type", "period_begin", "period_end", "count",
	}
}

// CopyValues returns the row's values in COPY column order.
func (r *UsageRow) CopyValues() []any {
	return []any{
		r.HarvestBatchID, r.HarvestRunID,
		r.ReportType, r.Release,
		r.ItemName, r.Publisher, r.Platform, r.PrintISSN, r.OnlineISSN,
		r.Category, r.MetricType, r.PeriodBegin, r.PeriodEnd, r.Count,
	}
}

// Flatten expands the first counter report of a parsed response into usage
// rows, preserving item and metric encounter order.
func Flatten(sr *SushiReport) []UsageRow {
	report := sr.FirstReport()
	if report == nil {
		return nil
	}

	var rows []UsageRow
	for _, item := range report.Items {
		var printISSN, onlineISSN *string
		if item.Journal != nil {
			printISSN = optStr(item.Journal.PrintISSN)
			onlineISSN = optStr(item.Journal.OnlineISSN)
		}
		for _, metric := range item.Metrics() {
			for _, inst := range metric.Instances {
				rows = append(rows, UsageRow{
					ReportType:  sr.ReportType.Name,
					Release:     sr.Release,
					ItemName:    item.Name,
					Publisher:   item.Publisher,
					Platform:    item.Platform,
					PrintISSN:   printISSN,
					OnlineISSN:  onlineISSN,
					Category:    string(metric.Category),
					MetricType:  string(inst.Type),
					PeriodBegin: metric.Start,
					PeriodEnd:   metric.End,
					Count:       int64(inst.Count),
				})
			}
		}
	}
	return rows
}

func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
