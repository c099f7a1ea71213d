package model

import "time"

// MetricKey is the composite identity of a metric within a report item.
// Exact triple equality, not overlap: two period pairs that differ by a
// day are two keys. Start and End are normalized to UTC calendar dates so
// that lookups hit regardless of the caller's time zone.
type MetricKey struct {
	Start    time.Time
	End      time.Time
	Category MetricCategory
}

// keyDate strips a time down to its calendar date in UTC. Periods are
// dates, not instants; map equality on time.Time compares wall clock and
// location, so unnormalized keys from different zones would never match.
func keyDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// JournalIdentity carries the journal-specific identifiers. It is present
// only on items belonging to a journal-family report (JR1-JR5).
type JournalIdentity struct {
	PrintISSN  string
	OnlineISSN string
}

// ReportItem is one usage-bearing entity within a report: a journal title,
// a database, or a service-level aggregate.
type ReportItem struct {
	Name      string
	Publisher string
	Platform  string

	// Journal is nil for non-journal report families.
	Journal *JournalIdentity

	metrics map[MetricKey]*Metric
	order   []MetricKey
}

// NewReportItem returns an item with an empty metric map.
func NewReportItem() *ReportItem {
	return &ReportItem{metrics: make(map[MetricKey]*Metric)}
}

// GetMetric returns the metric for the given key, creating and storing an
// empty one first if absent. Repeated calls with the same key return the
// same instance.
func (it *ReportItem) GetMetric(start, end time.Time, category MetricCategory) *Metric {
	key := MetricKey{Start: keyDate(start), End: keyDate(end), Category: category}
	m, ok := it.metrics[key]
	if !ok {
		m = &Metric{Category: category, Start: key.Start, End: key.End}
		it.metrics[key] = m
		it.order = append(it.order, key)
	}
	return m
}

// LookupMetric returns the metric for the given key without creating one.
func (it *ReportItem) LookupMetric(start, end time.Time, category MetricCategory) (*Metric, bool) {
	m, ok := it.metrics[MetricKey{Start: keyDate(start), End: keyDate(end), Category: category}]
	return m, ok
}

// Metrics returns the item's metrics in the order their keys were first seen.
func (it *ReportItem) Metrics() []*Metric {
	out := make([]*Metric, len(it.order))
	for i, key := range it.order {
		out[i] = it.metrics[key]
	}
	return out
}
