package model

import (
	"testing"
	"time"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestGetMetric_Idempotent(t *testing.T) {
	item := NewReportItem()
	a := item.GetMetric(date(2015, 1, 1), date(2015, 1, 31), CategoryRequests)
	b := item.GetMetric(date(2015, 1, 1), date(2015, 1, 31), CategoryRequests)
	if a != b {
		t.Fatal("expected same metric instance for same key")
	}
	if len(item.Metrics()) != 1 {
		t.Fatalf("expected 1 metric, got %d", len(item.Metrics()))
	}
}

func TestGetMetric_KeyIsExactTriple(t *testing.T) {
	item := NewReportItem()
	item.GetMetric(date(2015, 1, 1), date(2015, 1, 31), CategoryRequests)
	item.GetMetric(date(2015, 1, 2), date(2015, 1, 31), CategoryRequests)
	item.GetMetric(date(2015, 1, 1), date(2015, 1, 31), CategorySearches)
	if got := len(item.Metrics()); got != 3 {
		t.Fatalf("expected 3 distinct metrics, got %d", got)
	}
}

func TestMetrics_InsertionOrder(t *testing.T) {
	item := NewReportItem()
	item.GetMetric(date(2015, 3, 1), date(2015, 3, 31), CategorySessions)
	item.GetMetric(date(2015, 1, 1), date(2015, 1, 31), CategorySearches)
	item.GetMetric(date(2015, 2, 1), date(2015, 2, 28), CategoryRequests)
	// re-fetch of an existing key must not reorder
	item.GetMetric(date(2015, 1, 1), date(2015, 1, 31), CategorySearches)

	metrics := item.Metrics()
	want := []MetricCategory{CategorySessions, CategorySearches, CategoryRequests}
	for i, m := range metrics {
		if m.Category != want[i] {
			t.Errorf("metric %d: got category %s, want %s", i, m.Category, want[i])
		}
	}
}

func TestMetricKey_TimeZoneIndependent(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	item := NewReportItem()
	created := item.GetMetric(date(2015, 1, 1), date(2015, 1, 31), CategoryRequests)

	// Same calendar dates expressed in another zone must address the same
	// metric, both through get-or-create and plain lookup.
	local := item.GetMetric(
		time.Date(2015, 1, 1, 0, 0, 0, 0, est),
		time.Date(2015, 1, 31, 0, 0, 0, 0, est),
		CategoryRequests)
	if local != created {
		t.Fatal("same calendar dates in another zone created a second metric")
	}
	found, ok := item.LookupMetric(
		time.Date(2015, 1, 1, 0, 0, 0, 0, est),
		time.Date(2015, 1, 31, 0, 0, 0, 0, est),
		CategoryRequests)
	if !ok || found != created {
		t.Fatal("lookup with non-UTC dates missed the metric")
	}
	if len(item.Metrics()) != 1 {
		t.Fatalf("expected 1 metric, got %d", len(item.Metrics()))
	}
}

func TestGetMetric_ZeroDateStaysZero(t *testing.T) {
	item := NewReportItem()
	m := item.GetMetric(time.Time{}, date(2015, 1, 31), CategoryRequests)
	if !m.Start.IsZero() {
		t.Fatalf("zero start date should survive key normalization, got %s", m.Start)
	}
}

func TestLookupMetric_DoesNotCreate(t *testing.T) {
	item := NewReportItem()
	if _, ok := item.LookupMetric(date(2015, 1, 1), date(2015, 1, 31), CategoryRequests); ok {
		t.Fatal("lookup on empty item should miss")
	}
	if len(item.Metrics()) != 0 {
		t.Fatal("lookup must not create a metric")
	}
}
