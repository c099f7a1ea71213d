package model

import (
	"errors"
	"testing"
)

func TestParseReportType_CaseInsensitive(t *testing.T) {
	for _, name := range []string{"JR1", "jr1", "Jr1"} {
		rt, err := ParseReportType(name)
		if err != nil {
			t.Fatalf("ParseReportType(%q): %v", name, err)
		}
		if rt.Name != "JR1" {
			t.Errorf("ParseReportType(%q): got %q", name, rt.Name)
		}
	}
}

func TestParseReportType_Unknown(t *testing.T) {
	_, err := ParseReportType("BR1")
	if err == nil {
		t.Fatal("expected error for unknown report type")
	}
	var enumErr *EnumError
	if !errors.As(err, &enumErr) {
		t.Fatalf("expected EnumError, got %T", err)
	}
	if enumErr.Value != "BR1" {
		t.Errorf("unexpected value in error: %q", enumErr.Value)
	}
}

func TestRenderable(t *testing.T) {
	renderable := map[string]bool{
		"JR1": true, "DB1": true, "DB3": true,
		"JR2": false, "JR3": false, "JR4": false, "JR5": false, "DB2": false,
	}
	for _, rt := range AllReportTypes {
		if rt.Renderable() != renderable[rt.Name] {
			t.Errorf("%s: Renderable=%v, want %v", rt.Name, rt.Renderable(), renderable[rt.Name])
		}
	}
}

func TestFamilies(t *testing.T) {
	for _, rt := range AllReportTypes {
		isJournal := rt.Name[0] == 'J'
		if rt.IsJournal() != isJournal {
			t.Errorf("%s: IsJournal=%v", rt.Name, rt.IsJournal())
		}
	}
}

func TestParseMetricCategory_Downgrade(t *testing.T) {
	cat, ok := ParseMetricCategory("Searches")
	if !ok || cat != CategorySearches {
		t.Fatalf("got %s, %v", cat, ok)
	}
	cat, ok = ParseMetricCategory("Regressions")
	if ok {
		t.Fatal("expected ok=false for unknown category")
	}
	if cat != CategoryInvalid {
		t.Errorf("unknown category should map to Invalid, got %s", cat)
	}
}

func TestParseMetricType(t *testing.T) {
	mt, err := ParseMetricType("FT_Total")
	if err != nil || mt != MetricFTTotal {
		t.Fatalf("got %s, %v", mt, err)
	}
	if _, err := ParseMetricType("bogus"); err == nil {
		t.Fatal("expected error for unknown metric type")
	}
}
