package model

import "strings"

// Report families defined by the COUNTER standard.
const (
	FamilyJournal  = "journal"
	FamilyDatabase = "database"
)

// ReportType describes one of the COUNTER report types carried in a SUSHI
// response. Title and Caption are the first CSV header line for renderable
// types; types with an empty Title have no CSV layout.
type ReportType struct {
	Name    string // e.g. "JR1"
	Family  string // "journal" or "database"
	Title   string // e.g. "Journal Report 1 (R2)"
	Caption string // e.g. "Number of Successful Full-Text Article Requests By Month and Journal"
}

// AllReportTypes lists the supported COUNTER report types in canonical order.
var AllReportTypes = []ReportType{
	{Name: "JR1", Family: FamilyJournal, Title: "Journal Report 1 (R2)", Caption: "Number of Successful Full-Text Article Requests By Month and Journal"},
	{Name: "JR2", Family: FamilyJournal},
	{Name: "JR3", Family: FamilyJournal},
	{Name: "JR4", Family: FamilyJournal},
	{Name: "JR5", Family: FamilyJournal},
	{Name: "DB1", Family: FamilyDatabase, Title: "Database Report 1 (R2)", Caption: "Total Searches and Sessions by Month and Database"},
	{Name: "DB2", Family: FamilyDatabase},
	{Name: "DB3", Family: FamilyDatabase, Title: "Database Report 3 (R2)", Caption: "Total Searches and Sessions by Month and Service"},
}

// ReportTypeNames returns just the names for all report types.
func ReportTypeNames() []string {
	names := make([]string, len(AllReportTypes))
	for i, rt := range AllReportTypes {
		names[i] = rt.Name
	}
	return names
}

// ReportTypeByName returns the ReportType for the given name, or ok=false.
// Lookup is case-insensitive; vendors are not consistent about casing.
func ReportTypeByName(name string) (ReportType, bool) {
	for _, rt := range AllReportTypes {
		if strings.EqualFold(rt.Name, name) {
			return rt, true
		}
	}
	return ReportType{}, false
}

// ParseReportType is ReportTypeByName returning an EnumError for unknown
// values. An unknown report type is fatal: without it there is no way to
// know which columns to emit.
func ParseReportType(name string) (ReportType, error) {
	rt, ok := ReportTypeByName(name)
	if !ok {
		return ReportType{}, &EnumError{Kind: "report type", Value: name}
	}
	return rt, nil
}

// IsJournal reports whether the type belongs to the journal family (JR1-JR5).
func (rt ReportType) IsJournal() bool {
	return rt.Family == FamilyJournal
}

// Renderable reports whether a CSV layout exists for the type.
func (rt ReportType) Renderable() bool {
	return rt.Title != ""
}
