package model

import "time"

// SushiReport is the root of the canonical model: one parsed SUSHI
// response. Built once by the mapper and read-only afterwards.
type SushiReport struct {
	ReportType     ReportType
	Release        string
	CounterReports []*CounterReport
}

// FirstReport returns the first counter report, or nil when the response
// carried none. Only the first report is meaningfully processed; responses
// with several are a documented first-wins limitation.
func (sr *SushiReport) FirstReport() *CounterReport {
	if len(sr.CounterReports) == 0 {
		return nil
	}
	return sr.CounterReports[0]
}

// VendorInfo is the vendor block of a counter report.
type VendorInfo struct {
	ID           string
	Name         string
	ContactEmail string
	WebSiteURL   string
	LogoURL      string
}

// CustomerInfo is the customer block of a counter report.
type CustomerInfo struct {
	ID             string
	Name           string
	ConsortiumCode string
	ConsortiumName string
}

// CounterReport is one COUNTER report within a SUSHI response.
type CounterReport struct {
	ID      string
	Name    string
	Title   string
	Version string
	Created time.Time

	Vendor   VendorInfo
	Customer CustomerInfo

	Items []*ReportItem
}
