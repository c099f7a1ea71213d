// Package providers loads the provider roster: one row per vendor
// endpoint and library, with per-report-type activation flags. The
// classic format is sushiconfig.csv; an .xlsx workbook with the same
// column layout is also accepted since that is how the rosters are
// actually maintained.
package providers

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Column layout of the roster, shared by CSV and XLSX.
const (
	colLibCode = iota
	colName
	colRelease
	colURL
	colRequestorID
	colRequestorName
	colRequestorEmail
	colCustomerID
	colCustomerName
	colFirstReportFlag // columns 9-13 are report-type flags named by the header
	colLastReportFlag  = 13
	colWSUsername      = 14
	colWSPassword      = 15

	minColumns = colLastReportFlag + 1
)

// Provider is one roster row.
type Provider struct {
	LibCode string
	Name    string
	Release string
	URL     string

	RequestorID    string
	RequestorName  string
	RequestorEmail string
	CustomerID     string
	CustomerName   string

	// Reports lists the active report types in header order.
	Reports []string

	WSUsername string
	WSPassword string

	// Line is the source row number, for diagnostics.
	Line int
}

// RowIssue describes a roster row that could not be used.
type RowIssue struct {
	Line   int
	Reason string
}

func (i RowIssue) String() string {
	return fmt.Sprintf("Line %d %s", i.Line, i.Reason)
}

// Load reads a roster from a .csv or .xlsx file.
func Load(path string) ([]Provider, []RowIssue, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return loadXLSX(path)
	default:
		return loadCSV(path)
	}
}

func loadCSV(path string) ([]Provider, []RowIssue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // rows legitimately vary: WS-Security columns are optional
	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read roster: %w", err)
	}
	return fromRows(rows)
}

func loadXLSX(path string) ([]Provider, []RowIssue, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open roster workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("roster workbook has no sheets")
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read roster sheet: %w", err)
	}
	return fromRows(rows)
}

func fromRows(rows [][]string) ([]Provider, []RowIssue, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("roster is empty")
	}
	header := rows[0]
	if len(header) < minColumns {
		return nil, nil, fmt.Errorf("roster header has %d columns, need at least %d", len(header), minColumns)
	}

	var providers []Provider
	var issues []RowIssue

	for i, row := range rows[1:] {
		line := i + 1 // roster line numbers count from the first data row
		if len(row) < minColumns {
			issues = append(issues, RowIssue{Line: line, Reason: "has insufficient data"})
			continue
		}

		p := Provider{
			LibCode:        strings.TrimSpace(row[colLibCode]),
			Name:           strings.TrimSpace(row[colName]),
			Release:        strings.TrimSpace(row[colRelease]),
			URL:            strings.TrimSpace(row[colURL]),
			RequestorID:    strings.TrimSpace(row[colRequestorID]),
			RequestorName:  strings.TrimSpace(row[colRequestorName]),
			RequestorEmail: strings.TrimSpace(row[colRequestorEmail]),
			CustomerID:     strings.TrimSpace(row[colCustomerID]),
			CustomerName:   strings.TrimSpace(row[colCustomerName]),
			Line:           line,
		}

		for col := colFirstReportFlag; col <= colLastReportFlag; col++ {
			if strings.HasPrefix(strings.ToLower(row[col]), "y") {
				p.Reports = append(p.Reports, strings.TrimSpace(header[col]))
			}
		}

		if len(row) > colWSPassword && row[colWSUsername] != "" && row[colWSPassword] != "" {
			p.WSUsername = row[colWSUsername]
			p.WSPassword = row[colWSPassword]
		}

		providers = append(providers, p)
	}

	return providers, issues, nil
}

// Filter keeps only providers whose library code is in the allow-list.
// Codes compare case-insensitively; an empty allow-list keeps everything.
func Filter(all []Provider, libCodes []string) []Provider {
	if len(libCodes) == 0 {
		return all
	}
	allowed := make(map[string]bool, len(libCodes))
	for _, code := range libCodes {
		allowed[strings.ToUpper(strings.TrimSpace(code))] = true
	}

	var out []Provider
	for _, p := range all {
		if allowed[strings.ToUpper(p.LibCode)] {
			out = append(out, p)
		}
	}
	return out
}
