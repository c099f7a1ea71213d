// mkfixture generates a synthetic SUSHI response for use as a test fixture.
// Usage: go run ./cmd/mkfixture --type JR1 --items 3 --start 201501 --end 201503 --out testdata/jr1_response.xml
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/openlibstats/miso/internal/model"
	"github.com/openlibstats/miso/internal/render"
)

func main() {
	reportType := flag.String("type", "JR1", "report type (JR1, DB1, DB3)")
	items := flag.Int("items", 3, "number of report items")
	start := flag.String("start", "201501", "first month, YYYYMM")
	end := flag.String("end", "201503", "last month, YYYYMM")
	out := flag.String("out", "", "output file (default: stdout)")
	flag.Parse()

	rt, err := model.ParseReportType(*reportType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad report type: %v\n", err)
		os.Exit(1)
	}
	startT, err := time.Parse("200601", *start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad start month: %v\n", err)
		os.Exit(1)
	}
	endT, err := time.Parse("200601", *end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad end month: %v\n", err)
		os.Exit(1)
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	b.WriteString(`<s:Envelope xmlns:s="http://schemas.xmlsoap.org/soap/envelope/"><s:Body>` + "\n")
	b.WriteString(`<ReportResponse xmlns="http://www.niso.org/schemas/sushi">` + "\n")
	b.WriteString(`<ReportDefinition Name="` + rt.Name + `" Release="3"/>` + "\n")
	b.WriteString(`<Report xmlns="http://www.niso.org/schemas/counter" ID="fixture" Name="` + rt.Name + `" Title="` + rt.Title + `" Version="3" Created="2015-04-01T00:00:00Z">` + "\n")
	b.WriteString(`<Vendor><Name>Fixture Vendor</Name></Vendor>` + "\n")
	b.WriteString(`<Customer><ID>fixture-customer</ID><Name>Fixture Library</Name>` + "\n")

	for i := 1; i <= *items; i++ {
		writeItem(&b, rt, i, startT, endT)
	}

	b.WriteString(`</Customer></Report></ReportResponse></s:Body></s:Envelope>` + "\n")

	if *out == "" {
		fmt.Print(b.String())
		return
	}
	if err := os.WriteFile(*out, []byte(b.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d items, %s..%s)\n", *out, *items, *start, *end)
}

func writeItem(b *strings.Builder, rt model.ReportType, n int, start, end time.Time) {
	b.WriteString(`<ReportItems>` + "\n")
	if rt.IsJournal() {
		fmt.Fprintf(b, "<ItemName>Journal %d</ItemName>\n", n)
		fmt.Fprintf(b, "<ItemIdentifier><Type>Print_ISSN</Type><Value>%04d-5678</Value></ItemIdentifier>\n", n)
		fmt.Fprintf(b, "<ItemIdentifier><Type>Online_ISSN</Type><Value>%04d-5679</Value></ItemIdentifier>\n", n)
	} else {
		fmt.Fprintf(b, "<ItemName>Database %d</ItemName>\n", n)
	}
	b.WriteString(`<ItemPublisher>Fixture Publisher</ItemPublisher>` + "\n")
	b.WriteString(`<ItemPlatform>Fixture Platform</ItemPlatform>` + "\n")

	for m := render.MonthStart(start); !m.After(end); m = m.AddDate(0, 1, 0) {
		first, last := render.MonthStart(m), render.MonthEnd(m)
		if rt.IsJournal() {
			writePerformance(b, first, last, "Requests", map[string]int{
				"ft_total": n * int(m.Month()) * 10,
				"ft_html":  n * int(m.Month()) * 6,
				"ft_pdf":   n * int(m.Month()) * 4,
			})
		} else {
			writePerformance(b, first, last, "Searches", map[string]int{"count": n * int(m.Month()) * 5})
			writePerformance(b, first, last, "Sessions", map[string]int{"count": n * int(m.Month()) * 2})
		}
	}

	b.WriteString(`</ReportItems>` + "\n")
}

func writePerformance(b *strings.Builder, start, end time.Time, category string, counts map[string]int) {
	fmt.Fprintf(b, "<ItemPerformance><Period><Begin>%s</Begin><End>%s</End></Period><Category>%s</Category>\n",
		start.Format("2006-01-02"), end.Format("2006-01-02"), category)
	// ft_total first so renderers that take the first instance see it
	for _, mt := range []string{"ft_total", "ft_html", "ft_pdf", "count"} {
		if v, ok := counts[mt]; ok {
			fmt.Fprintf(b, "<Instance><MetricType>%s</MetricType><Count>%d</Count></Instance>\n", mt, v)
		}
	}
	b.WriteString(`</ItemPerformance>` + "\n")
}
