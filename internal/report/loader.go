// Package report maps raw SUSHI response documents onto the canonical
// model, absorbing the dialect differences between vendor implementations.
package report

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/openlibstats/miso/internal/model"
	"github.com/openlibstats/miso/internal/xmltree"
)

// Namespaces of the SUSHI envelope and the COUNTER payload.
const (
	NamespaceSushi   = "http://www.niso.org/schemas/sushi"
	NamespaceCounter = "http://www.niso.org/schemas/counter"
)

// Load maps a parsed response document onto a SushiReport.
//
// Fatal conditions: a missing ReportDefinition node, an unrecognized
// report type or metric type, and an unparseable count. Everything else
// is tolerated: missing metadata nodes yield empty values, unparseable
// period dates yield the zero date, and unknown categories are downgraded
// to Invalid with a warning.
func Load(doc *xmltree.Node, log zerolog.Logger) (*model.SushiReport, error) {
	def := doc.First(NamespaceSushi, "ReportDefinition")
	if def == nil && doc.Space == NamespaceSushi && doc.Local == "ReportDefinition" {
		def = doc
	}
	if def == nil {
		return nil, &model.StructuralError{Node: "ReportDefinition"}
	}

	name, _ := def.Attr("Name")
	reportType, err := model.ParseReportType(name)
	if err != nil {
		return nil, err
	}

	release, _ := def.Attr("Release")

	sushiReport := &model.SushiReport{
		ReportType: reportType,
		Release:    release,
	}

	reports := doc.All(NamespaceCounter, "Report")
	if len(reports) == 0 {
		// Some vendors flatten ReportItems directly under a platform
		// element with no Report/Customer envelope. Synthesize a single
		// report around whatever items exist.
		itemNodes := doc.All(NamespaceCounter, "ReportItems")
		if len(itemNodes) > 0 {
			counterReport := &model.CounterReport{}
			if err := loadItems(counterReport, reportType, itemNodes, log); err != nil {
				return nil, err
			}
			sushiReport.CounterReports = append(sushiReport.CounterReports, counterReport)
		}
		return sushiReport, nil
	}

	for _, reportNode := range reports {
		counterReport, err := loadReport(reportType, reportNode, log)
		if err != nil {
			return nil, err
		}
		sushiReport.CounterReports = append(sushiReport.CounterReports, counterReport)
	}

	return sushiReport, nil
}

func loadReport(rt model.ReportType, node *xmltree.Node, log zerolog.Logger) (*model.CounterReport, error) {
	counterReport := &model.CounterReport{}

	counterReport.ID = attrOr(node, "ID")
	counterReport.Name = attrOr(node, "Name")
	counterReport.Title = attrOr(node, "Title")
	counterReport.Version = attrOr(node, "Version")
	if created := parseDate(attrOr(node, "Created")); created != nil {
		counterReport.Created = *created
	}

	counterReport.Vendor = model.VendorInfo{
		ID:           node.Path(NamespaceCounter, "Vendor", "ID").Text(),
		Name:         node.Path(NamespaceCounter, "Vendor", "Name").Text(),
		ContactEmail: node.Path(NamespaceCounter, "Vendor", "Contact", "E-mail").Text(),
		WebSiteURL:   node.Path(NamespaceCounter, "Vendor", "WebSiteUrl").Text(),
		LogoURL:      node.Path(NamespaceCounter, "Vendor", "LogoUrl").Text(),
	}
	counterReport.Customer = model.CustomerInfo{
		ID:             node.Path(NamespaceCounter, "Customer", "ID").Text(),
		Name:           node.Path(NamespaceCounter, "Customer", "Name").Text(),
		ConsortiumCode: node.Path(NamespaceCounter, "Customer", "Consortium", "Code").Text(),
		ConsortiumName: node.Path(NamespaceCounter, "Customer", "Consortium", "WellKnownName").Text(),
	}

	var itemNodes []*xmltree.Node
	for _, child := range node.Children {
		if child.Space == NamespaceCounter && child.Local == "Customer" {
			for _, grandchild := range child.Children {
				if grandchild.Space == NamespaceCounter && grandchild.Local == "ReportItems" {
					itemNodes = append(itemNodes, grandchild)
				}
			}
		}
	}
	if len(itemNodes) == 0 {
		// Flattened-dialect fallback within a Report node.
		itemNodes = node.All(NamespaceCounter, "ReportItems")
	}

	if err := loadItems(counterReport, rt, itemNodes, log); err != nil {
		return nil, err
	}
	return counterReport, nil
}

func loadItems(counterReport *model.CounterReport, rt model.ReportType, nodes []*xmltree.Node, log zerolog.Logger) error {
	for _, node := range nodes {
		item, err := loadItem(rt, node, log)
		if err != nil {
			return err
		}
		counterReport.Items = append(counterReport.Items, item)
	}
	return nil
}

func loadItem(rt model.ReportType, node *xmltree.Node, log zerolog.Logger) (*model.ReportItem, error) {
	item := model.NewReportItem()
	item.Name = node.Child(NamespaceCounter, "ItemName").Text()
	item.Publisher = node.Child(NamespaceCounter, "ItemPublisher").Text()
	item.Platform = node.Child(NamespaceCounter, "ItemPlatform").Text()

	if rt.IsJournal() {
		// Journal items carry ISSN identifiers. Identifier types per
		// http://www.niso.org/workrooms/sushi/values/#item; the last
		// matching identifier wins on conflict.
		identity := &model.JournalIdentity{}
		for _, id := range node.Children {
			if id.Space != NamespaceCounter || id.Local != "ItemIdentifier" {
				continue
			}
			value := id.Child(NamespaceCounter, "Value").Text()
			switch strings.ToLower(id.Child(NamespaceCounter, "Type").Text()) {
			case "issn", "print_issn":
				identity.PrintISSN = value
			case "online_issn":
				identity.OnlineISSN = value
			}
		}
		item.Journal = identity
	}

	for _, perf := range node.Children {
		if perf.Space != NamespaceCounter || perf.Local != "ItemPerformance" {
			continue
		}
		if err := loadPerformance(item, perf, log); err != nil {
			return nil, err
		}
	}

	return item, nil
}

func loadPerformance(item *model.ReportItem, perf *xmltree.Node, log zerolog.Logger) error {
	start := dateOrZero(perf.Path(NamespaceCounter, "Period", "Begin").Text())
	end := dateOrZero(perf.Path(NamespaceCounter, "Period", "End").Text())

	categoryText := perf.Child(NamespaceCounter, "Category").Text()
	category, ok := model.ParseMetricCategory(categoryText)
	if !ok {
		log.Warn().
			Str("category", categoryText).
			Str("item", item.Name).
			Msg("unknown metric category, recording as Invalid")
	}

	metric := item.GetMetric(start, end, category)

	for _, inst := range perf.Children {
		if inst.Space != NamespaceCounter || inst.Local != "Instance" {
			continue
		}

		metricType, err := model.ParseMetricType(inst.Child(NamespaceCounter, "MetricType").Text())
		if err != nil {
			return err
		}

		countText := inst.Child(NamespaceCounter, "Count").Text()
		count, err := strconv.Atoi(countText)
		if err != nil {
			return &model.CountError{Value: countText, Err: err}
		}

		metric.Instances = append(metric.Instances, model.MetricInstance{
			Type:  metricType,
			Count: count,
		})
	}

	return nil
}

func attrOr(n *xmltree.Node, name string) string {
	v, _ := n.Attr(name)
	return v
}
