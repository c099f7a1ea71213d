package model

import (
	"strings"
	"time"
)

// MetricCategory classifies what a metric measures.
type MetricCategory string

const (
	CategoryRequests  MetricCategory = "Requests"
	CategorySearches  MetricCategory = "Searches"
	CategorySessions  MetricCategory = "Sessions"
	CategoryTurnaways MetricCategory = "Turnaways"

	// CategoryInvalid is the recoverable fallback for category values we
	// don't recognize. An unknown category never fails the load; the
	// surrounding metric data is still worth keeping.
	CategoryInvalid MetricCategory = "Invalid"
)

var allCategories = []MetricCategory{
	CategoryRequests, CategorySearches, CategorySessions, CategoryTurnaways,
}

// ParseMetricCategory parses a category value case-insensitively.
// ok=false means the caller should downgrade to CategoryInvalid.
func ParseMetricCategory(s string) (MetricCategory, bool) {
	for _, c := range allCategories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return CategoryInvalid, false
}

// MetricType identifies the flavor of usage being counted, using the
// value names from the COUNTER schema.
type MetricType string

const (
	MetricFTPS       MetricType = "ft_ps"
	MetricFTPDF      MetricType = "ft_pdf"
	MetricFTHTML     MetricType = "ft_html"
	MetricFTTotal    MetricType = "ft_total"
	MetricTOC        MetricType = "toc"
	MetricAbstract   MetricType = "abstract"
	MetricReference  MetricType = "reference"
	MetricDataSet    MetricType = "data_set"
	MetricAudio      MetricType = "audio"
	MetricVideo      MetricType = "video"
	MetricImage      MetricType = "image"
	MetricPodcast    MetricType = "podcast"
	MetricSearchReg  MetricType = "search_reg"
	MetricSearchFed  MetricType = "search_fed"
	MetricSessionReg MetricType = "session_reg"
	MetricSessionFed MetricType = "session_fed"
	MetricCount      MetricType = "count"
	MetricOther      MetricType = "other"
)

var allMetricTypes = []MetricType{
	MetricFTPS, MetricFTPDF, MetricFTHTML, MetricFTTotal,
	MetricTOC, MetricAbstract, MetricReference, MetricDataSet,
	MetricAudio, MetricVideo, MetricImage, MetricPodcast,
	MetricSearchReg, MetricSearchFed, MetricSessionReg, MetricSessionFed,
	MetricCount, MetricOther,
}

// ParseMetricType parses a metric type value case-insensitively, returning
// an EnumError for unknown values.
func ParseMetricType(s string) (MetricType, error) {
	for _, m := range allMetricTypes {
		if strings.EqualFold(string(m), s) {
			return m, nil
		}
	}
	return "", &EnumError{Kind: "metric type", Value: s}
}

// MetricInstance is one counted usage figure within a metric.
type MetricInstance struct {
	Type  MetricType
	Count int
}

// Metric holds all counted instances for one (period, category) of a
// report item. Start and End are calendar-month boundaries in well-formed
// data; the mapper does not enforce that (the validator does).
type Metric struct {
	Category  MetricCategory
	Start     time.Time
	End       time.Time
	Instances []MetricInstance
}
