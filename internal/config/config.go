package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/openlibstats/miso/internal/model"
)

// Config holds all runtime configuration for a miso run.
type Config struct {
	RosterPath string // provider roster (sushiconfig.csv or .xlsx)
	OutputDir  string // where CSV/XML output files land
	DSN        string
	LogFormat  string // "text" or "json"

	StartMonth string // yyyymm; empty means previous calendar month
	EndMonth   string // yyyymm; empty means previous calendar month
	LibCodes   []string

	SaveXML bool // save raw responses instead of converting
	Strict  bool // run business-rule validation and print the verdict

	FilePath   string // input file for convert/validate/archive/export
	ReportType string // requested report type for convert

	EnvelopeTemplate   string
	WSSecurityTemplate string

	ReportTypes []string `yaml:"report_types"` // subset of renderable types to harvest
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	Roster             string   `yaml:"roster"`
	OutputDir          string   `yaml:"output_dir"`
	EnvelopeTemplate   string   `yaml:"envelope_template"`
	WSSecurityTemplate string   `yaml:"wssecurity_template"`
	ReportTypes        []string `yaml:"report_types"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
// Flag values already set win over file values.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if c.RosterPath == "" {
		c.RosterPath = yc.Roster
	}
	if c.OutputDir == "" {
		c.OutputDir = yc.OutputDir
	}
	if c.EnvelopeTemplate == "" {
		c.EnvelopeTemplate = yc.EnvelopeTemplate
	}
	if c.WSSecurityTemplate == "" {
		c.WSSecurityTemplate = yc.WSSecurityTemplate
	}
	if len(c.ReportTypes) == 0 {
		c.ReportTypes = yc.ReportTypes
	}
	return c.ValidateReportTypes()
}

// ValidateReportTypes checks that every entry is a known report type
// name. If ReportTypes is empty, it defaults to all known types; types
// without a CSV layout are still requested and reported as unsupported at
// render time, matching the roster-driven behavior sites rely on.
func (c *Config) ValidateReportTypes() error {
	if len(c.ReportTypes) == 0 {
		c.ReportTypes = model.ReportTypeNames()
		return nil
	}
	for _, name := range c.ReportTypes {
		if _, ok := model.ReportTypeByName(name); !ok {
			return fmt.Errorf("unknown report type %q in config", name)
		}
	}
	return nil
}

// HarvestsType reports whether the given report type is in the configured
// harvest subset.
func (c *Config) HarvestsType(name string) bool {
	for _, n := range c.ReportTypes {
		if n == name {
			return true
		}
	}
	return false
}

// DateRange resolves the requested month range. Both ends default to the
// previous calendar month; the range is then normalized to month
// boundaries by the renderer.
func (c *Config) DateRange(now time.Time) (start, end time.Time, err error) {
	// First of the previous month. AddDate(0, -1, 0) would normalize
	// through nonexistent dates (Mar 31 - 1 month = Mar 3) and land in the
	// wrong month at month ends.
	start = time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, time.UTC)
	end = start

	if c.StartMonth != "" {
		start, err = time.Parse("200601", c.StartMonth)
		if err != nil {
			return start, end, fmt.Errorf("parse start month %q: %w", c.StartMonth, err)
		}
	}
	if c.EndMonth != "" {
		end, err = time.Parse("200601", c.EndMonth)
		if err != nil {
			return start, end, fmt.Errorf("parse end month %q: %w", c.EndMonth, err)
		}
	}

	if end.Year() < start.Year() || (end.Year() == start.Year() && end.Month() < start.Month()) {
		return start, end, fmt.Errorf("end date is before start date")
	}
	return start, end, nil
}

// Validate checks required fields for a harvest run.
func (c *Config) Validate() error {
	if c.RosterPath == "" {
		return fmt.Errorf("--roster is required")
	}
	if _, err := os.Stat(c.RosterPath); err != nil {
		return fmt.Errorf("roster not accessible: %w", err)
	}
	return nil
}

// ValidateFile checks required fields for file-based commands.
func (c *Config) ValidateFile() error {
	if c.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.FilePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	return nil
}

// ValidateDSN checks that a database connection string was supplied.
func (c *Config) ValidateDSN() error {
	if c.DSN == "" {
		return fmt.Errorf("--dsn or MISO_DB_URL is required")
	}
	return nil
}
