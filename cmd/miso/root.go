package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/openlibstats/miso/internal/config"
	"github.com/openlibstats/miso/internal/exitcode"
	"github.com/openlibstats/miso/internal/model"
	"github.com/openlibstats/miso/internal/report"
	"github.com/openlibstats/miso/internal/sushi"
	"github.com/openlibstats/miso/internal/xmltree"
)

var cfg config.Config
var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "miso",
	Short: "SUSHI/COUNTER usage statistics harvester",
	Long:  "Fetches COUNTER usage reports from library content vendors over SUSHI and converts them into spreadsheet-ready CSV tables.",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("MISO_DB_URL"), "Postgres connection string for the archive (or set MISO_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&cfgFile, "config", "", "Optional YAML config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitcode.UsageError)
	}
}

// mergeConfig folds the optional YAML config into cfg and resolves
// report-type defaults.
func mergeConfig() error {
	if cfgFile != "" {
		return cfg.LoadFromFile(cfgFile)
	}
	return cfg.ValidateReportTypes()
}

// loadReportFile parses a saved response file into the canonical model,
// surfacing any protocol exception the response carries.
func loadReportFile(path string, log zerolog.Logger) (*model.SushiReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read response file: %w", err)
	}

	doc, err := xmltree.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if err := sushi.DetectException(doc); err != nil {
		return nil, err
	}

	return report.Load(doc, log)
}
