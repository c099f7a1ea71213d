package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/openlibstats/miso/internal/exitcode"
	"github.com/openlibstats/miso/internal/harvest"
	"github.com/openlibstats/miso/internal/logging"
	"github.com/openlibstats/miso/internal/sushi"
)

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Fetch usage reports for every provider in the roster",
	RunE:  runHarvest,
}

func init() {
	f := harvestCmd.Flags()
	f.StringVar(&cfg.RosterPath, "roster", "sushiconfig.csv", "Provider roster file (.csv or .xlsx)")
	f.StringVar(&cfg.OutputDir, "out", ".", "Directory for generated CSV files")
	f.StringVar(&cfg.StartMonth, "start", "", "First month of the range, YYYYMM (default: previous month)")
	f.StringVar(&cfg.EndMonth, "end", "", "Last month of the range, YYYYMM (default: previous month)")
	f.StringSliceVar(&cfg.LibCodes, "lib", nil, "Restrict the run to these library codes")
	f.StringSliceVar(&cfg.ReportTypes, "type", nil, "Restrict the run to these report types")
	f.BoolVar(&cfg.SaveXML, "save-xml", false, "Save the raw SUSHI response next to each CSV")
	f.BoolVar(&cfg.Strict, "strict", false, "Run business-rule validation on each response")
	f.StringVar(&cfg.EnvelopeTemplate, "envelope-template", "", "Override the built-in SOAP envelope template")
	f.StringVar(&cfg.WSSecurityTemplate, "wssecurity-template", "", "Override the built-in WS-Security template")

	rootCmd.AddCommand(harvestCmd)
}

func runHarvest(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := mergeConfig(); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(exitcode.UsageError)
	}
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(exitcode.UsageError)
	}

	client := sushi.NewClient(log)
	h, err := harvest.New(&cfg, log, client)
	if err != nil {
		log.Error().Err(err).Msg("harvest setup failed")
		os.Exit(exitcode.UsageError)
	}

	summary, err := h.Run(cmd.Context())
	if err != nil {
		var perr *harvest.PipelineError
		if errors.As(err, &perr) {
			log.Error().Str("phase", perr.Phase).Err(perr.Err).Msg("harvest failed")
			switch perr.Phase {
			case "dates", "setup":
				os.Exit(exitcode.UsageError)
			case "roster":
				os.Exit(exitcode.ParseError)
			}
		} else {
			log.Error().Err(err).Msg("harvest failed")
		}
		os.Exit(exitcode.TransportError)
	}

	fmt.Printf("Harvest complete: %d providers, %d requests, %d files written, %d skipped, %d failed (%s)\n",
		summary.ProvidersRead, summary.RequestsSent, summary.FilesWritten,
		summary.Skipped, summary.Failed, summary.Duration.Round(time.Millisecond))

	if summary.Failed > 0 {
		os.Exit(exitcode.PartialSuccess)
	}
	return nil
}
