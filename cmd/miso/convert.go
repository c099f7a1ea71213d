package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/openlibstats/miso/internal/exitcode"
	"github.com/openlibstats/miso/internal/logging"
	"github.com/openlibstats/miso/internal/model"
	"github.com/openlibstats/miso/internal/render"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a saved SUSHI response into a CSV table",
	RunE:  runConvert,
}

func init() {
	f := convertCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Saved SUSHI response XML file")
	f.StringVar(&cfg.ReportType, "type", "", "Report type to render (JR1, DB1, DB3)")
	f.StringVar(&cfg.StartMonth, "start", "", "First month of the range, YYYYMM (default: previous month)")
	f.StringVar(&cfg.EndMonth, "end", "", "Last month of the range, YYYYMM (default: previous month)")
	f.StringVar(&convertLibCode, "lib-code", "", "Library code for the CSV header")
	f.StringVar(&cfg.OutputDir, "out", ".", "Directory for the generated CSV file")
	_ = convertCmd.MarkFlagRequired("file")
	_ = convertCmd.MarkFlagRequired("type")

	rootCmd.AddCommand(convertCmd)
}

var convertLibCode string

func runConvert(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	rt, err := model.ParseReportType(cfg.ReportType)
	if err != nil {
		log.Error().Err(err).Msg("invalid report type")
		os.Exit(exitcode.UsageError)
	}

	start, end, err := cfg.DateRange(time.Now())
	if err != nil {
		log.Error().Err(err).Msg("invalid date range")
		os.Exit(exitcode.UsageError)
	}
	start = render.MonthStart(start)
	end = render.MonthEnd(end)

	sr, err := loadReportFile(cfg.FilePath, log)
	if err != nil {
		log.Error().Err(err).Msg("could not load response")
		os.Exit(exitcode.ParseError)
	}

	opts := render.Options{LibraryCode: convertLibCode, RunDate: time.Now()}
	csv, err := render.Render(sr, rt, start, end, opts, log)
	if err != nil {
		var uerr *render.UnsupportedReportTypeError
		if errors.As(err, &uerr) {
			fmt.Println(uerr.Error())
		} else {
			log.Error().Err(err).Msg("render failed")
		}
		os.Exit(exitcode.RenderError)
	}

	base := strings.TrimSuffix(filepath.Base(cfg.FilePath), filepath.Ext(cfg.FilePath))
	outPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("%s_%s.csv", base, rt.Name))
	if err := os.WriteFile(outPath, []byte(csv), 0o644); err != nil {
		log.Error().Err(err).Msg("could not write CSV")
		os.Exit(exitcode.RenderError)
	}

	log.Info().Str("file", outPath).Msg("wrote CSV")
	return nil
}
