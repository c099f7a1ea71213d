package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openlibstats/miso/internal/exitcode"
	"github.com/openlibstats/miso/internal/export"
	"github.com/openlibstats/miso/internal/logging"
	"github.com/openlibstats/miso/internal/model"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a saved SUSHI response as a Parquet file",
	RunE:  runExport,
}

var exportOut string

func init() {
	f := exportCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Saved SUSHI response XML file")
	f.StringVar(&exportOut, "out", "", "Output Parquet path (default: input name with .parquet)")
	_ = exportCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	sr, err := loadReportFile(cfg.FilePath, log)
	if err != nil {
		log.Error().Err(err).Msg("could not load response")
		os.Exit(exitcode.ParseError)
	}

	rows := model.Flatten(sr)

	out := exportOut
	if out == "" {
		out = strings.TrimSuffix(cfg.FilePath, filepath.Ext(cfg.FilePath)) + ".parquet"
	}

	if err := export.WriteParquet(out, rows); err != nil {
		log.Error().Err(err).Msg("could not write Parquet file")
		os.Exit(exitcode.RenderError)
	}

	log.Info().Str("file", out).Int("rows", len(rows)).Msg("wrote Parquet file")
	return nil
}
