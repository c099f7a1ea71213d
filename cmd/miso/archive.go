package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/openlibstats/miso/internal/db"
	"github.com/openlibstats/miso/internal/exitcode"
	"github.com/openlibstats/miso/internal/logging"
	"github.com/openlibstats/miso/internal/validate"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Load a saved SUSHI response into the Postgres archive",
	RunE:  runArchive,
}

func init() {
	f := archiveCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Saved SUSHI response XML file")
	_ = archiveCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(archiveCmd)
}

func runArchive(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := cmd.Context()

	if err := cfg.ValidateDSN(); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(exitcode.UsageError)
	}
	if err := cfg.ValidateFile(); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(exitcode.UsageError)
	}

	sr, err := loadReportFile(cfg.FilePath, log)
	if err != nil {
		log.Error().Err(err).Msg("could not load response")
		os.Exit(exitcode.ParseError)
	}

	res := validate.Check(sr)
	for _, msg := range res.Messages {
		log.Warn().Msg(msg)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("could not connect to database")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	result, err := db.ArchiveReport(ctx, pool, log, sr, cfg.FilePath, &res.Valid)
	if err != nil {
		log.Error().Err(err).Msg("archive failed")
		os.Exit(exitcode.DBConnError)
	}

	log.Info().
		Int64("harvest_run_id", result.HarvestRunID).
		Str("harvest_batch_id", result.HarvestBatchID.String()).
		Int64("rows", result.RowsCopied).
		Msg("archived report")
	return nil
}
