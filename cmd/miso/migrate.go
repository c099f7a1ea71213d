package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/openlibstats/miso/internal/db"
	"github.com/openlibstats/miso/internal/exitcode"
	"github.com/openlibstats/miso/internal/logging"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply archive schema migrations",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := cmd.Context()

	if err := cfg.ValidateDSN(); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("could not connect to database")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	if err := db.ApplyMigrations(ctx, pool, log); err != nil {
		log.Error().Err(err).Msg("migration failed")
		os.Exit(exitcode.DBConnError)
	}

	log.Info().Msg("migrations applied")
	return nil
}
