package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openlibstats/miso/internal/exitcode"
	"github.com/openlibstats/miso/internal/logging"
	"github.com/openlibstats/miso/internal/sushi"
	"github.com/openlibstats/miso/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a saved SUSHI response for well-formedness and business rules",
	RunE:  runValidate,
}

func init() {
	f := validateCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Saved SUSHI response XML file")
	f.BoolVar(&cfg.Strict, "strict", false, "Also apply COUNTER business rules")
	_ = validateCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := cfg.ValidateFile(); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(exitcode.UsageError)
	}

	fh, err := os.Open(cfg.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("could not open file")
		os.Exit(exitcode.ParseError)
	}
	wellFormed := sushi.ReadThrough(fh, func(err error) {
		fmt.Println(err.Error())
	})
	fh.Close()

	if !wellFormed {
		fmt.Println("Document is invalid")
		os.Exit(exitcode.ValidationError)
	}

	if cfg.Strict {
		sr, err := loadReportFile(cfg.FilePath, log)
		if err != nil {
			fmt.Println(err.Error())
			fmt.Println("Document is invalid")
			os.Exit(exitcode.ValidationError)
		}
		res := validate.Check(sr)
		for _, msg := range res.Messages {
			fmt.Println(msg)
		}
		if !res.Valid {
			fmt.Println("Document is invalid")
			os.Exit(exitcode.ValidationError)
		}
	}

	fmt.Println("Document is valid")
	return nil
}
