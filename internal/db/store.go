package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/openlibstats/miso/internal/model"
	embedsql "github.com/openlibstats/miso/internal/sql"
)

// ArchiveResult describes one archived report.
type ArchiveResult struct {
	HarvestRunID   int64
	HarvestBatchID uuid.UUID
	RowsCopied     int64
}

// ArchiveReport registers a harvest run and bulk-loads the flattened
// usage rows via COPY. valid is the business-rule verdict when one was
// computed, nil otherwise.
func ArchiveReport(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, sr *model.SushiReport, sourceFile string, valid *bool) (*ArchiveResult, error) {
	batchID := uuid.New()

	var vendorName, customerID string
	var itemCount int
	if report := sr.FirstReport(); report != nil {
		vendorName = report.Vendor.Name
		customerID = report.Customer.ID
		itemCount = len(report.Items)
	}

	var runID int64
	err := pool.QueryRow(ctx, embedsql.RegisterHarvestRun,
		batchID, sourceFile, sr.ReportType.Name, sr.Release,
		vendorName, customerID, itemCount, valid,
	).Scan(&runID)
	if err != nil {
		return nil, fmt.Errorf("register harvest run: %w", err)
	}

	rows := model.Flatten(sr)

	ch := make(chan *model.UsageRow, len(rows))
	for i := range rows {
		rows[i].HarvestBatchID = batchID
		rows[i].HarvestRunID = runID
		ch <- &rows[i]
	}
	close(ch)

	copied, err := pool.CopyFrom(ctx,
		pgx.Identifier{"archive", "usage_counts"},
		model.UsageColumns(),
		NewChannelSource(ch),
	)
	if err != nil {
		return nil, fmt.Errorf("copy usage rows: %w", err)
	}

	if _, err := pool.Exec(ctx, embedsql.UpdateHarvestRunRows, runID, copied); err != nil {
		return nil, fmt.Errorf("update run row count: %w", err)
	}

	log.Info().
		Int64("harvest_run_id", runID).
		Str("report_type", sr.ReportType.Name).
		Int64("rows", copied).
		Msg("report archived")

	return &ArchiveResult{
		HarvestRunID:   runID,
		HarvestBatchID: batchID,
		RowsCopied:     copied,
	}, nil
}
