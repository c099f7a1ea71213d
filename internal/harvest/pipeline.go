// Package harvest drives a batch run: one SUSHI request per active
// (provider, report type) pair, each carried through the full
// fetch → map → validate → render → write pipeline. A failure on one
// pair is logged to the run's error file and never aborts the batch.
package harvest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/openlibstats/miso/internal/config"
	"github.com/openlibstats/miso/internal/model"
	"github.com/openlibstats/miso/internal/providers"
	"github.com/openlibstats/miso/internal/render"
	"github.com/openlibstats/miso/internal/report"
	"github.com/openlibstats/miso/internal/sushi"
	"github.com/openlibstats/miso/internal/validate"
	"github.com/openlibstats/miso/internal/xmltree"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Caller posts one request envelope and returns the raw response text.
// Satisfied by sushi.Client; tests substitute a canned transport.
type Caller interface {
	Call(ctx context.Context, url, envelope string) (string, error)
}

// Harvester runs the batch pipeline.
type Harvester struct {
	cfg       *config.Config
	log       zerolog.Logger
	client    Caller
	envelopes *sushi.EnvelopeBuilder
	errlog    *ErrorLog
}

// New builds a Harvester. The envelope templates come from the config's
// override paths or the embedded defaults.
func New(cfg *config.Config, log zerolog.Logger, client Caller) (*Harvester, error) {
	envelopes, err := sushi.NewEnvelopeBuilder(cfg.EnvelopeTemplate, cfg.WSSecurityTemplate)
	if err != nil {
		return nil, &PipelineError{Phase: "setup", Err: err}
	}
	return &Harvester{
		cfg:       cfg,
		log:       log,
		client:    client,
		envelopes: envelopes,
		errlog:    NewErrorLog(cfg.OutputDir),
	}, nil
}

// Run executes the batch: load roster → filter → request/convert each
// active pair. Per-pair failures are counted and logged, never raised.
func (h *Harvester) Run(ctx context.Context) (*model.HarvestSummary, error) {
	totalStart := time.Now()
	defer h.errlog.Close()

	startDate, endDate, err := h.cfg.DateRange(time.Now())
	if err != nil {
		return nil, &PipelineError{Phase: "dates", Err: err}
	}
	startDate = render.MonthStart(startDate)
	endDate = render.MonthEnd(endDate)

	roster, issues, err := providers.Load(h.cfg.RosterPath)
	if err != nil {
		return nil, &PipelineError{Phase: "roster", Err: err}
	}
	for _, issue := range issues {
		h.log.Warn().Int("line", issue.Line).Msg("skipping unusable roster row")
		_ = h.errlog.Logf("%s", issue)
	}

	active := providers.Filter(roster, h.cfg.LibCodes)

	summary := &model.HarvestSummary{ProvidersRead: len(roster)}

	for _, p := range active {
		for _, reportType := range p.Reports {
			if !h.cfg.HarvestsType(reportType) {
				continue
			}

			summary.RequestsSent++
			err := h.processOne(ctx, p, reportType, startDate, endDate)

			var unsupported *render.UnsupportedReportTypeError
			switch {
			case err == nil:
				summary.FilesWritten++
			case errors.As(err, &unsupported):
				summary.Skipped++
				_ = h.errlog.Logf("%s", unsupported)
			default:
				summary.Failed++
				h.log.Error().Err(err).
					Str("provider", p.Name).
					Str("report_type", reportType).
					Msg("harvest failed for provider")
				_ = h.errlog.Logf("Exception occurred processing line %d for report type %s", p.Line, reportType)
				_ = h.errlog.Logf("%s", err)
			}
		}
	}

	summary.Duration = time.Since(totalStart)

	h.log.Info().
		Int("providers", summary.ProvidersRead).
		Int("requests", summary.RequestsSent).
		Int("files", summary.FilesWritten).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Str("duration", summary.Duration.String()).
		Msg("harvest run complete")

	return summary, nil
}

// processOne fetches and converts a single (provider, report type) pair.
func (h *Harvester) processOne(ctx context.Context, p providers.Provider, reportType string, startDate, endDate time.Time) error {
	envelope, err := h.envelopes.Build(sushi.RequestSpec{
		RequestorID:    p.RequestorID,
		RequestorName:  p.RequestorName,
		RequestorEmail: p.RequestorEmail,
		CustomerID:     p.CustomerID,
		CustomerName:   p.CustomerName,
		ReportType:     reportType,
		Release:        p.Release,
		Begin:          startDate,
		End:            endDate,
		WSUsername:     p.WSUsername,
		WSPassword:     p.WSPassword,
	})
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	response, err := h.client.Call(ctx, p.URL, envelope)
	if err != nil {
		return fmt.Errorf("call %s: %w", p.URL, err)
	}

	baseName := fmt.Sprintf("%s_%s_%s_%s_%s",
		p.Name, p.LibCode, startDate.Format("200601"), endDate.Format("200601"), reportType)

	if h.cfg.SaveXML {
		// Raw-save mode: keep the response for offline conversion.
		return h.writeFile(baseName+".xml", response)
	}

	doc, err := xmltree.Parse(strings.NewReader(response))
	if err != nil {
		return err
	}

	if err := sushi.DetectException(doc); err != nil {
		return err
	}

	sushiReport, err := report.Load(doc, h.log)
	if err != nil {
		return err
	}

	if h.cfg.Strict {
		res := validate.Check(sushiReport)
		for _, msg := range res.Messages {
			h.log.Warn().Str("provider", p.Name).Msg(msg)
		}
		if res.Valid {
			h.log.Info().Str("provider", p.Name).Str("report_type", reportType).Msg("document is valid")
		} else {
			h.log.Warn().Str("provider", p.Name).Str("report_type", reportType).Msg("document is invalid")
		}
	}

	rt, err := model.ParseReportType(reportType)
	if err != nil {
		return err
	}
	csvText, err := render.Render(sushiReport, rt, startDate, endDate, render.Options{LibraryCode: p.LibCode}, h.log)
	if err != nil {
		return err
	}

	return h.writeFile(baseName+".csv", csvText)
}

func (h *Harvester) writeFile(name, content string) error {
	path := filepath.Join(h.cfg.OutputDir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	h.log.Info().Str("file", path).Msg("wrote report file")
	return nil
}
