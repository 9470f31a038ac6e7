package assetmap

import (
	"context"
	"time"

	"github.com/agentstation/assetmap/internal/sources/registry"
	"github.com/agentstation/assetmap/internal/tabular"
	"github.com/agentstation/assetmap/pkg/assets"
	"github.com/agentstation/assetmap/pkg/errors"
	"github.com/agentstation/assetmap/pkg/inventory"
	"github.com/agentstation/assetmap/pkg/logging"
	"github.com/agentstation/assetmap/pkg/reconcile"
	"github.com/agentstation/assetmap/pkg/sources"
)

// SourceReport describes what one source category contributed to a run.
type SourceReport struct {
	Source   sources.ID `json:"source" yaml:"source"`
	Path     string     `json:"path" yaml:"path"`
	Rows     int        `json:"rows" yaml:"rows"`
	Records  int        `json:"records" yaml:"records"`
	Warnings int        `json:"warnings" yaml:"warnings"`
	Degraded bool       `json:"degraded" yaml:"degraded"`
	Message  string     `json:"message,omitempty" yaml:"message,omitempty"`
}

// Report is the outcome of a Run.
type Report struct {
	RunID        string            `json:"run_id" yaml:"run_id"`
	StartedAt    time.Time         `json:"started_at" yaml:"started_at"`
	Duration     time.Duration     `json:"duration" yaml:"duration"`
	MasterPath   string            `json:"master_path" yaml:"master_path"`
	OutputPath   string            `json:"output_path" yaml:"output_path"`
	Written      bool              `json:"written" yaml:"written"`
	Sources      []SourceReport    `json:"sources" yaml:"sources"`
	Summary      inventory.Summary `json:"summary" yaml:"summary"`
	SummaryFiles []string          `json:"summary_files,omitempty" yaml:"summary_files,omitempty"`
	Warnings     []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// Result holds the engine statistics
	Result *reconcile.Result `json:"-" yaml:"-"`
	// Table is the reconciled inventory
	Table *inventory.Table `json:"-" yaml:"-"`
}

// Run executes the reconciliation pipeline. A master inventory that cannot be
// read aborts the run before anything is written. Optional sources that are
// missing or unreadable contribute nothing and are reported as degraded.
func (c *client) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:      c.nextRunID(),
		StartedAt:  time.Now(),
		MasterPath: c.cfg.MasterPath,
		OutputPath: c.cfg.OutputPath,
	}
	ctx = logging.WithRun(ctx, report.RunID)
	logger := logging.FromContext(ctx)

	// Step 1: master inventory
	master, warnings, err := tabular.ReadFile(ctx, c.cfg.MasterPath, tabular.Options{})
	if err != nil {
		return nil, err
	}
	report.addWarnings(warnings)
	logger.Info().
		Str("path", c.cfg.MasterPath).
		Int("rows", master.Len()).
		Msg("Loaded master inventory")

	// Step 2: discovery and coverage sources
	selections, err := c.Discover(ctx)
	if err != nil {
		return nil, err
	}
	in := reconcile.Input{
		Master:     master,
		Discovered: make(map[sources.ID][]assets.Record),
	}
	for _, sel := range selections {
		if !sel.Enabled {
			continue
		}
		records, sr, err := c.loadSource(ctx, sel)
		if err != nil {
			if errors.IsCanceled(err) {
				return nil, err
			}
			serr := errors.NewSourceError(sel.Source.String(), sel.Path, err)
			sr.Degraded = true
			sr.Message = err.Error()
			report.Warnings = append(report.Warnings, serr.Error())
			reason := "unreadable"
			if errors.IsNotFound(err) {
				reason = "missing"
			}
			logger.Warn().Err(err).
				Str("source", sel.Source.String()).
				Str("reason", reason).
				Msg("Source unavailable, continuing without it")
			c.triggerDegraded(serr)
		}
		report.Sources = append(report.Sources, sr)

		if sel.Source == sources.CoverageID {
			in.Coverage = records
		} else {
			in.Discovered[sel.Source] = records
		}
	}

	// Step 3: reconcile
	out, result, err := c.engine.Run(ctx, in)
	if err != nil {
		return nil, err
	}
	report.Result = result
	report.Table = out
	report.Summary = inventory.Summarize(out)
	report.Warnings = append(report.Warnings, result.Warnings...)
	logger.Info().
		Int("existing", report.Summary.Existing).
		Int("removed", report.Summary.Removed).
		Int("newly_added", report.Summary.NewlyAdded).
		Int("total", report.Summary.Total).
		Msg("Reconciliation complete")
	c.triggerRows(out)

	// Step 4: persist
	if err := ctx.Err(); err != nil {
		return nil, errors.ErrCanceled
	}
	if c.cfg.DryRun {
		logger.Info().Bool("dry_run", true).Msg("Dry run completed - output not written")
	} else {
		if err := c.writeOutput(ctx, out); err != nil {
			return nil, err
		}
		report.Written = true
	}

	files, err := c.appendSummary(ctx, report.Summary)
	if err != nil {
		// the inventory is already written; a lost summary is not fatal
		logger.Warn().Err(err).Msg("Failed to write run summary")
		report.Warnings = append(report.Warnings, err.Error())
	}
	report.SummaryFiles = files

	report.Duration = time.Since(report.StartedAt)
	if err := c.recordHistory(ctx, report); err != nil {
		logger.Warn().Err(err).Msg("Failed to record run history")
		report.Warnings = append(report.Warnings, err.Error())
	}

	return report, nil
}

// loadSource reads and normalizes the file selected for one category.
func (c *client) loadSource(ctx context.Context, sel Selection) ([]assets.Record, SourceReport, error) {
	sr := SourceReport{Source: sel.Source, Path: sel.Path}
	if !sel.Found() {
		return nil, sr, sel.Err()
	}

	ctx = logging.WithSource(ctx, sel.Source.String())
	src := c.cfg.Source(sel.Source)

	readOpts, err := src.ReaderOptions()
	if err != nil {
		return nil, sr, err
	}
	table, warnings, err := tabular.ReadFile(ctx, sel.Path, readOpts)
	if err != nil {
		return nil, sr, err
	}
	sr.Rows = table.Len()
	sr.Warnings = len(warnings)
	for _, w := range warnings {
		logging.FromContext(ctx).Warn().Str("file", w.File).Int("line", w.Line).Msg(w.Message)
	}

	normalizer, err := registry.Get(sel.Source, src.NormalizerOptions()...)
	if err != nil {
		return nil, sr, err
	}
	records, err := normalizer.Normalize(ctx, table)
	if err != nil {
		return nil, sr, err
	}
	sr.Records = len(records)

	logging.FromContext(ctx).Info().
		Str("path", sel.Path).
		Int("rows", sr.Rows).
		Int("records", sr.Records).
		Msg("Loaded source")
	return records, sr, nil
}

func (r *Report) addWarnings(warnings []tabular.Warning) {
	for _, w := range warnings {
		r.Warnings = append(r.Warnings, w.String())
	}
}
