package assetmap

import (
	"context"
	"os"
	"path/filepath"

	"github.com/agentstation/assetmap/internal/tabular"
	"github.com/agentstation/assetmap/pkg/constants"
	"github.com/agentstation/assetmap/pkg/errors"
	"github.com/agentstation/assetmap/pkg/history"
	"github.com/agentstation/assetmap/pkg/inventory"
	"github.com/agentstation/assetmap/pkg/logging"
)

// writeOutput writes the reconciled inventory. The target is replaced
// atomically so a failed run never leaves a partial file.
func (c *client) writeOutput(ctx context.Context, t *inventory.Table) error {
	if dir := filepath.Dir(c.cfg.OutputPath); dir != "" {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("create", dir, err)
		}
	}
	if err := tabular.WriteCSV(c.cfg.OutputPath, t); err != nil {
		return err
	}
	logging.FromContext(ctx).Info().
		Str("path", c.cfg.OutputPath).
		Int("rows", t.Len()).
		Msg("Wrote reconciled inventory")
	return nil
}

// summaryTargets lists the files the run summary is appended to.
func (c *client) summaryTargets() []string {
	var targets []string
	seen := make(map[string]bool)
	for _, path := range []string{os.Getenv(constants.SummaryEnvVar), c.cfg.SummaryFile, c.options.summaryFile} {
		if path == "" || seen[filepath.Clean(path)] {
			continue
		}
		seen[filepath.Clean(path)] = true
		targets = append(targets, path)
	}
	return targets
}

// appendSummary appends the markdown status table to every summary target
// and returns the files written.
func (c *client) appendSummary(ctx context.Context, s inventory.Summary) ([]string, error) {
	var written []string
	for _, path := range c.summaryTargets() {
		if err := appendMarkdown(path, s, c.cfg.SummaryTitle); err != nil {
			return written, err
		}
		written = append(written, path)
		logging.FromContext(ctx).Debug().Str("path", path).Msg("Appended run summary")
	}
	return written, nil
}

func appendMarkdown(path string, s inventory.Summary, title string) (err error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("open", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.WrapIO("close", path, cerr)
		}
	}()
	if err := s.WriteMarkdown(f, title); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// recordHistory stores the run in the ledger when one is configured.
func (c *client) recordHistory(ctx context.Context, r *Report) error {
	if c.options.history == nil {
		return nil
	}

	run := history.Run{
		RunID:      r.RunID,
		StartedAt:  r.StartedAt,
		Duration:   r.Duration,
		MasterPath: r.MasterPath,
		OutputPath: r.OutputPath,
		MasterRows: r.Result.Stats.MasterRows,
		Existing:   r.Summary.Existing,
		Removed:    r.Summary.Removed,
		NewlyAdded: r.Summary.NewlyAdded,
		Purged:     r.Result.Stats.Purged,
		TotalRows:  r.Summary.Total,
		DryRun:     !r.Written,

		CoverageMatched: r.Result.Stats.CoverageMatched,
		PurgePolicy:     r.Result.Metadata.PurgePolicy.String(),
	}
	for _, id := range r.Result.Metadata.Precedence {
		run.Precedence = append(run.Precedence, id.String())
	}
	for _, s := range r.Sources {
		run.Inputs = append(run.Inputs, history.Input{
			Source:   s.Source.String(),
			Path:     s.Path,
			Rows:     s.Records,
			Degraded: s.Degraded,
			Message:  s.Message,
		})
	}

	if err := c.options.history.Record(ctx, run); err != nil {
		return err
	}
	logging.FromContext(ctx).Debug().Str("db", c.options.history.Path()).Msg("Recorded run history")
	return nil
}
