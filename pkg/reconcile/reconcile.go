package reconcile

import (
	"context"
	"fmt"

	"github.com/agentstation/assetmap/internal/matcher"
	"github.com/agentstation/assetmap/pkg/assets"
	"github.com/agentstation/assetmap/pkg/errors"
	"github.com/agentstation/assetmap/pkg/inventory"
	"github.com/agentstation/assetmap/pkg/logging"
	"github.com/agentstation/assetmap/pkg/sources"
)

// Engine reconciles a master inventory against merged discovery sources.
type Engine struct {
	precedence  sources.Precedence
	purgePolicy PurgePolicy
	purge       matcher.Matcher
}

// New creates an Engine with options.
func New(opts ...Option) (*Engine, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	m, err := matcher.New(matcher.Regex, options.purgePattern, &matcher.Options{CaseInsensitive: true})
	if err != nil {
		return nil, errors.WrapValidation("purge_pattern", err)
	}
	return &Engine{
		precedence:  options.precedence,
		purgePolicy: options.purgePolicy,
		purge:       m,
	}, nil
}

// Precedence returns the source insertion order.
func (e *Engine) Precedence() sources.Precedence {
	return e.precedence
}

// PurgePolicy returns the configured purge policy.
func (e *Engine) PurgePolicy() PurgePolicy {
	return e.purgePolicy
}

// Input is everything one reconciliation run consumes.
type Input struct {
	Master     *inventory.Table
	Discovered map[sources.ID][]assets.Record
	Coverage   []assets.Record
}

// Run performs the full pipeline: merge sources, classify, synthesize, purge,
// merge coverage and assemble the output table.
func (e *Engine) Run(ctx context.Context, in Input) (*inventory.Table, *Result, error) {
	logger := logging.FromContext(ctx)

	sm := BuildSourceMap(e.precedence, in.Discovered)
	logger.Info().
		Int("keys", sm.Len()).
		Int("overrides", sm.Overrides()).
		Msg("Merged discovery sources")

	out, result, err := e.Reconcile(ctx, in.Master, sm)
	if err != nil {
		return nil, nil, err
	}
	for _, id := range unlisted(e.precedence, in.Discovered) {
		logger.Warn().
			Str("source", id.String()).
			Int("records", len(in.Discovered[id])).
			Msg("Source missing from precedence, inserted last")
		result.Warnings = append(result.Warnings, fmt.Sprintf("source %s is not listed in precedence and was inserted last", id))
	}

	out, cov, err := MergeCoverage(ctx, out, in.Coverage)
	if err != nil {
		return nil, nil, err
	}
	result.Stats.CoverageRecords = cov.Records
	result.Stats.CoverageDuplicates = cov.Duplicates
	result.Stats.CoverageMatched = cov.Matched
	logger.Info().
		Int("records", cov.Records).
		Int("matched", cov.Matched).
		Msg("Merged coverage report")

	out = inventory.Assemble(out)
	result.Finalize()
	return out, result, nil
}

// Reconcile tags every master row Existing or Removed, appends a Newly Added
// row for each source key missing from the master and applies the purge
// policy. The master table is not modified.
func (e *Engine) Reconcile(ctx context.Context, master *inventory.Table, sm *SourceMap) (*inventory.Table, *Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, errors.ErrCanceled
	}
	if master == nil {
		return nil, nil, &errors.ValidationError{Field: "master", Message: "cannot be nil"}
	}
	if sm == nil {
		sm = NewSourceMap()
	}

	result := NewResult()
	result.Metadata.Precedence = e.precedence
	result.Metadata.PurgePolicy = e.purgePolicy
	result.Stats.MasterRows = master.Len()
	result.Stats.SourceKeys = sm.Len()
	result.Stats.Overrides = sm.Overrides()

	out := master.Clone()
	out.AddColumn(inventory.ColumnKey)
	out.AddColumn(inventory.ColumnStatus)

	if e.purgePolicy == PurgeBeforeSynthesis {
		var n int
		out, n = purge(out, e.purge)
		result.Stats.Purged += n
	}

	masterKeys := make(map[string]bool, out.Len())
	for i := 0; i < out.Len(); i++ {
		key := assets.Key(out.Value(i, inventory.ColumnName))
		out.Set(i, inventory.ColumnKey, key)
		status := inventory.StatusRemoved
		if key != "" && sm.Has(key) {
			status = inventory.StatusExisting
		}
		out.Set(i, inventory.ColumnStatus, status.String())
		if key != "" {
			masterKeys[key] = true
		}
	}

	logger := logging.FromContext(ctx)
	for _, key := range sm.Keys() {
		if masterKeys[key] {
			continue
		}
		rec, _ := sm.Get(key)
		origin, _ := sm.Origin(key)
		logger.Debug().Str("key", key).Str("origin", origin.String()).Msg("Adding newly discovered asset")
		out.AppendMap(newRow(key, rec), inventory.NewRowColumns()...)
	}

	if e.purgePolicy == PurgeAfterSynthesis {
		var n int
		out, n = purge(out, e.purge)
		result.Stats.Purged += n
	}

	summary := inventory.Summarize(out)
	result.Stats.Existing = summary.Existing
	result.Stats.Removed = summary.Removed
	result.Stats.NewlyAdded = summary.NewlyAdded
	result.Stats.TotalRows = summary.Total

	logger.Info().
		Int("existing", result.Stats.Existing).
		Int("removed", result.Stats.Removed).
		Int("newly_added", result.Stats.NewlyAdded).
		Int("purged", result.Stats.Purged).
		Msg("Classified inventory rows")
	return out, result, nil
}

// newRow projects a source record into master columns.
func newRow(key string, rec assets.Record) map[string]string {
	row := map[string]string{
		inventory.ColumnKey:    key,
		inventory.ColumnStatus: inventory.StatusNewlyAdded.String(),
		inventory.ColumnFunctionalGroup: assets.ResolveField(
			rec.Value(assets.FieldFunctionalGroup),
			rec.Value(assets.FieldFunctionalMaintainer),
			assets.Unknown,
		),
	}
	for _, f := range assets.Fields() {
		if f == assets.FieldFunctionalGroup {
			continue
		}
		col, _ := inventory.ColumnFor(f)
		row[col] = rec.Value(f)
	}
	for _, col := range inventory.CoverageColumns() {
		row[col] = assets.Unknown
	}
	return row
}
