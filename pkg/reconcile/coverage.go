package reconcile

import (
	"context"

	"github.com/agentstation/assetmap/pkg/assets"
	"github.com/agentstation/assetmap/pkg/errors"
	"github.com/agentstation/assetmap/pkg/inventory"
	"github.com/agentstation/assetmap/pkg/logging"
)

// CoverageResult reports what MergeCoverage did.
type CoverageResult struct {
	Records    int
	Duplicates int
	Matched    int
}

// coverageIndex keys coverage records by identity key. The first record seen
// for a key wins.
func coverageIndex(records []assets.Record) (map[string]assets.Record, int) {
	index := make(map[string]assets.Record, len(records))
	duplicates := 0
	for _, rec := range records {
		key := rec.Key()
		if key == "" {
			continue
		}
		if _, ok := index[key]; ok {
			duplicates++
			continue
		}
		index[key] = rec
	}
	return index, duplicates
}

// MergeCoverage returns a copy of t with the four coverage columns of every
// matching row overwritten from the coverage report. A coverage field the
// report leaves blank or Unknown keeps the row's existing value. Rows
// without a match are unchanged.
func MergeCoverage(ctx context.Context, t *inventory.Table, records []assets.Record) (*inventory.Table, CoverageResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, CoverageResult{}, errors.ErrCanceled
	}

	out := t.Clone()
	index, duplicates := coverageIndex(records)
	res := CoverageResult{Records: len(records), Duplicates: duplicates}
	if duplicates > 0 {
		logging.FromContext(ctx).Warn().
			Int("duplicates", duplicates).
			Msg("Coverage report lists some hosts more than once, keeping the first entry")
	}
	if len(index) == 0 {
		return out, res, nil
	}

	fields := assets.CoverageFields()
	columns := inventory.CoverageColumns()
	for _, col := range columns {
		out.AddColumn(col)
	}

	for i := 0; i < out.Len(); i++ {
		rec, ok := index[assets.Key(out.Value(i, inventory.ColumnName))]
		if !ok {
			continue
		}
		for j, f := range fields {
			reported, _ := rec.Get(f)
			out.Set(i, columns[j], assets.ResolveField(reported, out.Value(i, columns[j]), assets.Unknown))
		}
		res.Matched++
	}
	return out, res, nil
}
