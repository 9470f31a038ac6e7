package inventory

import "github.com/agentstation/assetmap/pkg/assets"

// Assemble prepares a table for output: working columns are dropped and every
// cell carrying no value becomes the Unknown sentinel. The input is not
// modified and assembling an assembled table is a no-op.
func Assemble(t *Table) *Table {
	out := t.Clone()
	out.DropColumn(ColumnKey)
	for i := range out.rows {
		row := out.rows[i]
		if len(row) < len(out.columns) {
			row = append(row, make([]string, len(out.columns)-len(row))...)
			out.rows[i] = row
		}
		for j := range row {
			row[j] = assets.Normalize(row[j])
		}
	}
	return out
}
