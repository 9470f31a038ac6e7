package reconcile_test

import (
	"github.com/agentstation/assetmap/pkg/assets"
	"github.com/agentstation/assetmap/pkg/inventory"
)

// record builds a source record from field/value pairs.
func record(source assets.Source, name string, kv ...string) assets.Record {
	rec := assets.NewRecord(source)
	rec.Set(assets.FieldName, name)
	for i := 0; i+1 < len(kv); i += 2 {
		rec.Set(assets.Field(kv[i]), kv[i+1])
	}
	return rec
}

// master builds a master table with Name, OS and coverage columns.
func master(names ...string) *inventory.Table {
	cols := append([]string{inventory.ColumnName, inventory.ColumnOS}, inventory.CoverageColumns()...)
	t := inventory.NewTable(cols...)
	for _, n := range names {
		t.Append(n, "Linux", "Unknown", "Unknown", "Unknown", "Unknown")
	}
	return t
}

// statusByName maps each row's Name to its Status.
func statusByName(t *inventory.Table) map[string]string {
	out := make(map[string]string, t.Len())
	for i := 0; i < t.Len(); i++ {
		out[t.Value(i, inventory.ColumnName)] = t.Value(i, inventory.ColumnStatus)
	}
	return out
}

// rowByName returns the first row whose Name equals name.
func rowByName(t *inventory.Table, name string) map[string]string {
	for i := 0; i < t.Len(); i++ {
		if t.Value(i, inventory.ColumnName) == name {
			return t.Row(i)
		}
	}
	return nil
}
