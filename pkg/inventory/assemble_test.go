package inventory_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/assetmap/pkg/assets"
	"github.com/agentstation/assetmap/pkg/inventory"
)

func TestAssemble(t *testing.T) {
	tbl := inventory.NewTable("Name", inventory.ColumnKey, "OS", "Location", "Status")
	tbl.Append("Host-A", "host-a", "-", " ", "Existing")
	tbl.Append("Host-B", "host-b", "- ")

	out := inventory.Assemble(tbl)

	assert.Equal(t, []string{"Name", "OS", "Location", "Status"}, out.Columns())
	for _, row := range out.Records() {
		for _, cell := range row {
			assert.False(t, assets.IsPlaceholder(cell), "cell %q", cell)
		}
	}
	assert.Equal(t, assets.Unknown, out.Value(1, "Status"))
	assert.True(t, tbl.HasColumn(inventory.ColumnKey), "input must not be modified")
}

func TestAssembleIdempotent(t *testing.T) {
	tbl := inventory.NewTable("Name", "OS", inventory.ColumnKey)
	tbl.Append("a", "", "a")
	tbl.Append("b", "Rocky 9", "b")

	once := inventory.Assemble(tbl)
	twice := inventory.Assemble(once)

	assert.Equal(t, once.Columns(), twice.Columns())
	assert.Equal(t, once.Records(), twice.Records())
}

func TestSummarize(t *testing.T) {
	tbl := inventory.NewTable("Name", "Status")
	tbl.Append("a", "Existing")
	tbl.Append("b", "Removed")
	tbl.Append("c", "Newly Added")
	tbl.Append("d", "Newly Added")
	tbl.Append("e", "")

	s := inventory.Summarize(tbl)
	assert.Equal(t, inventory.Summary{Existing: 1, Removed: 1, NewlyAdded: 2, Other: 1, Total: 5}, s)
	assert.Equal(t, 2, s.Count(inventory.StatusNewlyAdded))
	assert.Equal(t, "5 rows: 1 existing, 1 removed, 2 newly added", s.String())
}

func TestValueCounts(t *testing.T) {
	tbl := inventory.NewTable("Status")
	for _, v := range []string{"Removed", "Existing", "Existing", "Newly Added", "Removed", "Existing"} {
		tbl.Append(v)
	}

	counts := inventory.ValueCounts(tbl, "Status")
	require.Len(t, counts, 3)
	assert.Equal(t, inventory.ValueCount{Value: "Existing", Count: 3}, counts[0])
	assert.Equal(t, inventory.ValueCount{Value: "Removed", Count: 2}, counts[1])
	assert.Nil(t, inventory.ValueCounts(tbl, "OS"))
}

func TestSummaryMarkdown(t *testing.T) {
	s := inventory.Summary{Existing: 10, Removed: 2, NewlyAdded: 3, Total: 15}

	var buf bytes.Buffer
	require.NoError(t, s.WriteMarkdown(&buf, "Inventory reconciliation"))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "## Inventory reconciliation"))
	for _, want := range []string{"Status", "Existing", "Removed", "Newly Added", "10", "15"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Other")
}

func TestColumnFor(t *testing.T) {
	col, ok := inventory.ColumnFor(assets.FieldTechnologySource)
	assert.True(t, ok)
	assert.Equal(t, inventory.ColumnTechnology, col)

	_, ok = inventory.ColumnFor(assets.FieldFunctionalMaintainer)
	assert.False(t, ok)

	assert.True(t, inventory.StatusNewlyAdded.IsValid())
	assert.False(t, inventory.Status("Deleted").IsValid())
}
