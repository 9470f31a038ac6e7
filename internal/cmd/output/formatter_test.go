package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/assetmap/pkg/errors"
	"github.com/agentstation/assetmap/pkg/inventory"
)

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"table", "JSON", "yaml", ""} {
		_, err := ParseFormat(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseFormat("xml")
	assert.True(t, errors.IsValidationError(err))
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter(FormatJSON).Format(&buf, inventory.Summary{Existing: 2, Total: 2})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"existing": 2`)
}

func TestYAMLFormatterData(t *testing.T) {
	var buf bytes.Buffer
	data := Data{Headers: []string{"Status", "Count"}, Rows: [][]string{{"Existing", "3"}}}
	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, data))
	assert.Contains(t, buf.String(), "Status: Existing")
	assert.Contains(t, buf.String(), "Count:")
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	data := SummaryData(inventory.Summary{Existing: 1, Removed: 2, NewlyAdded: 3, Total: 6}, false)
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, data))

	out := buf.String()
	assert.Contains(t, out, "Existing")
	assert.Contains(t, out, "Newly Added")
	assert.Contains(t, out, "6")
}

func TestTableFormatterStruct(t *testing.T) {
	type row struct {
		SourceName string `json:"source_name"`
		Rows       int    `json:"rows"`
	}
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, []row{{"vmware", 4}}))
	assert.Contains(t, buf.String(), "vmware")

	d := toTableData([]row{{"vmware", 4}})
	require.NotNil(t, d)
	assert.Equal(t, []string{"Source Name", "Rows"}, d.Headers)

	type withHidden struct {
		Name string `json:"name"`
		err  error
	}
	d = toTableData([]withHidden{{Name: "px-web-01"}})
	require.NotNil(t, d)
	assert.Equal(t, []string{"Name"}, d.Headers)
	assert.Equal(t, [][]string{{"px-web-01"}}, d.Rows)
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, "Removed", Status(inventory.StatusRemoved, false))
	assert.Contains(t, Status(inventory.StatusRemoved, true), "\x1b[")
	assert.Equal(t, "Pending", Status("Pending", true))
}

func TestValueCountsData(t *testing.T) {
	counts := []inventory.ValueCount{{Value: "Existing", Count: 2}, {Value: "Removed", Count: 1}}
	d := ValueCountsData(inventory.ColumnStatus, counts, false)
	assert.Equal(t, []string{inventory.ColumnStatus, "Count"}, d.Headers)
	assert.Equal(t, [][]string{{"Existing", "2"}, {"Removed", "1"}}, d.Rows)

	recs := d.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, "1", recs[1]["Count"])
}
