package tabular_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/agentstation/assetmap/internal/tabular"
	"github.com/agentstation/assetmap/pkg/errors"
	"github.com/agentstation/assetmap/pkg/inventory"
)

func TestReadCSV(t *testing.T) {
	input := "\ufeffName,OS,Cluster\n" +
		"web-01,RHEL 9,BDS-01\n" +
		"short-row,Debian\n" +
		"\n" +
		"too,many,fields,here\n" +
		"padded,Alma,VLC-02,,\n" +
		"quoted,\"Windows \"Server\" 2019\",DEC\n"

	tbl, warnings, err := tabular.ReadCSV(context.Background(), strings.NewReader(input), "vms.csv", tabular.Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "OS", "Cluster"}, tbl.Columns())
	require.Equal(t, 4, tbl.Len())
	assert.Equal(t, "web-01", tbl.Value(0, "Name"))
	assert.Empty(t, tbl.Value(1, "Cluster"))
	assert.Equal(t, "VLC-02", tbl.Value(2, "Cluster"))
	assert.Equal(t, "DEC", tbl.Value(3, "Cluster"))

	require.Len(t, warnings, 1)
	assert.Equal(t, 5, warnings[0].Line)
	assert.Equal(t, "vms.csv:5: expected 3 fields, saw 4", warnings[0].String())
}

func TestReadCSVSkipRows(t *testing.T) {
	input := "Agent report\n" +
		"Generated 2026-01-14\n" +
		",,\n" +
		"Hostname,THS deployment,System covered by GRR\n" +
		"host-b,Yes,No\n"

	tbl, _, err := tabular.ReadCSV(context.Background(), strings.NewReader(input), "ths.csv", tabular.Options{SkipRows: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"Hostname", "THS deployment", "System covered by GRR"}, tbl.Columns())
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, "Yes", tbl.Value(0, "THS deployment"))
}

func TestReadCSVSkipRowsCountsBlankLines(t *testing.T) {
	path := filepath.Join("testdata", "ths_blank_banner.csv")
	tbl, warnings, err := tabular.ReadFile(context.Background(), path, tabular.Options{SkipRows: 3})
	require.NoError(t, err)

	assert.Equal(t, []string{"Hostname", "THS deployment"}, tbl.Columns())
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "srv-1", tbl.Value(0, "Hostname"))
	assert.Equal(t, "srv-2", tbl.Value(1, "Hostname"))

	require.Len(t, warnings, 1)
	assert.Equal(t, 7, warnings[0].Line, "line numbers count the skipped banner")
}

func TestReadCSVSkipRowsPastEOF(t *testing.T) {
	_, _, err := tabular.ReadCSV(context.Background(), strings.NewReader("banner\n\n"), "x.csv", tabular.Options{SkipRows: 3})
	var perr *errors.ParseError
	assert.True(t, errors.As(err, &perr))
}

func TestReadCSVDelimiter(t *testing.T) {
	tbl, _, err := tabular.ReadCSV(context.Background(), strings.NewReader("Name;OS\na;b\n"), "x.csv", tabular.Options{Delimiter: ';'})
	require.NoError(t, err)
	assert.Equal(t, "b", tbl.Value(0, "OS"))
}

func TestReadCSVNoHeader(t *testing.T) {
	_, _, err := tabular.ReadCSV(context.Background(), strings.NewReader("a\nb\n"), "x.csv", tabular.Options{SkipRows: 5})
	var perr *errors.ParseError
	assert.True(t, errors.As(err, &perr))
}

func TestReadFileMissing(t *testing.T) {
	_, _, err := tabular.ReadFile(context.Background(), filepath.Join(t.TempDir(), "absent.csv"), tabular.Options{})
	var ioErr *errors.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadFileCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := tabular.ReadFile(ctx, "Inventory.csv", tabular.Options{})
	assert.True(t, errors.IsCanceled(err))
}

func TestReadFileFromTestdata(t *testing.T) {
	tbl, warnings, err := tabular.ReadFile(context.Background(), filepath.Join("testdata", "inventory.csv"), tabular.Options{})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 3, tbl.Len())
	assert.True(t, tbl.HasColumn(inventory.ColumnStatus))
}

func TestReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proxmox.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Export"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"name", "powerstate", "Location"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"px-01", "poweredOn", "BDS"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]any{"px-02", "poweredOff"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tbl, warnings, err := tabular.ReadFile(context.Background(), path, tabular.Options{SkipRows: 1})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, []string{"name", "powerstate", "Location"}, tbl.Columns())
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "BDS", tbl.Value(0, "Location"))
	assert.Empty(t, tbl.Value(1, "Location"))

	_, _, err = tabular.ReadXLSX(path, tabular.Options{Sheet: "Missing"})
	assert.True(t, errors.IsNotFound(err))
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, tabular.FormatXLSX, tabular.DetectFormat("VMs all discovered in Proxmox.XLSX"))
	assert.Equal(t, tabular.FormatCSV, tabular.DetectFormat("VMs all discovered in Proxmox.xlsx - VMs all discovered.csv"))
	assert.Equal(t, tabular.FormatCSV, tabular.DetectFormat("export.txt"))
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "Final_Inventory_Complete.csv")

	tbl := inventory.NewTable("Name", "OS")
	tbl.Append("a", "Linux, 64-bit")
	tbl.Append("b")

	require.NoError(t, tabular.WriteCSV(path, tbl))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Name,OS\na,\"Linux, 64-bit\"\nb,\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not remain")

	back, _, err := tabular.ReadFile(context.Background(), path, tabular.Options{})
	require.NoError(t, err)
	assert.Equal(t, tbl.Records(), back.Records())
}

func TestEncodeCSV(t *testing.T) {
	tbl := inventory.NewTable("Name")
	tbl.Append("x")
	var buf bytes.Buffer
	require.NoError(t, tabular.EncodeCSV(&buf, tbl))
	assert.Equal(t, "Name\nx\n", buf.String())
}
