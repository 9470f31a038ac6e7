// Package tabular reads delimited text and spreadsheet files into inventory
// tables and writes tables back to CSV.
package tabular

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/agentstation/assetmap/pkg/errors"
	"github.com/agentstation/assetmap/pkg/inventory"
)

// Options controls how a file is read.
type Options struct {
	// SkipRows is the number of leading rows above the header.
	SkipRows int
	// Delimiter separates CSV fields. Zero means comma.
	Delimiter rune
	// Sheet selects a spreadsheet sheet. Empty means the first sheet.
	Sheet string
}

// Warning reports a row that was skipped while reading.
type Warning struct {
	File    string
	Line    int
	Message string
}

// String returns the warning as "file:line: message".
func (w Warning) String() string {
	return fmt.Sprintf("%s:%d: %s", w.File, w.Line, w.Message)
}

// Format names a supported file format.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat picks the format from the file extension. Anything that is
// not a workbook is read as delimited text.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FormatXLSX
	default:
		return FormatCSV
	}
}

// ReadFile reads a table from path using the format implied by its extension.
func ReadFile(ctx context.Context, path string, opts Options) (*inventory.Table, []Warning, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, errors.ErrCanceled
	}
	if opts.SkipRows < 0 {
		return nil, nil, &errors.ValidationError{Field: "skip_rows", Value: opts.SkipRows, Message: "cannot be negative"}
	}
	switch DetectFormat(path) {
	case FormatXLSX:
		return ReadXLSX(path, opts)
	default:
		return ReadCSVFile(ctx, path, opts)
	}
}

// buildTable turns header plus data rows into a table. Rows with more
// non-empty cells than the header are skipped with a warning; shorter rows
// are padded. lines holds the source line of each row.
func buildTable(file string, header []string, rows [][]string, lines []int) (*inventory.Table, []Warning) {
	t := inventory.NewTable(header...)
	var warnings []Warning
	for i, row := range rows {
		if len(row) > len(header) && !trailingEmpty(row[len(header):]) {
			warnings = append(warnings, Warning{
				File:    file,
				Line:    lines[i],
				Message: fmt.Sprintf("expected %d fields, saw %d", len(header), len(row)),
			})
			continue
		}
		if isBlankRow(row) {
			continue
		}
		t.Append(row...)
	}
	return t, warnings
}

func trailingEmpty(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func isBlankRow(row []string) bool {
	return trailingEmpty(row)
}
