package tabular

import (
	"bufio"
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/assetmap/pkg/constants"
	"github.com/agentstation/assetmap/pkg/errors"
	"github.com/agentstation/assetmap/pkg/inventory"
)

const utf8BOM = "\ufeff"

// ReadCSVFile reads a delimited text file.
func ReadCSVFile(ctx context.Context, path string, opts Options) (*inventory.Table, []Warning, error) {
	f, err := os.Open(path) //nolint:gosec // paths come from configuration
	if err != nil {
		return nil, nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()
	return ReadCSV(ctx, f, path, opts)
}

// ReadCSV reads delimited text from r. Quotes are parsed leniently and rows
// may have any number of fields. Malformed rows become warnings.
//
// SkipRows counts physical lines, blank ones included, so a banner with an
// empty separator line is skipped as it appears in the file. Reported line
// numbers are relative to the start of the file.
func ReadCSV(ctx context.Context, r io.Reader, name string, opts Options) (*inventory.Table, []Warning, error) {
	br := bufio.NewReader(r)
	offset, err := skipLines(br, opts.SkipRows)
	if err != nil {
		return nil, nil, errors.WrapIO("read", name, err)
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}

	var (
		header   []string
		rows     [][]string
		lines    []int
		warnings []Warning
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, errors.ErrCanceled
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				warnings = append(warnings, Warning{File: name, Line: perr.Line + offset, Message: perr.Err.Error()})
				continue
			}
			return nil, nil, errors.WrapParse("csv", name, err)
		}
		line, _ := reader.FieldPos(0)
		line += offset
		if header == nil {
			record[0] = strings.TrimPrefix(record[0], utf8BOM)
			header = record
			continue
		}
		rows = append(rows, record)
		lines = append(lines, line)
	}

	if header == nil {
		return nil, warnings, errors.NewParseError("csv", name, "no header row", nil)
	}

	t, rowWarnings := buildTable(name, header, rows, lines)
	return t, append(warnings, rowWarnings...), nil
}

// skipLines discards up to n lines from br and returns how many it read.
func skipLines(br *bufio.Reader, n int) (int, error) {
	skipped := 0
	for skipped < n {
		_, err := br.ReadString('\n')
		if err == io.EOF {
			break
		}
		if err != nil {
			return skipped, err
		}
		skipped++
	}
	return skipped, nil
}

// WriteCSV writes the table to path atomically: the data goes to a temporary
// file in the same directory which is renamed over path once complete.
func WriteCSV(path string, t *inventory.Table) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("mkdir", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".assetmap-*.csv.tmp")
	if err != nil {
		return errors.WrapIO("create", dir, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = EncodeCSV(tmp, t); err != nil {
		return errors.WrapIO("write", tmp.Name(), err)
	}
	if err = tmp.Chmod(constants.FilePermissions); err != nil {
		return errors.WrapIO("chmod", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return errors.WrapIO("close", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.WrapIO("rename", path, err)
	}
	return nil
}

// EncodeCSV writes the header and every row of t to w.
func EncodeCSV(w io.Writer, t *inventory.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns()); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Records()); err != nil {
		return err
	}
	return cw.Error()
}
