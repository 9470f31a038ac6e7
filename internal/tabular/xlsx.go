package tabular

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/assetmap/pkg/errors"
	"github.com/agentstation/assetmap/pkg/inventory"
)

// ReadXLSX reads one sheet of a workbook. Cells are read as displayed.
func ReadXLSX(path string, opts Options) (*inventory.Table, []Warning, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, errors.NewParseError("xlsx", path, "workbook has no sheets", nil)
		}
		sheet = sheets[0]
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, nil, &errors.NotFoundError{Resource: "sheet", ID: fmt.Sprintf("%s in %s", sheet, path)}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, errors.WrapParse("xlsx", path, err)
	}
	if len(rows) <= opts.SkipRows {
		return nil, nil, errors.NewParseError("xlsx", path, "no header row", nil)
	}

	header := rows[opts.SkipRows]
	data := rows[opts.SkipRows+1:]
	lines := make([]int, len(data))
	for i := range data {
		lines[i] = opts.SkipRows + i + 2
	}
	t, warnings := buildTable(path+"#"+sheet, header, data, lines)
	return t, warnings, nil
}
