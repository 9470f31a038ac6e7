package inventory

import "slices"

// Table is an ordered set of named columns over string rows. Rows shorter
// than the header read as empty cells.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// NewTable creates an empty table with the given header. Blank and repeated
// column names are made unique.
func NewTable(columns ...string) *Table {
	cols := dedupeHeader(columns)
	t := &Table{
		columns: cols,
		index:   make(map[string]int, len(cols)),
	}
	for i, c := range cols {
		t.index[c] = i
	}
	return t
}

// Columns returns a copy of the header.
func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// HasColumn reports whether the table has the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// AddColumn appends a column if it is missing. Existing rows read it as empty.
func (t *Table) AddColumn(name string) {
	if t.HasColumn(name) {
		return
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, name)
}

// DropColumn removes a column and its cells if present.
func (t *Table) DropColumn(name string) {
	i, ok := t.index[name]
	if !ok {
		return
	}
	t.columns = slices.Delete(t.columns, i, i+1)
	for r, row := range t.rows {
		if i < len(row) {
			t.rows[r] = slices.Delete(row, i, i+1)
		}
	}
	t.index = make(map[string]int, len(t.columns))
	for j, c := range t.columns {
		t.index[c] = j
	}
}

// Append adds a row given as cells in header order. Extra cells are dropped.
func (t *Table) Append(cells ...string) {
	row := make([]string, len(t.columns))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// AppendMap adds a row from column values. Columns named in order are added
// first when missing, then any other unknown columns in sorted order.
func (t *Table) AppendMap(values map[string]string, order ...string) {
	for _, c := range order {
		t.AddColumn(c)
	}
	var missing []string
	for c := range values {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	slices.Sort(missing)
	for _, c := range missing {
		t.AddColumn(c)
	}
	row := make([]string, len(t.columns))
	for c, v := range values {
		row[t.index[c]] = v
	}
	t.rows = append(t.rows, row)
}

// Get returns the cell at row i in the named column, and whether the column
// exists.
func (t *Table) Get(i int, column string) (string, bool) {
	c, ok := t.index[column]
	if !ok {
		return "", false
	}
	row := t.rows[i]
	if c >= len(row) {
		return "", true
	}
	return row[c], true
}

// Value returns the cell at row i in the named column, or "" when absent.
func (t *Table) Value(i int, column string) string {
	v, _ := t.Get(i, column)
	return v
}

// Set stores a cell, adding the column when it is missing.
func (t *Table) Set(i int, column, value string) {
	t.AddColumn(column)
	c := t.index[column]
	row := t.rows[i]
	if c >= len(row) {
		row = append(row, make([]string, c-len(row)+1)...)
		t.rows[i] = row
	}
	row[c] = value
}

// Row returns a copy of row i as column values.
func (t *Table) Row(i int) map[string]string {
	out := make(map[string]string, len(t.columns))
	for c, j := range t.index {
		if j < len(t.rows[i]) {
			out[c] = t.rows[i][j]
		} else {
			out[c] = ""
		}
	}
	return out
}

// Records returns every row as cells in header order, padded to the header
// width. The result is safe to modify.
func (t *Table) Records() [][]string {
	out := make([][]string, len(t.rows))
	for i, row := range t.rows {
		cells := make([]string, len(t.columns))
		copy(cells, row)
		out[i] = cells
	}
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := NewTable(t.columns...)
	c.rows = make([][]string, len(t.rows))
	for i, row := range t.rows {
		c.rows[i] = slices.Clone(row)
	}
	return c
}

// Filter returns a new table holding the rows keep accepts.
func (t *Table) Filter(keep func(i int) bool) *Table {
	out := NewTable(t.columns...)
	for i, row := range t.rows {
		if keep(i) {
			out.rows = append(out.rows, slices.Clone(row))
		}
	}
	return out
}
