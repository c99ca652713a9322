package model

// Table is a loaded spreadsheet: ordered column names and rows of nullable
// string cells. A nil cell is a missing value.
type Table struct {
	Columns []string
	Rows    [][]*string
}

// Cell returns the value at (row, col), or nil if out of range or missing.
func (t *Table) Cell(row, col int) *string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return nil
	}
	r := t.Rows[row]
	if col >= len(r) {
		return nil
	}
	return r[col]
}

// ColumnPosition returns the index of the column with exactly this name, or -1.
func (t *Table) ColumnPosition(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}
