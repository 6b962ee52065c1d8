package domain

// Table is already-parsed tabular input: a header row and the data rows below it.
// Rows may be shorter than the header; missing cells read as empty.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Cell returns the raw value at (row, col), or "" when out of range.
func (t Table) Cell(row, col int) string {
	if col < 0 || row < 0 || row >= len(t.Rows) || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}
