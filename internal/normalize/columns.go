package normalize

import "strings"

// FindColumn returns the first column, in table order, whose name contains any
// of the keywords as a case-insensitive substring.
func FindColumn(columns []string, keywords ...string) (string, bool) {
	for _, col := range columns {
		name := strings.ToLower(col)
		for _, kw := range keywords {
			if kw == "" {
				continue
			}
			if strings.Contains(name, strings.ToLower(kw)) {
				return col, true
			}
		}
	}
	return "", false
}

// ColumnIndex is FindColumn returning the column position, or -1.
func ColumnIndex(columns []string, keywords ...string) int {
	col, ok := FindColumn(columns, keywords...)
	if !ok {
		return -1
	}
	for i, c := range columns {
		if c == col {
			return i
		}
	}
	return -1
}
