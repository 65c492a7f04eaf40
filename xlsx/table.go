package xlsx

import (
	"math"
	"strconv"
)

// Hard limits on the size of the block written to a destination worksheet.
const (
	MaxRows    = 1086
	MaxColumns = 56
)

// Table is a rectangular block of cell values in row-major order.
type Table [][]any

// Rows returns the number of rows in the table.
func (t Table) Rows() int {
	return len(t)
}

// Columns returns the width of the widest row.
func (t Table) Columns() int {
	columns := 0
	for _, row := range t {
		if len(row) > columns {
			columns = len(row)
		}
	}

	return columns
}

// IsEmpty returns true for a missing cell value or an empty string. Whitespace
// is treated as content.
func IsEmpty(v any) bool {
	return v == nil || v == ""
}

func blank(row []any) bool {
	for _, v := range row {
		if !IsEmpty(v) {
			return false
		}
	}

	return true
}

// pad right-fills every row with empty cells up to the width of the widest row.
func pad(rows [][]any) Table {
	table := Table(rows)
	columns := table.Columns()

	for i, row := range table {
		if len(row) < columns {
			padded := make([]any, columns)
			copy(padded, row)
			for j := len(row); j < columns; j++ {
				padded[j] = ""
			}

			table[i] = padded
		}
	}

	return table
}

// parseValue returns int64 for integers, float64 for finite decimals and the
// original string for everything else.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}

	return s
}
