package xlsx

// Bound truncates a table to at most MaxRows x MaxColumns and then drops every
// row that has no non-empty cells. The source table is not modified.
func Bound(table Table) Table {
	rows := min(table.Rows(), MaxRows)
	columns := min(table.Columns(), MaxColumns)
	bounded := make(Table, 0, rows)

	for _, row := range table[:rows] {
		if len(row) > columns {
			row = row[:columns]
		}

		if !blank(row) {
			bounded = append(bounded, append([]any{}, row...))
		}
	}

	return bounded
}
