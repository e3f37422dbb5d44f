package docgen

import "github.com/asmelnikov/docgen-backend/internal/domain"

// buildRows turns the submission's nested table rows into the positional cell
// grid the table expander consumes. Columns must already be DrawOrder-sorted;
// each cell is the row's value for that column's key, or "" when the row does
// not carry it.
func buildRows(cols []domain.TableColumn, tableRows domain.Rows) [][]string {
	if len(cols) == 0 || len(tableRows) == 0 {
		return nil
	}

	out := make([][]string, len(tableRows))
	for i, row := range tableRows {
		cells := make([]string, len(cols))
		for j, col := range cols {
			if v, ok := row.Get(col.KeyName); ok {
				cells[j] = v
			}
		}
		out[i] = cells
	}
	return out
}
