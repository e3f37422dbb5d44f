package docx

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SumColumn totals column idx of the table rows as decimal numbers. Empty or
// absent cells count as zero. The result is rounded to 2 decimal places.
func SumColumn(rows [][]string, idx int) (float64, error) {
	var sum float64
	for i, row := range rows {
		if idx >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[idx])
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return 0, fmt.Errorf("sum column %d: row %d value %q is not a number", idx, i, cell)
		}
		sum += v
	}
	return math.Round(sum*100) / 100, nil
}
