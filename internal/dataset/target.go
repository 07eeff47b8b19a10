package dataset

import (
	"math"
	"strconv"
	"strings"
)

// DeriveLogTarget returns log(1 + x) for every value of column. Rows are
// numbered from 1 in errors, matching a spreadsheet view without the header.
func DeriveLogTarget(f *Frame, column string) ([]float64, error) {
	cells, err := f.Column(column)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(cells))
	for i, c := range cells {
		if IsNA(c) {
			return nil, cellError{row: i + 1, column: column, value: c, reason: "missing value"}
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		if err != nil {
			return nil, cellError{row: i + 1, column: column, value: c, reason: "not a number"}
		}
		if v <= -1 || math.IsInf(v, 0) {
			return nil, cellError{row: i + 1, column: column, value: c, reason: "outside log1p domain"}
		}
		out[i] = math.Log1p(v)
	}
	return out, nil
}
