package dataset

import (
	"errors"
	"fmt"
)

type missingColumnError struct{ name string }

func (e missingColumnError) Error() string { return "missing column: " + e.name }

func missingColumn(name string) error { return missingColumnError{name: name} }

// IsMissingColumn reports whether err stems from an absent CSV column.
func IsMissingColumn(err error) bool {
	var e missingColumnError
	return errors.As(err, &e)
}

// cellError points at a cell that could not be used.
type cellError struct {
	row    int
	column string
	value  string
	reason string
}

func (e cellError) Error() string {
	return fmt.Sprintf("row %d column %s: %s (%q)", e.row, e.column, e.reason, e.value)
}
