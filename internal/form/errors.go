package form

import (
	"errors"
	"fmt"
)

// invalidInputError reports a value outside a control's allowed set or range.
type invalidInputError struct {
	field string
	value string
}

func (e invalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.field, e.value)
}

func invalidInput(field, value string) error {
	return invalidInputError{field: field, value: value}
}

// IsInvalidInput reports whether err (or anything it wraps) is a rejected form value.
func IsInvalidInput(err error) bool {
	var e invalidInputError
	return errors.As(err, &e)
}

// InvalidField returns the offending field name, or "" when err is not an input error.
func InvalidField(err error) string {
	var e invalidInputError
	if errors.As(err, &e) {
		return e.field
	}
	return ""
}
