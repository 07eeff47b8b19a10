// Package encode turns a dataset.Frame into a dense float feature matrix.
//
// Numeric columns pass through as one feature each (missing cells become NaN).
// Boolean columns become 0/1. Every other column expands into one indicator
// per distinct value, named "<column>_<value>" with values in lexical order;
// missing cells set no indicator. Pass-through features come first, followed
// by indicator blocks in column order.
package encode

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/Caseyio/federal-bid-prediction/internal/dataset"
)

// Kind classifies a source column.
type Kind int

const (
	Numeric Kind = iota
	Boolean
	Categorical
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Boolean:
		return "boolean"
	case Categorical:
		return "categorical"
	default:
		return "unknown"
	}
}

// Column is the fitted description of one source column.
type Column struct {
	Name       string
	Kind       Kind
	Categories []string // Categorical only
}

// OneHot is a fitted encoder. The zero value is unfitted.
type OneHot struct {
	Columns []Column
}

// Fit inspects every column of f not named in exclude.
func (e *OneHot) Fit(f *dataset.Frame, exclude []string) error {
	if f == nil {
		return fmt.Errorf("encode: nil frame")
	}
	e.Columns = e.Columns[:0]
	for _, name := range f.Header {
		if slices.Contains(exclude, name) {
			continue
		}
		cells, err := f.Column(name)
		if err != nil {
			return err
		}
		e.Columns = append(e.Columns, inspect(name, cells))
	}
	if len(e.Columns) == 0 {
		return fmt.Errorf("encode: no feature columns left after exclusions")
	}
	return nil
}

// FitTransform fits on f and encodes it.
func (e *OneHot) FitTransform(f *dataset.Frame, exclude []string) ([][]float64, error) {
	if err := e.Fit(f, exclude); err != nil {
		return nil, err
	}
	return e.Transform(f)
}

// Transform encodes f with the fitted layout. Categories unseen at fit time
// set no indicator.
func (e *OneHot) Transform(f *dataset.Frame) ([][]float64, error) {
	if len(e.Columns) == 0 {
		return nil, fmt.Errorf("encode: encoder not fitted")
	}
	width := e.Width()
	out := make([][]float64, f.Len())
	for i := range out {
		out[i] = make([]float64, width)
	}

	offset := 0
	for _, c := range e.passThrough() {
		cells, err := f.Column(c.Name)
		if err != nil {
			return nil, err
		}
		for i, cell := range cells {
			v, err := c.scalar(cell)
			if err != nil {
				return nil, fmt.Errorf("encode: row %d column %s: %w", i+1, c.Name, err)
			}
			out[i][offset] = v
		}
		offset++
	}
	for _, c := range e.categorical() {
		cells, err := f.Column(c.Name)
		if err != nil {
			return nil, err
		}
		for i, cell := range cells {
			if dataset.IsNA(cell) {
				continue
			}
			if k, ok := slices.BinarySearch(c.Categories, strings.TrimSpace(cell)); ok {
				out[i][offset+k] = 1
			}
		}
		offset += len(c.Categories)
	}
	return out, nil
}

// Width is the number of encoded features.
func (e *OneHot) Width() int {
	n := 0
	for _, c := range e.Columns {
		if c.Kind == Categorical {
			n += len(c.Categories)
		} else {
			n++
		}
	}
	return n
}

// FeatureNames lists encoded feature names in matrix order.
func (e *OneHot) FeatureNames() []string {
	names := make([]string, 0, e.Width())
	for _, c := range e.passThrough() {
		names = append(names, c.Name)
	}
	for _, c := range e.categorical() {
		for _, v := range c.Categories {
			names = append(names, c.Name+"_"+v)
		}
	}
	return names
}

func (e *OneHot) passThrough() []Column {
	var out []Column
	for _, c := range e.Columns {
		if c.Kind != Categorical {
			out = append(out, c)
		}
	}
	return out
}

func (e *OneHot) categorical() []Column {
	var out []Column
	for _, c := range e.Columns {
		if c.Kind == Categorical {
			out = append(out, c)
		}
	}
	return out
}

func (c Column) scalar(cell string) (float64, error) {
	if dataset.IsNA(cell) {
		if c.Kind == Boolean {
			return 0, fmt.Errorf("missing boolean")
		}
		return math.NaN(), nil
	}
	s := strings.TrimSpace(cell)
	if c.Kind == Boolean {
		b, ok := parseBool(s)
		if !ok {
			return 0, fmt.Errorf("not a boolean: %q", cell)
		}
		if b {
			return 1, nil
		}
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", cell)
	}
	return v, nil
}

func inspect(name string, cells []string) Column {
	numeric, boolean, anyNA := true, true, false
	seen := map[string]struct{}{}
	for _, cell := range cells {
		if dataset.IsNA(cell) {
			anyNA = true
			continue
		}
		s := strings.TrimSpace(cell)
		seen[s] = struct{}{}
		if numeric {
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				numeric = false
			}
		}
		if boolean {
			if _, ok := parseBool(s); !ok {
				boolean = false
			}
		}
	}
	switch {
	case numeric:
		return Column{Name: name, Kind: Numeric}
	case boolean && !anyNA && len(seen) > 0:
		return Column{Name: name, Kind: Boolean}
	}
	cats := make([]string, 0, len(seen))
	for v := range seen {
		cats = append(cats, v)
	}
	slices.Sort(cats)
	return Column{Name: name, Kind: Categorical, Categories: cats}
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "True", "TRUE", "true":
		return true, true
	case "False", "FALSE", "false":
		return false, true
	}
	return false, false
}
