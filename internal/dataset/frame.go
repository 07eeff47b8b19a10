// Package dataset loads the training CSV into an immutable string table and
// derives the regression target from it.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Column names the fit job depends on.
const (
	ColAwardAmount = "award_amount"
	ColLogAward    = "log_award"
	ColAwardID     = "award_id"
	ColStartDate   = "start_date"
	ColEndDate     = "end_date"
)

// RequiredColumns must be present in every training file.
var RequiredColumns = []string{ColAwardAmount, ColAwardID, ColStartDate, ColEndDate}

// Frame is a header plus rows of raw cells. Every row has len(Header) cells.
type Frame struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// LoadCSV reads the file at path.
func LoadCSV(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	fr, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fr, nil
}

// ReadCSV parses a header row followed by data rows.
func ReadCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("empty dataset: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header = append([]string(nil), header...)
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	fr := &Frame{Header: header}
	if err := fr.buildIndex(); err != nil {
		return nil, err
	}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(fr.Rows)+1, err)
		}
		fr.Rows = append(fr.Rows, rec)
	}
	return fr, nil
}

func (f *Frame) buildIndex() error {
	f.index = make(map[string]int, len(f.Header))
	for i, h := range f.Header {
		if h == "" {
			return fmt.Errorf("header column %d is empty", i)
		}
		if _, dup := f.index[h]; dup {
			return fmt.Errorf("duplicate column %q", h)
		}
		f.index[h] = i
	}
	return nil
}

// Len returns the number of data rows.
func (f *Frame) Len() int { return len(f.Rows) }

// Index returns the position of a column, or -1.
func (f *Frame) Index(name string) int {
	if f.index == nil {
		if err := f.buildIndex(); err != nil {
			return -1
		}
	}
	if i, ok := f.index[name]; ok {
		return i
	}
	return -1
}

// Column returns a copy of one column's cells.
func (f *Frame) Column(name string) ([]string, error) {
	j := f.Index(name)
	if j < 0 {
		return nil, missingColumn(name)
	}
	out := make([]string, len(f.Rows))
	for i, row := range f.Rows {
		out[i] = row[j]
	}
	return out, nil
}

// Require checks that every named column exists.
func (f *Frame) Require(names ...string) error {
	for _, n := range names {
		if f.Index(n) < 0 {
			return missingColumn(n)
		}
	}
	return nil
}
