// Package form holds the bid-estimate input controls: the fixed option sets,
// the bidder-count bounds and the single-row InputRecord built from them.
package form

import (
	"slices"
	"strconv"
)

// Option sets, in display order. The first entry of each is the default.
var (
	Agencies  = []string{"HHS", "CMS", "VA", "NIH"}
	NAICS     = []string{"541511", "541512", "541519"}
	SetAsides = []string{"None", "8(a)", "SDVOSB", "WOSB"}
)

// Bidder-count control bounds.
const (
	MinBidders     = 1
	MaxBidders     = 10
	DefaultBidders = 3
)

// InputRecord is one interaction's selection. It is rebuilt on every request
// and never stored.
type InputRecord struct {
	Agency   string
	NAICS    string
	SetAside string
	Bidders  int
}

// DefaultRecord returns the selection a fresh form starts with.
func DefaultRecord() InputRecord {
	return InputRecord{
		Agency:   Agencies[0],
		NAICS:    NAICS[0],
		SetAside: SetAsides[0],
		Bidders:  DefaultBidders,
	}
}

// Validate enforces the same limits the controls do.
func (r InputRecord) Validate() error {
	if !slices.Contains(Agencies, r.Agency) {
		return invalidInput("agency", r.Agency)
	}
	if !slices.Contains(NAICS, r.NAICS) {
		return invalidInput("naics", r.NAICS)
	}
	if !slices.Contains(SetAsides, r.SetAside) {
		return invalidInput("set_aside", r.SetAside)
	}
	if r.Bidders < MinBidders || r.Bidders > MaxBidders {
		return invalidInput("num_bidders", strconv.Itoa(r.Bidders))
	}
	return nil
}

// RowHeader names the columns of Row.
var RowHeader = []string{"agency", "naics", "set_aside", "num_bidders"}

// Row returns the record as a single table row aligned with RowHeader.
func (r InputRecord) Row() []string {
	return []string{r.Agency, r.NAICS, r.SetAside, strconv.Itoa(r.Bidders)}
}

// ParseBidders converts a submitted bidder count. Empty input yields the default.
func ParseBidders(s string) (int, error) {
	if s == "" {
		return DefaultBidders, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, invalidInput("num_bidders", s)
	}
	return n, nil
}
