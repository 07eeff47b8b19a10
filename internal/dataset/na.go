package dataset

import "strings"

// naTokens are the cell spellings read as missing, the same set pandas uses.
var naTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// IsNA reports whether a raw cell denotes a missing value.
func IsNA(cell string) bool {
	_, ok := naTokens[strings.TrimSpace(cell)]
	return ok
}
