package predict

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usd = message.NewPrinter(language.AmericanEnglish)

// FormatUSD renders an amount as US currency with two decimals and thousands
// separators, e.g. $1,234,567.89.
func FormatUSD(amount float64) string {
	if amount < 0 {
		return usd.Sprintf("-$%.2f", -amount)
	}
	return usd.Sprintf("$%.2f", amount)
}
