// Package money formats shilling amounts the way the storefront displays them.
package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Format renders an amount as "Ksh 1,250". Whole-shilling amounts drop the
// decimals; fractional amounts keep two.
func Format(amount float64) string {
	if amount == math.Trunc(amount) {
		return printer.Sprintf("Ksh %d", int64(amount))
	}
	return printer.Sprintf("Ksh %.2f", amount)
}
