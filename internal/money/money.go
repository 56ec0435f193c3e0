// Package money formats rupiah amounts the way the studio's documents show
// them.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

// FormatIDR renders an amount as whole rupiah with Indonesian digit
// grouping, e.g. Rp25.000.000. Fractions are rounded away.
func FormatIDR(amount decimal.Decimal) string {
	whole := amount.Round(0).IntPart()
	if whole < 0 {
		return "-Rp" + printer.Sprintf("%d", -whole)
	}
	return "Rp" + printer.Sprintf("%d", whole)
}

// Sum adds up amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
