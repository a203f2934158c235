package models

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySymbol prefixes every displayed amount.
const CurrencySymbol = "Rs."

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice renders an amount in whole currency units, e.g. "Rs. 2,500".
func FormatPrice(units int64) string {
	return pricePrinter.Sprintf("%s %d", CurrencySymbol, units)
}
