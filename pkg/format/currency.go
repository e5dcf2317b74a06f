// Package format renders calculator results for people: grouped numbers,
// money amounts and long-form dates.
package format

import (
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns an amount with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	return Money(amount, "$")
}

// Money returns an amount prefixed by symbol with thousands separators
// (e.g., "Rs1,234.56"). A negative sign precedes the symbol.
func Money(amount float64, symbol string) string {
	formatted := printer.Sprintf("%.2f", math.Abs(amount))
	if amount < 0 {
		return "-" + symbol + formatted
	}
	return symbol + formatted
}

// Number returns value with thousands separators and the given number of decimals.
func Number(value float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return printer.Sprintf("%.*f", decimals, value)
}

// Integer returns value with thousands separators.
func Integer(value int) string {
	return printer.Sprintf("%d", value)
}

// LongDate renders a date as e.g. "Monday, January 2, 2006".
func LongDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}
