// Package currency holds the supported currency catalog, converts amounts
// with a rate table and fetches live rates from an exchange rate API.
package currency

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCurrency is returned for a code outside the catalog or rate table.
var ErrUnknownCurrency = errors.New("unknown currency")

// Currency describes a supported currency.
type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

var catalog = []Currency{
	{"USD", "US Dollar", "$"},
	{"EUR", "Euro", "€"},
	{"GBP", "British Pound", "£"},
	{"JPY", "Japanese Yen", "¥"},
	{"INR", "Indian Rupee", "₹"},
	{"NPR", "Nepali Rupee", "Rs"},
	{"AUD", "Australian Dollar", "A$"},
	{"CAD", "Canadian Dollar", "C$"},
	{"CNY", "Chinese Yuan", "¥"},
	{"CHF", "Swiss Franc", "CHF"},
	{"AED", "UAE Dirham", "د.إ"},
	{"SGD", "Singapore Dollar", "S$"},
	{"MYR", "Malaysian Ringgit", "RM"},
	{"THB", "Thai Baht", "฿"},
	{"KRW", "South Korean Won", "₩"},
}

// Supported returns the catalog in display order.
func Supported() []Currency {
	out := make([]Currency, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a currency by its ISO code, ignoring case.
func Lookup(code string) (Currency, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	for _, c := range catalog {
		if c.Code == normalized {
			return c, nil
		}
	}
	return Currency{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
}
