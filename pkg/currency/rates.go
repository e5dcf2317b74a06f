package currency

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidRate is returned when a rate table entry is not positive.
var ErrInvalidRate = errors.New("exchange rate must be greater than zero")

// Rates is a table of exchange rates relative to Base.
type Rates struct {
	Base      string             `json:"base"`
	Date      string             `json:"date"`
	Rates     map[string]float64 `json:"rates"`
	FetchedAt time.Time          `json:"fetchedAt"`
	Stale     bool               `json:"stale,omitempty"`
}

// Rate returns how many units of to one unit of from buys.
func (r *Rates) Rate(from, to string) (float64, error) {
	fromRate, err := r.lookup(from)
	if err != nil {
		return 0, err
	}
	toRate, err := r.lookup(to)
	if err != nil {
		return 0, err
	}
	return toRate / fromRate, nil
}

// Convert converts amount between two currencies through the base currency.
func (r *Rates) Convert(amount float64, from, to string) (float64, error) {
	fromRate, err := r.lookup(from)
	if err != nil {
		return 0, err
	}
	toRate, err := r.lookup(to)
	if err != nil {
		return 0, err
	}
	return amount / fromRate * toRate, nil
}

func (r *Rates) lookup(code string) (float64, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == r.Base {
		return 1, nil
	}
	rate, ok := r.Rates[normalized]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	if rate <= 0 {
		return 0, fmt.Errorf("%w: %s = %g", ErrInvalidRate, normalized, rate)
	}
	return rate, nil
}

// Supported restricts the table to the catalog currencies.
func (r *Rates) Supported() map[string]float64 {
	out := make(map[string]float64, len(catalog))
	for _, c := range catalog {
		if rate, err := r.lookup(c.Code); err == nil {
			out[c.Code] = rate
		}
	}
	return out
}
