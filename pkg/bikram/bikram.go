// Package bikram converts dates between the Gregorian calendar (AD) and the
// Bikram Sambat calendar (BS) used in Nepal.
//
// BS months have variable lengths that are defined per year by a static
// table. The supported range is exactly the coverage of that table: BS years
// 2000 through 2100, which corresponds to AD 1943-04-14 through 2044-04-13.
// The AD end date is derived from the table's day count, so AD coverage runs
// a little past the end of 2043. Dates outside the range are rejected rather
// than extrapolated.
//
// The published month lengths for 2096 BS add up to 364 days. They are kept
// as published, which shifts every later AD date by one day relative to a
// 365 day reading of that year.
//
// All functions are pure and safe for concurrent use.
package bikram

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is returned, possibly wrapped, for every conversion failure.
// Callers that only need the valid/invalid distinction should test for it
// with errors.Is.
var ErrInvalidDate = errors.New("invalid or out-of-range date")

// Reasons for a conversion failure. Each one wraps ErrInvalidDate.
var (
	ErrMonthOutOfRange = fmt.Errorf("%w: month out of range", ErrInvalidDate)
	ErrDayOutOfRange   = fmt.Errorf("%w: day out of range", ErrInvalidDate)
	ErrYearOutOfRange  = fmt.Errorf("%w: year out of range", ErrInvalidDate)
	ErrOutOfTable      = fmt.Errorf("%w: date outside supported table", ErrInvalidDate)
)

// MonthsPerYear is the number of months in a BS year.
const MonthsPerYear = 12

// monthNames are the BS month names ordered Baishakh (1) through Chaitra (12).
var monthNames = [MonthsPerYear]string{
	"Baishakh", "Jestha", "Ashadh", "Shrawan", "Bhadra", "Ashwin",
	"Kartik", "Mangsir", "Poush", "Magh", "Falgun", "Chaitra",
}

// AdDate is a date in the proleptic Gregorian calendar.
type AdDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// BsDate is a date in the Bikram Sambat calendar.
type BsDate struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	MonthName string `json:"monthName"`
}

// String returns the date as e.g. "April 14, 2023 AD".
func (d AdDate) String() string {
	return fmt.Sprintf("%s %d, %d AD", time.Month(d.Month), d.Day, d.Year)
}

// Time returns the date as midnight UTC.
func (d AdDate) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// String returns the date as e.g. "2080 Baishakh 1 BS".
func (d BsDate) String() string {
	return fmt.Sprintf("%d %s %d BS", d.Year, d.MonthName, d.Day)
}

// MonthNames returns the twelve BS month names in calendar order.
func MonthNames() []string {
	names := make([]string, MonthsPerYear)
	copy(names, monthNames[:])
	return names
}

// MonthName returns the name of the given 1-based BS month.
func MonthName(month int) (string, error) {
	if month < 1 || month > MonthsPerYear {
		return "", fmt.Errorf("%w: %d", ErrMonthOutOfRange, month)
	}
	return monthNames[month-1], nil
}

// lastBsYear is the final year covered by monthLengths.
const lastBsYear = firstBsYear + len(monthLengths) - 1

// DaysInMonth returns the number of days in the given BS month.
func DaysInMonth(year, month int) (int, error) {
	if year < firstBsYear || year > lastBsYear {
		return 0, fmt.Errorf("%w: %d BS", ErrYearOutOfRange, year)
	}
	if month < 1 || month > MonthsPerYear {
		return 0, fmt.Errorf("%w: %d", ErrMonthOutOfRange, month)
	}
	return monthLengths[year-firstBsYear][month-1], nil
}

// DaysInYear returns the number of days in the given BS year.
func DaysInYear(year int) (int, error) {
	if year < firstBsYear || year > lastBsYear {
		return 0, fmt.Errorf("%w: %d BS", ErrYearOutOfRange, year)
	}
	return yearLength(year), nil
}

func yearLength(year int) int {
	total := 0
	for _, days := range monthLengths[year-firstBsYear] {
		total += days
	}
	return total
}

// SupportedBsRange returns the first and last convertible BS dates.
func SupportedBsRange() (first, last BsDate) {
	first = BsDate{Year: firstBsYear, Month: 1, Day: 1, MonthName: monthNames[0]}
	last = BsDate{
		Year:      lastBsYear,
		Month:     MonthsPerYear,
		Day:       monthLengths[lastBsYear-firstBsYear][MonthsPerYear-1],
		MonthName: monthNames[MonthsPerYear-1],
	}
	return first, last
}

// SupportedAdRange returns the first and last convertible AD dates.
func SupportedAdRange() (first, last AdDate) {
	return anchorAd, lastAd
}
