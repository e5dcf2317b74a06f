// Package datetime provides date arithmetic for the date calculators: age,
// differences between dates, adding days and time zone conversion.
package datetime

import (
	"errors"
	"fmt"
	"strings"
	"time"

	cdt "cloudeng.io/datetime"
	"github.com/iwvelando/omnicalc/pkg/constants"
)

// DateLayout is the format expected for dates in requests and on the command line.
const DateLayout = constants.DateLayout

var (
	// ErrEndBeforeStart is returned when a range ends before it starts.
	ErrEndBeforeStart = errors.New("end date must not be before start date")

	// ErrFutureBirthDate is returned when a birth date lies after the reference date.
	ErrFutureBirthDate = errors.New("birth date is in the future")
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, err)
	}
	return t, nil
}

// Span is the distance between two calendar dates expressed both as a
// years/months/days breakdown and as totals.
type Span struct {
	Years      int `json:"years"`
	Months     int `json:"months"`
	Days       int `json:"days"`
	TotalDays  int `json:"totalDays"`
	TotalHours int `json:"totalHours"`
}

// Age returns how old someone born on birth is on today. Only the calendar
// dates of both arguments are considered.
func Age(birth, today time.Time) (Span, error) {
	birth, today = dateOnly(birth), dateOnly(today)
	if birth.After(today) {
		return Span{}, ErrFutureBirthDate
	}
	return span(birth, today), nil
}

// Difference returns the span from start to end. Only the calendar dates of
// both arguments are considered.
func Difference(start, end time.Time) (Span, error) {
	start, end = dateOnly(start), dateOnly(end)
	if end.Before(start) {
		return Span{}, ErrEndBeforeStart
	}
	return span(start, end), nil
}

// span breaks the distance into years, months and days. When the day of end
// is smaller than the day of start a month is borrowed using the length of
// the month preceding end's month. A start day past the end of that month
// counts from its last day, so days is never negative.
func span(start, end time.Time) Span {
	years := end.Year() - start.Year()
	months := int(end.Month()) - int(start.Month())
	days := end.Day() - start.Day()

	if days < 0 {
		months--
		prevYear, prevMonth := end.Year(), int(end.Month())-1
		if prevMonth == 0 {
			prevYear, prevMonth = prevYear-1, constants.MonthsPerYear
		}
		days = end.Day() + max(0, int(cdt.DaysInMonth(prevYear, cdt.Month(prevMonth)))-start.Day())
	}
	if months < 0 {
		years--
		months += constants.MonthsPerYear
	}

	// Duration overflows past about 292 years, so count whole days from the
	// Unix seconds of the two calendar dates instead.
	totalDays := int((dateOnly(end).Unix() - dateOnly(start).Unix()) / 86400)
	return Span{
		Years:      years,
		Months:     months,
		Days:       days,
		TotalDays:  totalDays,
		TotalHours: totalDays * 24,
	}
}

// AddDays returns the date days after start; negative values move backwards.
func AddDays(start time.Time, days int) time.Time {
	return start.AddDate(0, 0, days)
}

// SubtractDays returns the date days before start.
func SubtractDays(start time.Time, days int) time.Time {
	return start.AddDate(0, 0, -days)
}

// ConvertTimezone interprets the wall clock of t in the fromZone location and
// returns the same instant in toZone. Zones are IANA names such as
// "Asia/Kathmandu"; "Local" and "UTC" are also accepted.
func ConvertTimezone(t time.Time, fromZone, toZone string) (time.Time, error) {
	from, err := time.LoadLocation(fromZone)
	if err != nil {
		return time.Time{}, fmt.Errorf("unknown time zone %q: %w", fromZone, err)
	}
	to, err := time.LoadLocation(toZone)
	if err != nil {
		return time.Time{}, fmt.Errorf("unknown time zone %q: %w", toZone, err)
	}
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), from)
	return wall.In(to), nil
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return cdt.IsLeap(year)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
