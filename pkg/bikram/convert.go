package bikram

import (
	"fmt"
	"time"

	cdt "cloudeng.io/datetime"
)

// The epoch anchor: 1943-04-14 AD is 2000-01-01 BS, the first day of the table.
var (
	anchorAd      = AdDate{Year: 1943, Month: 4, Day: 14}
	anchorOrdinal = gregorianOrdinal(anchorAd.Year, anchorAd.Month, anchorAd.Day)
	tableDays     = totalTableDays()
	lastAd        = adFromOffset(tableDays - 1)
)

// AdToBs converts a Gregorian date to its Bikram Sambat equivalent.
func AdToBs(year, month, day int) (BsDate, error) {
	if month < 1 || month > MonthsPerYear {
		return BsDate{}, fmt.Errorf("%w: %d", ErrMonthOutOfRange, month)
	}
	if day < 1 || day > int(cdt.DaysInMonth(year, cdt.Month(month))) {
		return BsDate{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrDayOutOfRange, year, month, day)
	}
	if year < anchorAd.Year || year > lastAd.Year {
		return BsDate{}, fmt.Errorf("%w: %d AD", ErrYearOutOfRange, year)
	}

	offset := gregorianOrdinal(year, month, day) - anchorOrdinal
	if offset < 0 || offset >= tableDays {
		return BsDate{}, fmt.Errorf("%w: %04d-%02d-%02d AD", ErrOutOfTable, year, month, day)
	}

	bsYear := firstBsYear
	for offset >= yearLength(bsYear) {
		offset -= yearLength(bsYear)
		bsYear++
		if bsYear > lastBsYear {
			return BsDate{}, fmt.Errorf("%w: %04d-%02d-%02d AD", ErrOutOfTable, year, month, day)
		}
	}

	bsMonth := 1
	for _, days := range monthLengths[bsYear-firstBsYear] {
		if offset < days {
			break
		}
		offset -= days
		bsMonth++
	}

	return BsDate{
		Year:      bsYear,
		Month:     bsMonth,
		Day:       offset + 1,
		MonthName: monthNames[bsMonth-1],
	}, nil
}

// BsToAd converts a Bikram Sambat date to its Gregorian equivalent.
func BsToAd(year, month, day int) (AdDate, error) {
	if year < firstBsYear || year > lastBsYear {
		return AdDate{}, fmt.Errorf("%w: %d BS", ErrYearOutOfRange, year)
	}
	if month < 1 || month > MonthsPerYear {
		return AdDate{}, fmt.Errorf("%w: %d", ErrMonthOutOfRange, month)
	}
	lengths := monthLengths[year-firstBsYear]
	if day < 1 || day > lengths[month-1] {
		return AdDate{}, fmt.Errorf("%w: %04d-%02d-%02d BS", ErrDayOutOfRange, year, month, day)
	}

	offset := 0
	for y := firstBsYear; y < year; y++ {
		offset += yearLength(y)
	}
	for m := 0; m < month-1; m++ {
		offset += lengths[m]
	}
	offset += day - 1

	return adFromOffset(offset), nil
}

// TodayBs returns the BS date of the calendar day of now in its own location.
func TodayBs(now time.Time) (BsDate, error) {
	y, m, d := now.Date()
	return AdToBs(y, int(m), d)
}

// gregorianOrdinal returns the number of days from 0001-01-01 to the given
// date in the proleptic Gregorian calendar. Month and day must be valid.
func gregorianOrdinal(year, month, day int) int {
	prior := year - 1
	days := prior*365 + prior/4 - prior/100 + prior/400
	for m := 1; m < month; m++ {
		days += int(cdt.DaysInMonth(year, cdt.Month(m)))
	}
	return days + day - 1
}

// adFromOffset returns the AD date that lies offset days after the anchor.
func adFromOffset(offset int) AdDate {
	t := time.Date(anchorAd.Year, time.Month(anchorAd.Month), anchorAd.Day+offset, 0, 0, 0, 0, time.UTC)
	y, m, d := t.Date()
	return AdDate{Year: y, Month: int(m), Day: d}
}

func totalTableDays() int {
	total := 0
	for year := firstBsYear; year <= lastBsYear; year++ {
		total += yearLength(year)
	}
	return total
}
