package bikram

import (
	"errors"
	"testing"
	"time"
)

func TestAdToBs(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month    int
		day      int
		expected BsDate
	}{
		{
			name:     "Epoch anchor",
			year:     1943,
			month:    4,
			day:      14,
			expected: BsDate{Year: 2000, Month: 1, Day: 1, MonthName: "Baishakh"},
		},
		{
			name:     "One AD year after the anchor",
			year:     1944,
			month:    4,
			day:      14,
			expected: BsDate{Year: 2001, Month: 1, Day: 2, MonthName: "Baishakh"},
		},
		{
			name:     "New Year 2080",
			year:     2023,
			month:    4,
			day:      14,
			expected: BsDate{Year: 2080, Month: 1, Day: 1, MonthName: "Baishakh"},
		},
		{
			name:     "Gregorian new year 2024",
			year:     2024,
			month:    1,
			day:      1,
			expected: BsDate{Year: 2080, Month: 9, Day: 16, MonthName: "Poush"},
		},
		{
			name:     "Mid Kartik",
			year:     2023,
			month:    10,
			day:      24,
			expected: BsDate{Year: 2080, Month: 7, Day: 7, MonthName: "Kartik"},
		},
		{
			name:     "Leap day in century year",
			year:     2000,
			month:    2,
			day:      29,
			expected: BsDate{Year: 2056, Month: 11, Day: 17, MonthName: "Falgun"},
		},
		{
			name:     "Leap day 2024",
			year:     2024,
			month:    2,
			day:      29,
			expected: BsDate{Year: 2080, Month: 11, Day: 17, MonthName: "Falgun"},
		},
		{
			name:     "End of first AD year",
			year:     1943,
			month:    12,
			day:      31,
			expected: BsDate{Year: 2000, Month: 9, Day: 16, MonthName: "Poush"},
		},
		{
			name:     "Last supported day",
			year:     2044,
			month:    4,
			day:      13,
			expected: BsDate{Year: 2100, Month: 12, Day: 30, MonthName: "Chaitra"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := AdToBs(tt.year, tt.month, tt.day)
			if err != nil {
				t.Fatalf("AdToBs() error = %v", err)
			}
			if result != tt.expected {
				t.Errorf("AdToBs() = %+v, expected %+v", result, tt.expected)
			}
		})
	}
}

func TestBsToAd(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month    int
		day      int
		expected AdDate
	}{
		{
			name:     "Epoch anchor",
			year:     2000,
			month:    1,
			day:      1,
			expected: AdDate{Year: 1943, Month: 4, Day: 14},
		},
		{
			name:     "New Year 2080",
			year:     2080,
			month:    1,
			day:      1,
			expected: AdDate{Year: 2023, Month: 4, Day: 14},
		},
		{
			name:     "New Year 2081",
			year:     2081,
			month:    1,
			day:      1,
			expected: AdDate{Year: 2024, Month: 4, Day: 13},
		},
		{
			name:     "Poush 16 2080",
			year:     2080,
			month:    9,
			day:      16,
			expected: AdDate{Year: 2024, Month: 1, Day: 1},
		},
		{
			name:     "Last supported day",
			year:     2100,
			month:    12,
			day:      30,
			expected: AdDate{Year: 2044, Month: 4, Day: 13},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := BsToAd(tt.year, tt.month, tt.day)
			if err != nil {
				t.Fatalf("BsToAd() error = %v", err)
			}
			if result != tt.expected {
				t.Errorf("BsToAd() = %+v, expected %+v", result, tt.expected)
			}
		})
	}
}

func TestAdToBsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		year   int
		month  int
		day    int
		reason error
	}{
		{name: "Year before range", year: 1900, month: 1, day: 1, reason: ErrYearOutOfRange},
		{name: "Year after range", year: 2045, month: 1, day: 1, reason: ErrYearOutOfRange},
		{name: "Day before anchor", year: 1943, month: 4, day: 13, reason: ErrOutOfTable},
		{name: "Start of first AD year", year: 1943, month: 1, day: 1, reason: ErrOutOfTable},
		{name: "Day after last supported", year: 2044, month: 4, day: 14, reason: ErrOutOfTable},
		{name: "Month zero", year: 2000, month: 0, day: 1, reason: ErrMonthOutOfRange},
		{name: "Month thirteen", year: 2000, month: 13, day: 1, reason: ErrMonthOutOfRange},
		{name: "Negative month", year: 2000, month: -1, day: 1, reason: ErrMonthOutOfRange},
		{name: "Day zero", year: 2000, month: 1, day: 0, reason: ErrDayOutOfRange},
		{name: "Negative day", year: 2000, month: 1, day: -5, reason: ErrDayOutOfRange},
		{name: "April 31", year: 2020, month: 4, day: 31, reason: ErrDayOutOfRange},
		{name: "Feb 29 in non-leap year", year: 2023, month: 2, day: 29, reason: ErrDayOutOfRange},
		{name: "Feb 29 in non-leap century", year: 1900, month: 2, day: 29, reason: ErrDayOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := AdToBs(tt.year, tt.month, tt.day)
			if err == nil {
				t.Fatalf("AdToBs() expected error but got %+v", result)
			}
			if !errors.Is(err, ErrInvalidDate) {
				t.Errorf("AdToBs() error = %v, expected it to wrap ErrInvalidDate", err)
			}
			if !errors.Is(err, tt.reason) {
				t.Errorf("AdToBs() error = %v, expected reason %v", err, tt.reason)
			}
			if result != (BsDate{}) {
				t.Errorf("AdToBs() returned partial result %+v", result)
			}
		})
	}
}

func TestBsToAdInvalid(t *testing.T) {
	tests := []struct {
		name   string
		year   int
		month  int
		day    int
		reason error
	}{
		{name: "Month thirteen", year: 2100, month: 13, day: 1, reason: ErrMonthOutOfRange},
		{name: "Month zero", year: 2080, month: 0, day: 1, reason: ErrMonthOutOfRange},
		{name: "Day zero", year: 2080, month: 1, day: 0, reason: ErrDayOutOfRange},
		{name: "Negative day", year: 2080, month: 1, day: -1, reason: ErrDayOutOfRange},
		{name: "Day past month length", year: 2080, month: 1, day: 32, reason: ErrDayOutOfRange},
		{name: "Day 32 in a 31 day month", year: 2080, month: 3, day: 32, reason: ErrDayOutOfRange},
		{name: "Year before table", year: 1999, month: 12, day: 30, reason: ErrYearOutOfRange},
		{name: "Year after table", year: 2101, month: 1, day: 1, reason: ErrYearOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := BsToAd(tt.year, tt.month, tt.day)
			if err == nil {
				t.Fatalf("BsToAd() expected error but got %+v", result)
			}
			if !errors.Is(err, ErrInvalidDate) {
				t.Errorf("BsToAd() error = %v, expected it to wrap ErrInvalidDate", err)
			}
			if !errors.Is(err, tt.reason) {
				t.Errorf("BsToAd() error = %v, expected reason %v", err, tt.reason)
			}
			if result != (AdDate{}) {
				t.Errorf("BsToAd() returned partial result %+v", result)
			}
		})
	}
}

func TestRoundTripFromAd(t *testing.T) {
	first, last := SupportedAdRange()
	start := first.Time()
	end := last.Time()

	count := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		bs, err := AdToBs(day.Year(), int(day.Month()), day.Day())
		if err != nil {
			t.Fatalf("AdToBs(%s) error = %v", day.Format("2006-01-02"), err)
		}
		ad, err := BsToAd(bs.Year, bs.Month, bs.Day)
		if err != nil {
			t.Fatalf("BsToAd(%+v) error = %v", bs, err)
		}
		if !ad.Time().Equal(day) {
			t.Fatalf("round trip of %s returned %+v via %+v", day.Format("2006-01-02"), ad, bs)
		}
		count++
	}

	if count != tableDays {
		t.Errorf("round trip covered %d days, expected %d", count, tableDays)
	}
}

func TestRoundTripFromBs(t *testing.T) {
	previous := time.Time{}
	for year := firstBsYear; year <= lastBsYear; year++ {
		for month := 1; month <= MonthsPerYear; month++ {
			days, err := DaysInMonth(year, month)
			if err != nil {
				t.Fatalf("DaysInMonth(%d, %d) error = %v", year, month, err)
			}
			for day := 1; day <= days; day++ {
				ad, err := BsToAd(year, month, day)
				if err != nil {
					t.Fatalf("BsToAd(%d, %d, %d) error = %v", year, month, day, err)
				}
				if !previous.IsZero() && ad.Time().Sub(previous) != 24*time.Hour {
					t.Fatalf("BsToAd(%d, %d, %d) = %+v is not one day after %s",
						year, month, day, ad, previous.Format("2006-01-02"))
				}
				previous = ad.Time()

				bs, err := AdToBs(ad.Year, ad.Month, ad.Day)
				if err != nil {
					t.Fatalf("AdToBs(%+v) error = %v", ad, err)
				}
				if bs.Year != year || bs.Month != month || bs.Day != day {
					t.Fatalf("round trip of %d-%d-%d BS returned %+v", year, month, day, bs)
				}
			}
		}
	}
}

// shortBsYears lists table years known to sum to fewer than 365 days. The
// published month lengths for 2096 BS add up to 364 and are kept as published.
var shortBsYears = map[int]int{2096: 364}

func TestMonthLengthConformance(t *testing.T) {
	for year := firstBsYear; year < lastBsYear; year++ {
		start, err := BsToAd(year, 1, 1)
		if err != nil {
			t.Fatalf("BsToAd(%d, 1, 1) error = %v", year, err)
		}
		next, err := BsToAd(year+1, 1, 1)
		if err != nil {
			t.Fatalf("BsToAd(%d, 1, 1) error = %v", year+1, err)
		}

		days, err := DaysInYear(year)
		if err != nil {
			t.Fatalf("DaysInYear(%d) error = %v", year, err)
		}
		gap := int(next.Time().Sub(start.Time()).Hours() / 24)
		if days != gap {
			t.Errorf("year %d BS has %d days in table but %d days between new years", year, days, gap)
		}
		if want, ok := shortBsYears[year]; ok {
			if days != want {
				t.Errorf("year %d BS has %d days, expected the published %d", year, days, want)
			}
			continue
		}
		if days < 365 || days > 366 {
			t.Errorf("year %d BS has implausible length %d", year, days)
		}
	}
}

func TestBoundaries(t *testing.T) {
	firstBs, lastBs := SupportedBsRange()
	firstAd, lastAd := SupportedAdRange()

	if got, err := BsToAd(firstBs.Year, firstBs.Month, firstBs.Day); err != nil || got != firstAd {
		t.Errorf("BsToAd(first) = %+v, %v; expected %+v", got, err, firstAd)
	}
	if got, err := BsToAd(lastBs.Year, lastBs.Month, lastBs.Day); err != nil || got != lastAd {
		t.Errorf("BsToAd(last) = %+v, %v; expected %+v", got, err, lastAd)
	}
	if got, err := AdToBs(firstAd.Year, firstAd.Month, firstAd.Day); err != nil || got != firstBs {
		t.Errorf("AdToBs(first) = %+v, %v; expected %+v", got, err, firstBs)
	}
	if got, err := AdToBs(lastAd.Year, lastAd.Month, lastAd.Day); err != nil || got != lastBs {
		t.Errorf("AdToBs(last) = %+v, %v; expected %+v", got, err, lastBs)
	}

	before := firstAd.Time().AddDate(0, 0, -1)
	if _, err := AdToBs(before.Year(), int(before.Month()), before.Day()); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("AdToBs(day before range) error = %v, expected ErrInvalidDate", err)
	}
	after := lastAd.Time().AddDate(0, 0, 1)
	if _, err := AdToBs(after.Year(), int(after.Month()), after.Day()); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("AdToBs(day after range) error = %v, expected ErrInvalidDate", err)
	}
	if _, err := BsToAd(firstBs.Year-1, 12, 30); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("BsToAd(day before range) error = %v, expected ErrInvalidDate", err)
	}
	if _, err := BsToAd(lastBs.Year, lastBs.Month, lastBs.Day+1); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("BsToAd(day after range) error = %v, expected ErrInvalidDate", err)
	}
	if _, err := BsToAd(lastBs.Year+1, 1, 1); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("BsToAd(first day after table) error = %v, expected ErrInvalidDate", err)
	}
}

func TestSupportedRangesFollowTable(t *testing.T) {
	firstBs, lastBs := SupportedBsRange()
	if firstBs.Year != 2000 || lastBs.Year != 2100 {
		t.Errorf("SupportedBsRange() years = %d..%d, expected 2000..2100", firstBs.Year, lastBs.Year)
	}
	firstAd, lastAd := SupportedAdRange()
	if firstAd.Year != 1943 {
		t.Errorf("SupportedAdRange() first year = %d, expected 1943", firstAd.Year)
	}
	if lastAd != (AdDate{Year: 2044, Month: 4, Day: 13}) {
		t.Errorf("SupportedAdRange() last = %+v, expected 2044-04-13", lastAd)
	}
}

func TestTodayBs(t *testing.T) {
	loc := time.FixedZone("NPT", 5*3600+45*60)
	now := time.Date(2023, time.April, 14, 23, 30, 0, 0, loc)

	result, err := TodayBs(now)
	if err != nil {
		t.Fatalf("TodayBs() error = %v", err)
	}
	if result.Year != 2080 || result.Month != 1 || result.Day != 1 {
		t.Errorf("TodayBs() = %+v, expected 2080-01-01", result)
	}
}
