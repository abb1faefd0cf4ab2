package solar

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// ReferenceYear is the calendar used to map day-of-year to months. It must be
// a non-leap year: the engine always models 365 days.
const ReferenceYear = 2023

// DaysInYear is the number of simulated days, indexed 0..364.
const DaysInYear = 365

var referenceLeap = julian.LeapYearGregorian(ReferenceYear)

func wrapDay(doy int) int {
	return ((doy % DaysInYear) + DaysInYear) % DaysInYear
}

func wrapMonth(m int) int {
	return ((m % 12) + 12) % 12
}

// DayOfYearToMonth returns the 0-based month (0=January) containing doy.
func DayOfYearToMonth(doy int) int {
	m, _ := julian.DayOfYearToCalendar(wrapDay(doy)+1, referenceLeap)
	return m - 1
}

// DateToDayOfYear maps a calendar date of any year onto the reference year.
// February 29 has no reference day and reports false.
func DateToDayOfYear(t time.Time) (int, bool) {
	if t.Month() == time.February && t.Day() == 29 {
		return 0, false
	}
	return julian.DayOfYear(ReferenceYear, int(t.Month()), t.Day(), referenceLeap) - 1, true
}

// MonthStartDay returns the 0-based day of year of the first day of month m.
func MonthStartDay(m int) int {
	return julian.DayOfYear(ReferenceYear, wrapMonth(m)+1, 1, referenceLeap) - 1
}

// MonthEndDay returns the 0-based day of year of the last day of month m.
func MonthEndDay(m int) int {
	m = wrapMonth(m)
	if m == 11 {
		return DaysInYear - 1
	}
	return MonthStartDay(m+1) - 1
}

// PeriodLength returns the number of days in the inclusive month range
// [startMonth, endMonth]. Ranges with startMonth > endMonth wrap over the
// new year (e.g. November to February).
func PeriodLength(startMonth, endMonth int) int {
	first := MonthStartDay(startMonth)
	last := MonthEndDay(endMonth)
	if last >= first {
		return last - first + 1
	}
	return DaysInYear - first + last + 1
}

// PeriodMidpoint returns the day of year halfway through the month range.
func PeriodMidpoint(startMonth, endMonth int) int {
	first := MonthStartDay(startMonth)
	return wrapDay(first + PeriodLength(startMonth, endMonth)/2)
}

// PeriodSampleDays returns every interval-th day of the month range, starting
// at its first day and wrapping past day 364 when the range does.
func PeriodSampleDays(startMonth, endMonth, interval int) []int {
	if interval < 1 {
		interval = 1
	}
	first := MonthStartDay(startMonth)
	length := PeriodLength(startMonth, endMonth)

	days := make([]int, 0, length/interval+1)
	for off := 0; off < length; off += interval {
		days = append(days, wrapDay(first+off))
	}
	return days
}
