package datemath

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidMonth is returned for a month outside 1..12
	ErrInvalidMonth = errors.New("invalid month")
	// ErrInvalidYear is returned for a year below 1
	ErrInvalidYear = errors.New("invalid year")
)

var monthAbbrevs = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Fixed table; February is always 28.
var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// ValidateMonth checks that month is in 1..12
func ValidateMonth(month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: %d (want 1-12)", ErrInvalidMonth, month)
	}
	return nil
}

// FirstWeekday returns the Sunday-first index (0=Sunday .. 6=Saturday)
// of the first day of the given month
func FirstWeekday(year, month int) (int, error) {
	if year < 1 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	if err := ValidateMonth(month); err != nil {
		return 0, err
	}

	first := time.Date(year, time.Month(month), 1, 12, 0, 0, 0, time.UTC)

	// Monday-based index shifted by one and wrapped, i.e. Sunday-first
	mondayBased := (int(first.Weekday()) + 6) % 7
	return (mondayBased + 1) % 7, nil
}

// DaysInMonth returns the day count from the fixed non-leap table.
// February is 28 regardless of year.
func DaysInMonth(month int) (int, error) {
	if err := ValidateMonth(month); err != nil {
		return 0, err
	}
	return monthDays[month-1], nil
}

// DaysInMonthLeapAware returns the real Gregorian day count
func DaysInMonthLeapAware(year, month int) (int, error) {
	if year < 1 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	if err := ValidateMonth(month); err != nil {
		return 0, err
	}
	// Day 0 of the next month is the last day of this one
	last := time.Date(year, time.Month(month)+1, 0, 12, 0, 0, 0, time.UTC)
	return last.Day(), nil
}

// MonthAbbrev returns the three-letter English month name ("Jan".."Dec")
func MonthAbbrev(month int) (string, error) {
	if err := ValidateMonth(month); err != nil {
		return "", err
	}
	return monthAbbrevs[month-1], nil
}

// DateKey formats a date as unpadded "M/D/Y", e.g. "3/4/2017"
func DateKey(year, month, day int) string {
	return fmt.Sprintf("%d/%d/%d", month, day, year)
}
