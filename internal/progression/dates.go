package progression

import (
	"fmt"
	"time"
)

const DayLayout = "2006-01-02"

// ParseDay parses a calendar-day string as UTC midnight.
func ParseDay(date string) (time.Time, error) {
	t, err := time.Parse(DayLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return t, nil
}

// FormatDay renders t's calendar day in t's own location.
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// DaysBetween returns a minus b in whole days, floored.
func DaysBetween(a, b string) (int, error) {
	ta, err := ParseDay(a)
	if err != nil {
		return 0, err
	}
	tb, err := ParseDay(b)
	if err != nil {
		return 0, err
	}
	// Both sides are UTC midnights, so the difference is a whole number of days.
	return int(ta.Sub(tb).Hours() / 24), nil
}

// AddDays shifts a calendar-day string by n days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDay(date)
	if err != nil {
		return "", err
	}
	return FormatDay(t.AddDate(0, 0, n)), nil
}

// YearOf returns the year of a calendar-day string, or 0 when it does not parse.
func YearOf(date string) int {
	t, err := ParseDay(date)
	if err != nil {
		return 0
	}
	return t.Year()
}
