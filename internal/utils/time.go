package utils

import "time"

// FormatLocal returns the provided time formatted in loc.
func FormatLocal(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(time.RFC1123)
}

// WeekdayOffset is the number of empty cells before the first day of a
// month in a Sunday-first calendar grid.
func WeekdayOffset(year int, month time.Month) int {
	return int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// DaysIn returns the number of days in a month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
