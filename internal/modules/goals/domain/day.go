package domain

import (
	"time"

	"inkwell/internal/platform/calendar"
)

const DayLayout = calendar.Layout

// DayOf maps a timestamp to its UTC calendar day.
func DayOf(t time.Time) string {
	return calendar.Day(t)
}

func ParseDay(day string) (time.Time, error) {
	return calendar.Parse(day)
}

func AddDays(day string, n int) (string, error) {
	return calendar.AddDays(day, n)
}

func DaysBetween(start, end string) ([]string, error) {
	return calendar.Between(start, end)
}

func minDay(a, b string) string {
	if a < b {
		return a
	}
	return b
}
