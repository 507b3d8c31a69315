// Package calendar works with calendar days encoded as ISO dates (YYYY-MM-DD).
// Days are always derived in UTC so a timestamp maps to the same day on every
// machine that reads the vault.
package calendar

import (
	"fmt"
	"time"
)

const Layout = "2006-01-02"

func Day(t time.Time) string {
	return t.UTC().Format(Layout)
}

func Parse(day string) (time.Time, error) {
	t, err := time.Parse(Layout, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", day, err)
	}
	return t, nil
}

func Valid(day string) bool {
	_, err := time.Parse(Layout, day)
	return err == nil
}

func AddDays(day string, n int) (string, error) {
	t, err := Parse(day)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(Layout), nil
}

// Between lists every day from start to end inclusive. It returns an empty
// slice when start is after end.
func Between(start, end string) ([]string, error) {
	from, err := Parse(start)
	if err != nil {
		return nil, err
	}
	to, err := Parse(end)
	if err != nil {
		return nil, err
	}
	if from.After(to) {
		return []string{}, nil
	}
	out := make([]string, 0, int(to.Sub(from).Hours()/24)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format(Layout))
	}
	return out, nil
}

// Month returns the first and last day of the month containing t.
func Month(t time.Time) (string, string) {
	t = t.UTC()
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format(Layout), last.Format(Layout)
}

// ParseMonth accepts YYYY-MM.
func ParseMonth(month string) (time.Time, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse month %q: %w", month, err)
	}
	return t, nil
}
