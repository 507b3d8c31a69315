package domain

import "time"

// DailyTotal is one row of the progress index: words per day across goals.
type DailyTotal struct {
	Date  string
	Words int
	Chars int
	Goals int
}

type Report struct {
	GeneratedAt time.Time
	Goals       []WritingGoal
	Progress    []GoalProgress
	Stats       []GoalStats
}

// LedgerDelta is what one tracked save added to today's writing.
type LedgerDelta struct {
	Date     string
	Words    int
	Chars    int
	DayWords int
}

func (d LedgerDelta) Zero() bool {
	return d.Words <= 0 && d.Chars <= 0
}

type LedgerDay struct {
	Date  string
	Words int
	Chars int
}
