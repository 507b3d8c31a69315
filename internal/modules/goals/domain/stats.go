package domain

import (
	"fmt"
	"math"
	"sort"
	"time"
)

type DateRange struct {
	Start string
	End   string
}

func (r DateRange) Contains(day string) bool {
	return r.Start <= day && day <= r.End
}

// DateRangeForPeriod returns the period window containing ref. Weeks begin on
// weekStartsOn (0 = Sunday).
func DateRangeForPeriod(period GoalType, ref time.Time, weekStartsOn int) (DateRange, error) {
	ref = ref.UTC()
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	switch period {
	case GoalTypeDaily:
		return DateRange{Start: day.Format(DayLayout), End: day.Format(DayLayout)}, nil
	case GoalTypeWeekly:
		if weekStartsOn < 0 || weekStartsOn > 6 {
			return DateRange{}, fmt.Errorf("week starts on must be 0..6, got %d", weekStartsOn)
		}
		offset := (int(day.Weekday()) - weekStartsOn + 7) % 7
		start := day.AddDate(0, 0, -offset)
		return DateRange{Start: start.Format(DayLayout), End: start.AddDate(0, 0, 6).Format(DayLayout)}, nil
	case GoalTypeMonthly:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		return DateRange{Start: start.Format(DayLayout), End: start.AddDate(0, 1, -1).Format(DayLayout)}, nil
	case GoalTypeYearly:
		return DateRange{
			Start: fmt.Sprintf("%04d-01-01", day.Year()),
			End:   fmt.Sprintf("%04d-12-31", day.Year()),
		}, nil
	default:
		return DateRange{}, period.Validate()
	}
}

type PeriodTotals struct {
	Range        DateRange
	WordsWritten int
	CharsWritten int
	DayCount     int
}

// AggregateForPeriod sums the rows dated inside the period containing ref and
// counts the distinct dates among them.
func AggregateForPeriod(period GoalType, progress []GoalProgress, ref time.Time, weekStartsOn int) (PeriodTotals, error) {
	window, err := DateRangeForPeriod(period, ref, weekStartsOn)
	if err != nil {
		return PeriodTotals{}, err
	}
	totals := PeriodTotals{Range: window}
	days := map[string]struct{}{}
	for _, row := range progress {
		if !window.Contains(row.Date) {
			continue
		}
		totals.WordsWritten += row.WordsWritten
		totals.CharsWritten += row.CharsWritten
		days[row.Date] = struct{}{}
	}
	totals.DayCount = len(days)
	return totals, nil
}

// Percent is round(achieved/target*100) and 0 for a non-positive target. It
// is not clamped.
func Percent(achieved, target int) int {
	if target <= 0 {
		return 0
	}
	return int(math.Round(float64(achieved) / float64(target) * 100))
}

func ClampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// DailyWords collapses rows to words per date. Every active goal records the
// same writing, so when several goals cover a date the largest row wins.
func DailyWords(progress []GoalProgress) map[string]int {
	out := map[string]int{}
	for _, row := range progress {
		if cur, ok := out[row.Date]; !ok || row.WordsWritten > cur {
			out[row.Date] = row.WordsWritten
		}
	}
	return out
}

// CurrentStreak counts consecutive days with words, walking back from today.
// A day without words, today included, ends the streak.
func CurrentStreak(progress []GoalProgress, today string) int {
	daily := DailyWords(progress)
	t, err := ParseDay(today)
	if err != nil {
		return 0
	}
	streak := 0
	for daily[t.Format(DayLayout)] > 0 {
		streak++
		t = t.AddDate(0, 0, -1)
	}
	return streak
}

func LongestStreak(progress []GoalProgress) int {
	daily := DailyWords(progress)
	days := make([]string, 0, len(daily))
	for day, words := range daily {
		if words > 0 {
			days = append(days, day)
		}
	}
	sort.Strings(days)

	longest, run := 0, 0
	prev := time.Time{}
	for _, day := range days {
		t, err := ParseDay(day)
		if err != nil {
			continue
		}
		if !prev.IsZero() && t.Equal(prev.AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = t
	}
	return longest
}

func ActiveDays(progress []GoalProgress) int {
	count := 0
	for _, words := range DailyWords(progress) {
		if words > 0 {
			count++
		}
	}
	return count
}

type CalendarCell struct {
	Date    string
	Words   int
	GoalMet bool
}

// Calendar returns one cell per day of the month containing month. GoalMet
// is false for every cell when dailyTarget is not positive.
func Calendar(progress []GoalProgress, month time.Time, dailyTarget int) []CalendarCell {
	daily := DailyWords(progress)
	month = month.UTC()
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)
	cells := make([]CalendarCell, 0, 31)
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		day := d.Format(DayLayout)
		words := daily[day]
		cells = append(cells, CalendarCell{
			Date:    day,
			Words:   words,
			GoalMet: dailyTarget > 0 && words >= dailyTarget,
		})
	}
	return cells
}

type GoalStats struct {
	Goal           WritingGoal
	Period         PeriodTotals
	Percent        int
	RemainingWords int
	CurrentStreak  int
	LongestStreak  int
	DaysActive     int
}

// ComputeGoalStats summarises a goal's rows for the period containing ref.
func ComputeGoalStats(goal WritingGoal, progress []GoalProgress, ref time.Time, weekStartsOn int) (GoalStats, error) {
	rows := ProgressForGoal(progress, goal.ID)
	totals, err := AggregateForPeriod(goal.Type, rows, ref, weekStartsOn)
	if err != nil {
		return GoalStats{}, err
	}
	remaining := goal.TargetWords - totals.WordsWritten
	if remaining < 0 {
		remaining = 0
	}
	return GoalStats{
		Goal:           goal,
		Period:         totals,
		Percent:        Percent(totals.WordsWritten, goal.TargetWords),
		RemainingWords: remaining,
		CurrentStreak:  CurrentStreak(rows, DayOf(ref)),
		LongestStreak:  LongestStreak(rows),
		DaysActive:     ActiveDays(rows),
	}, nil
}
