package domain_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"inkwell/internal/modules/goals/domain"
)

func row(goalID, date string, words int) domain.GoalProgress {
	return domain.GoalProgress{GoalID: goalID, Date: date, WordsWritten: words, CharsWritten: words * 5}
}

func TestDateRangeForPeriod(t *testing.T) {
	t.Parallel()
	// 2024-03-06 is a Wednesday.
	ref := time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC)
	cases := []struct {
		period       domain.GoalType
		weekStartsOn int
		want         domain.DateRange
	}{
		{domain.GoalTypeDaily, 1, domain.DateRange{Start: "2024-03-06", End: "2024-03-06"}},
		{domain.GoalTypeWeekly, 1, domain.DateRange{Start: "2024-03-04", End: "2024-03-10"}},
		{domain.GoalTypeWeekly, 0, domain.DateRange{Start: "2024-03-03", End: "2024-03-09"}},
		{domain.GoalTypeWeekly, 3, domain.DateRange{Start: "2024-03-06", End: "2024-03-12"}},
		{domain.GoalTypeMonthly, 1, domain.DateRange{Start: "2024-03-01", End: "2024-03-31"}},
		{domain.GoalTypeYearly, 1, domain.DateRange{Start: "2024-01-01", End: "2024-12-31"}},
	}
	for _, tc := range cases {
		got, err := domain.DateRangeForPeriod(tc.period, ref, tc.weekStartsOn)
		if err != nil {
			t.Fatalf("%s: %v", tc.period, err)
		}
		if got != tc.want {
			t.Fatalf("%s/%d: expected %+v, got %+v", tc.period, tc.weekStartsOn, tc.want, got)
		}
	}
	if _, err := domain.DateRangeForPeriod("hourly", ref, 1); err == nil {
		t.Fatalf("expected error for unknown period")
	}
}

func TestAggregateForPeriodSumInvariant(t *testing.T) {
	t.Parallel()
	progress := []domain.GoalProgress{
		row("g", "2024-02-29", 1000),
		row("g", "2024-03-01", 100),
		row("g", "2024-03-04", 200),
		row("g", "2024-03-31", 300),
		row("g", "2024-04-01", 5000),
	}
	ref := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	totals, err := domain.AggregateForPeriod(domain.GoalTypeMonthly, progress, ref, 1)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	expected := 0
	for _, p := range progress {
		if totals.Range.Contains(p.Date) {
			expected += p.WordsWritten
		}
	}
	if totals.WordsWritten != expected || expected != 600 {
		t.Fatalf("expected %d (600) words, got %d", expected, totals.WordsWritten)
	}
	if totals.CharsWritten != 3000 || totals.DayCount != 3 {
		t.Fatalf("unexpected totals %+v", totals)
	}
}

func TestAggregateWindowShiftsWithReference(t *testing.T) {
	t.Parallel()
	progress := []domain.GoalProgress{row("g", "2024-03-03", 7), row("g", "2024-03-04", 11)}
	// Monday-start weeks: Sunday 03-03 closes one week, Monday 03-04 opens the next.
	sunday := time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC)
	monday := sunday.AddDate(0, 0, 1)

	before, _ := domain.AggregateForPeriod(domain.GoalTypeWeekly, progress, sunday, 1)
	after, _ := domain.AggregateForPeriod(domain.GoalTypeWeekly, progress, monday, 1)
	if before.WordsWritten != 7 || after.WordsWritten != 11 {
		t.Fatalf("expected 7 then 11, got %d then %d", before.WordsWritten, after.WordsWritten)
	}
	wantRange, _ := domain.DateRangeForPeriod(domain.GoalTypeWeekly, monday, 1)
	if after.Range != wantRange {
		t.Fatalf("aggregate window %+v differs from period range %+v", after.Range, wantRange)
	}

	day, _ := domain.AggregateForPeriod(domain.GoalTypeDaily, progress, monday, 1)
	if day.WordsWritten != 11 || day.DayCount != 1 {
		t.Fatalf("unexpected daily totals %+v", day)
	}
}

func TestPercent(t *testing.T) {
	t.Parallel()
	cases := []struct{ achieved, target, want int }{
		{250, 500, 50},
		{1, 3, 33},
		{2, 3, 67},
		{750, 500, 150},
		{10, 0, 0},
		{0, 0, 0},
	}
	for _, tc := range cases {
		if got := domain.Percent(tc.achieved, tc.target); got != tc.want {
			t.Fatalf("Percent(%d,%d) expected %d, got %d", tc.achieved, tc.target, tc.want, got)
		}
	}
	if domain.ClampPercent(150) != 100 || domain.ClampPercent(-3) != 0 || domain.ClampPercent(40) != 40 {
		t.Fatalf("clamp failed")
	}
}

func TestCurrentStreakBreaksOnZeroDay(t *testing.T) {
	t.Parallel()
	progress := []domain.GoalProgress{
		row("g", "2024-03-10", 5),
		row("g", "2024-03-09", 0),
		row("g", "2024-03-08", 10),
	}
	if got := domain.CurrentStreak(progress, "2024-03-10"); got != 1 {
		t.Fatalf("expected streak 1, got %d", got)
	}
	if got := domain.CurrentStreak(progress, "2024-03-11"); got != 0 {
		t.Fatalf("expected streak 0 when today is empty, got %d", got)
	}
	if got := domain.CurrentStreak(progress, "not a day"); got != 0 {
		t.Fatalf("expected 0 for invalid day, got %d", got)
	}
}

func TestStreaksAcrossGoalsUseDailyMaximum(t *testing.T) {
	t.Parallel()
	progress := []domain.GoalProgress{
		row("a", "2024-03-01", 10),
		row("b", "2024-03-01", 12),
		row("a", "2024-03-02", 3),
		row("a", "2024-03-03", 4),
		row("a", "2024-03-05", 9),
	}
	daily := domain.DailyWords(progress)
	if daily["2024-03-01"] != 12 {
		t.Fatalf("expected max of 12, got %d", daily["2024-03-01"])
	}
	if got := domain.CurrentStreak(progress, "2024-03-03"); got != 3 {
		t.Fatalf("expected streak 3, got %d", got)
	}
	if got := domain.LongestStreak(progress); got != 3 {
		t.Fatalf("expected longest 3, got %d", got)
	}
	if got := domain.LongestStreak(nil); got != 0 {
		t.Fatalf("expected longest 0 for no rows, got %d", got)
	}
}

func TestCalendarMarksGoalMet(t *testing.T) {
	t.Parallel()
	progress := []domain.GoalProgress{row("g", "2024-02-01", 600), row("g", "2024-02-29", 100)}
	cells := domain.Calendar(progress, time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC), 500)
	if len(cells) != 29 {
		t.Fatalf("expected 29 cells for leap February, got %d", len(cells))
	}
	want := []domain.CalendarCell{
		{Date: "2024-02-01", Words: 600, GoalMet: true},
		{Date: "2024-02-02", Words: 0, GoalMet: false},
	}
	if diff := cmp.Diff(want, cells[:2]); diff != "" {
		t.Fatalf("calendar (-want +got):\n%s", diff)
	}
	if cells[28].Words != 100 || cells[28].GoalMet {
		t.Fatalf("unexpected last cell %+v", cells[28])
	}

	noTarget := domain.Calendar(progress, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 0)
	if noTarget[0].GoalMet {
		t.Fatalf("zero target must never mark goal met")
	}
}

func TestComputeGoalStats(t *testing.T) {
	t.Parallel()
	goal := dailyGoal()
	progress := []domain.GoalProgress{
		row("goal-1", "2024-03-01", 300),
		row("goal-1", "2024-02-29", 800),
		row("other", "2024-03-01", 9999),
	}
	stats, err := domain.ComputeGoalStats(goal, progress, now, 1)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Period.WordsWritten != 300 || stats.Percent != 60 || stats.RemainingWords != 200 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats.CurrentStreak != 2 || stats.LongestStreak != 2 || stats.DaysActive != 2 {
		t.Fatalf("unexpected streaks %+v", stats)
	}
}
