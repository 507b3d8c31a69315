package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"inkwell/internal/modules/goals/domain"
	goalsout "inkwell/internal/modules/goals/port/out"
	"inkwell/internal/platform/clock"
)

type StatsService struct {
	clock     clock.Clock
	goals     goalsout.GoalStore
	progress  goalsout.ProgressStore
	projector goalsout.ProgressIndexProjector
	ledger    goalsout.WordLedger
	logger    *zap.Logger
}

func NewStatsService(clock clock.Clock, goals goalsout.GoalStore, progress goalsout.ProgressStore, projector goalsout.ProgressIndexProjector, ledger goalsout.WordLedger, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{clock: clock, goals: goals, progress: progress, projector: projector, ledger: ledger, logger: logger}
}

func (s *StatsService) Now() time.Time {
	return s.clock.Now()
}

func (s *StatsService) GoalStats(ctx context.Context, goalID string, ref time.Time, settings domain.Settings) (domain.GoalStats, error) {
	goal, err := s.goals.Get(ctx, goalID)
	if err != nil {
		return domain.GoalStats{}, err
	}
	rows, err := s.progress.ListByGoal(ctx, goalID)
	if err != nil {
		return domain.GoalStats{}, err
	}
	return domain.ComputeGoalStats(goal, rows, ref, settings.WeekStartsOn)
}

type Overview struct {
	Date          string
	Today         domain.LedgerDay
	CurrentStreak int
	LongestStreak int
	Goals         []domain.GoalStats
}

// Overview summarises every active goal for the period containing now.
// Today's words come from the daily ledger.
func (s *StatsService) Overview(ctx context.Context, settings domain.Settings) (Overview, error) {
	now := s.clock.Now()
	today := domain.DayOf(now)
	goals, err := s.goals.List(ctx)
	if err != nil {
		return Overview{}, err
	}
	rows, err := s.progress.List(ctx)
	if err != nil {
		return Overview{}, err
	}

	out := Overview{Date: today, Goals: make([]domain.GoalStats, 0, len(goals))}
	for _, goal := range goals {
		if !goal.IsActive || goal.Archived {
			continue
		}
		stats, err := domain.ComputeGoalStats(goal, rows, now, settings.WeekStartsOn)
		if err != nil {
			return Overview{}, err
		}
		out.Goals = append(out.Goals, stats)
	}
	out.CurrentStreak = domain.CurrentStreak(rows, today)
	out.LongestStreak = domain.LongestStreak(rows)

	day, err := s.ledger.Today(ctx)
	if err != nil {
		s.logger.Warn("read today's ledger, assuming zero", zap.Error(err))
		day = domain.LedgerDay{Date: today}
	}
	out.Today = day
	return out, nil
}

// DailyTarget is the largest target among active daily goals overlapping
// start..end, or zero when there is none.
func (s *StatsService) DailyTarget(ctx context.Context, start, end string) (int, error) {
	goals, err := s.goals.List(ctx)
	if err != nil {
		return 0, err
	}
	target := 0
	for _, goal := range goals {
		if goal.Type != domain.GoalTypeDaily || !goal.IsActive || goal.Archived {
			continue
		}
		if goal.StartDate <= end && start <= goal.EndDate && goal.TargetWords > target {
			target = goal.TargetWords
		}
	}
	return target, nil
}

func (s *StatsService) Calendar(ctx context.Context, month time.Time) ([]domain.CalendarCell, int, error) {
	rows, err := s.progress.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	target, err := s.DailyTarget(ctx, domain.DayOf(first), domain.DayOf(first.AddDate(0, 1, -1)))
	if err != nil {
		return nil, 0, err
	}
	return domain.Calendar(rows, first, target), target, nil
}

func (s *StatsService) Streak(ctx context.Context) (string, int, int, error) {
	rows, err := s.progress.List(ctx)
	if err != nil {
		return "", 0, 0, err
	}
	today := domain.DayOf(s.clock.Now())
	return today, domain.CurrentStreak(rows, today), domain.LongestStreak(rows), nil
}

// History reads per-day totals from the progress index.
func (s *StatsService) History(ctx context.Context, from, to string) ([]domain.DailyTotal, error) {
	if s.projector == nil {
		return nil, fmt.Errorf("progress index is not configured")
	}
	if _, err := domain.ParseDay(from); err != nil {
		return nil, err
	}
	if _, err := domain.ParseDay(to); err != nil {
		return nil, err
	}
	return s.projector.DailyTotals(ctx, from, to)
}
