package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"inkwell/internal/modules/goals/domain"
	goalsout "inkwell/internal/modules/goals/port/out"
	"inkwell/internal/platform/clock"
	"inkwell/internal/platform/id"
)

type GoalService struct {
	clock     clock.Clock
	idGen     id.Generator
	goals     goalsout.GoalStore
	progress  goalsout.ProgressStore
	projector goalsout.ProgressIndexProjector
	logger    *zap.Logger
}

func NewGoalService(clock clock.Clock, idGen id.Generator, goals goalsout.GoalStore, progress goalsout.ProgressStore, projector goalsout.ProgressIndexProjector, logger *zap.Logger) *GoalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoalService{clock: clock, idGen: idGen, goals: goals, progress: progress, projector: projector, logger: logger}
}

func (s *GoalService) Create(ctx context.Context, goalType domain.GoalType, target int, start, end string, active bool) (domain.WritingGoal, error) {
	now := s.clock.Now()
	goal := domain.WritingGoal{
		ID:          s.idGen.New(),
		Type:        goalType,
		TargetWords: target,
		StartDate:   start,
		EndDate:     end,
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := goal.Validate(); err != nil {
		return domain.WritingGoal{}, err
	}
	if err := s.goals.Save(ctx, goal); err != nil {
		return domain.WritingGoal{}, err
	}
	s.logger.Info("goal created", zap.String("goal_id", goal.ID), zap.String("type", string(goal.Type)), zap.Int("target", goal.TargetWords))
	return goal, nil
}

func (s *GoalService) Update(ctx context.Context, id string, patch domain.GoalPatch) (domain.WritingGoal, error) {
	goal, err := s.goals.Get(ctx, id)
	if err != nil {
		return domain.WritingGoal{}, err
	}
	next, err := goal.Apply(patch, s.clock.Now())
	if err != nil {
		return domain.WritingGoal{}, err
	}
	if err := s.goals.Save(ctx, next); err != nil {
		return domain.WritingGoal{}, err
	}
	return next, nil
}

// Delete removes the goal and cascades to its progress rows.
func (s *GoalService) Delete(ctx context.Context, id string) (int, error) {
	if _, err := s.goals.Get(ctx, id); err != nil {
		return 0, err
	}
	if err := s.goals.Delete(ctx, id); err != nil {
		return 0, err
	}
	removed, err := s.progress.DeleteByGoal(ctx, id)
	if err != nil {
		return 0, err
	}
	if s.projector != nil {
		if err := s.projector.DeleteGoal(ctx, id); err != nil {
			s.logger.Warn("drop goal from progress index", zap.String("goal_id", id), zap.Error(err))
		}
	}
	s.logger.Info("goal deleted", zap.String("goal_id", id), zap.Int("progress_removed", removed))
	return removed, nil
}

func (s *GoalService) Get(ctx context.Context, id string) (domain.WritingGoal, error) {
	return s.goals.Get(ctx, id)
}

// List returns goals ordered by start date, then id.
func (s *GoalService) List(ctx context.Context) ([]domain.WritingGoal, error) {
	goals, err := s.goals.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(goals, func(i, j int) bool {
		if goals[i].StartDate != goals[j].StartDate {
			return goals[i].StartDate < goals[j].StartDate
		}
		return goals[i].ID < goals[j].ID
	})
	return goals, nil
}

func (s *GoalService) SetActive(ctx context.Context, id string, active bool) (domain.WritingGoal, error) {
	goal, err := s.goals.Get(ctx, id)
	if err != nil {
		return domain.WritingGoal{}, err
	}
	now := s.clock.Now()
	if active {
		err = goal.Activate(now)
	} else {
		err = goal.Deactivate(now)
	}
	if err != nil {
		return domain.WritingGoal{}, err
	}
	if err := s.goals.Save(ctx, goal); err != nil {
		return domain.WritingGoal{}, err
	}
	return goal, nil
}

func (s *GoalService) Archive(ctx context.Context, id string) (domain.WritingGoal, error) {
	goal, err := s.goals.Get(ctx, id)
	if err != nil {
		return domain.WritingGoal{}, err
	}
	if err := goal.Archive(s.clock.Now()); err != nil {
		return domain.WritingGoal{}, err
	}
	if err := s.goals.Save(ctx, goal); err != nil {
		return domain.WritingGoal{}, err
	}
	return goal, nil
}

// EnsureDefaults seeds the daily default goal when the registry is empty.
func (s *GoalService) EnsureDefaults(ctx context.Context) (bool, error) {
	goals, err := s.goals.List(ctx)
	if err != nil {
		return false, err
	}
	if len(goals) > 0 {
		return false, nil
	}
	goal := domain.DefaultGoal(s.idGen.New(), s.clock.Now())
	if err := s.goals.Save(ctx, goal); err != nil {
		return false, err
	}
	s.logger.Info("default goal created", zap.String("goal_id", goal.ID))
	return true, nil
}

// AutoArchive archives goals that ended more than ArchiveAfterDays ago.
func (s *GoalService) AutoArchive(ctx context.Context, settings domain.Settings) ([]string, error) {
	goals, err := s.goals.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	candidates := domain.ArchiveCandidates(goals, settings, domain.DayOf(now))
	if len(candidates) == 0 {
		return []string{}, nil
	}
	updated, archived := domain.ArchiveAll(goals, candidates, now)
	if err := s.goals.SaveAll(ctx, updated); err != nil {
		return nil, err
	}
	s.logger.Info("goals auto-archived", zap.Strings("goal_ids", archived))
	return archived, nil
}

func (s *GoalService) Reload(ctx context.Context) error {
	if err := s.goals.Reload(ctx); err != nil {
		return fmt.Errorf("reload goals: %w", err)
	}
	return nil
}
