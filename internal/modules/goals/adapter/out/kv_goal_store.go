package out

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"inkwell/internal/modules/goals/domain"
	goalsout "inkwell/internal/modules/goals/port/out"
	apperrors "inkwell/internal/platform/errors"
	"inkwell/internal/platform/kvstore"
	"inkwell/internal/platform/metrics"
)

const GoalsKey = "writing-goals"

// KVGoalStore keeps the goal registry under one key. The in-memory copy is
// authoritative once loaded; write failures are logged, not returned.
type KVGoalStore struct {
	kv      kvstore.Store
	logger  *zap.Logger
	metrics *metrics.Metrics

	mu     sync.Mutex
	goals  []domain.WritingGoal
	loaded bool
}

func NewKVGoalStore(kv kvstore.Store, logger *zap.Logger, m *metrics.Metrics) goalsout.GoalStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KVGoalStore{kv: kv, logger: logger, metrics: m}
}

func (s *KVGoalStore) List(ctx context.Context) ([]domain.WritingGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
	out := make([]domain.WritingGoal, len(s.goals))
	copy(out, s.goals)
	return out, nil
}

func (s *KVGoalStore) Get(ctx context.Context, id string) (domain.WritingGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
	for _, goal := range s.goals {
		if goal.ID == id {
			return goal, nil
		}
	}
	return domain.WritingGoal{}, fmt.Errorf("%w: %s", apperrors.ErrGoalNotFound, id)
}

func (s *KVGoalStore) Save(ctx context.Context, goal domain.WritingGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
	replaced := false
	for i := range s.goals {
		if s.goals[i].ID == goal.ID {
			s.goals[i] = goal
			replaced = true
			break
		}
	}
	if !replaced {
		s.goals = append(s.goals, goal)
	}
	s.persistLocked(ctx)
	return nil
}

func (s *KVGoalStore) SaveAll(ctx context.Context, goals []domain.WritingGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = make([]domain.WritingGoal, len(goals))
	copy(s.goals, goals)
	s.loaded = true
	s.persistLocked(ctx)
	return nil
}

func (s *KVGoalStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
	kept := s.goals[:0]
	found := false
	for _, goal := range s.goals {
		if goal.ID == id {
			found = true
			continue
		}
		kept = append(kept, goal)
	}
	if !found {
		return fmt.Errorf("%w: %s", apperrors.ErrGoalNotFound, id)
	}
	s.goals = kept
	s.persistLocked(ctx)
	return nil
}

func (s *KVGoalStore) Reload(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	s.goals = nil
	return nil
}

func (s *KVGoalStore) loadLocked(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true
	goals := []domain.WritingGoal{}
	if err := s.kv.Load(ctx, GoalsKey, &goals); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("load goals, starting empty", zap.Error(err))
		}
		goals = []domain.WritingGoal{}
	}
	s.goals = goals
}

func (s *KVGoalStore) persistLocked(ctx context.Context) {
	if err := s.kv.Save(ctx, GoalsKey, s.goals); err != nil {
		s.logger.Warn("persist goals", zap.Error(err))
		s.metrics.PersistenceFailed(GoalsKey)
	}
}
