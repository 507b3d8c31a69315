package out

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"inkwell/internal/modules/goals/domain"
	goalsout "inkwell/internal/modules/goals/port/out"
	apperrors "inkwell/internal/platform/errors"
	"inkwell/internal/platform/kvstore"
	"inkwell/internal/platform/metrics"
)

const ProgressKey = "goal-progress"

// KVProgressStore holds every progress row under one key, indexed by
// (goal, date) so a key never maps to more than one row.
type KVProgressStore struct {
	kv      kvstore.Store
	logger  *zap.Logger
	metrics *metrics.Metrics

	mu     sync.Mutex
	rows   []domain.GoalProgress
	index  map[domain.ProgressKey]int
	loaded bool
}

func NewKVProgressStore(kv kvstore.Store, logger *zap.Logger, m *metrics.Metrics) goalsout.ProgressStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KVProgressStore{kv: kv, logger: logger, metrics: m}
}

func (s *KVProgressStore) List(ctx context.Context) ([]domain.GoalProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
	out := make([]domain.GoalProgress, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

func (s *KVProgressStore) ListByGoal(ctx context.Context, goalID string) ([]domain.GoalProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
	return domain.ProgressForGoal(s.rows, goalID), nil
}

func (s *KVProgressStore) Get(ctx context.Context, key domain.ProgressKey) (domain.GoalProgress, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
	if pos, ok := s.index[key]; ok {
		return s.rows[pos], true, nil
	}
	return domain.GoalProgress{}, false, nil
}

// Upsert replaces rows that share a (goal, date) key and appends the rest.
func (s *KVProgressStore) Upsert(ctx context.Context, rows ...domain.GoalProgress) error {
	if len(rows) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
	for _, row := range rows {
		if pos, ok := s.index[row.Key()]; ok {
			s.rows[pos] = row
			continue
		}
		s.index[row.Key()] = len(s.rows)
		s.rows = append(s.rows, row)
	}
	s.persistLocked(ctx)
	return nil
}

// InsertMissing adds only rows whose key is absent, decided under the store
// lock.
func (s *KVProgressStore) InsertMissing(ctx context.Context, rows ...domain.GoalProgress) ([]domain.GoalProgress, error) {
	if len(rows) == 0 {
		return []domain.GoalProgress{}, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
	added := make([]domain.GoalProgress, 0, len(rows))
	for _, row := range rows {
		if _, ok := s.index[row.Key()]; ok {
			continue
		}
		s.index[row.Key()] = len(s.rows)
		s.rows = append(s.rows, row)
		added = append(added, row)
	}
	if len(added) > 0 {
		s.persistLocked(ctx)
	}
	return added, nil
}

func (s *KVProgressStore) Replace(ctx context.Context, rows []domain.GoalProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	s.setLocked(rows)
	s.persistLocked(ctx)
	return nil
}

func (s *KVProgressStore) DeleteByGoal(ctx context.Context, goalID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
	kept := make([]domain.GoalProgress, 0, len(s.rows))
	for _, row := range s.rows {
		if row.GoalID != goalID {
			kept = append(kept, row)
		}
	}
	removed := len(s.rows) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	s.setLocked(kept)
	s.persistLocked(ctx)
	return removed, nil
}

func (s *KVProgressStore) Reload(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	s.rows = nil
	s.index = nil
	return nil
}

func (s *KVProgressStore) loadLocked(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true
	rows := []domain.GoalProgress{}
	if err := s.kv.Load(ctx, ProgressKey, &rows); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("load progress, starting empty", zap.Error(err))
		}
		rows = []domain.GoalProgress{}
	}
	s.setLocked(rows)
}

// setLocked rebuilds the key index. Colliding keys from a hand-edited or
// merged file keep the most recently updated row.
func (s *KVProgressStore) setLocked(rows []domain.GoalProgress) {
	s.rows = make([]domain.GoalProgress, 0, len(rows))
	s.index = make(map[domain.ProgressKey]int, len(rows))
	for _, row := range rows {
		if pos, ok := s.index[row.Key()]; ok {
			if !row.UpdatedAt.Before(s.rows[pos].UpdatedAt) {
				s.rows[pos] = row
			}
			continue
		}
		s.index[row.Key()] = len(s.rows)
		s.rows = append(s.rows, row)
	}
}

func (s *KVProgressStore) persistLocked(ctx context.Context) {
	if err := s.kv.Save(ctx, ProgressKey, s.rows); err != nil {
		s.logger.Warn("persist progress", zap.Error(err))
		s.metrics.PersistenceFailed(ProgressKey)
	}
}
