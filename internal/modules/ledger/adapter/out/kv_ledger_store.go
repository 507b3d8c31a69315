package out

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go.uber.org/zap"

	"inkwell/internal/modules/ledger/domain"
	ledgerout "inkwell/internal/modules/ledger/port/out"
	apperrors "inkwell/internal/platform/errors"
	"inkwell/internal/platform/kvstore"
	"inkwell/internal/platform/metrics"
)

// KVLedgerStore caches the ledger in memory and writes through to the
// key-value store. Unreadable keys load as empty and failed writes are
// logged; the cache stays authoritative for the life of the process.
type KVLedgerStore struct {
	kv      kvstore.Store
	logger  *zap.Logger
	metrics *metrics.Metrics

	mu        sync.Mutex
	baselines map[string]domain.Baseline
	days      map[string]domain.DayRecord
}

func NewKVLedgerStore(kv kvstore.Store, logger *zap.Logger, m *metrics.Metrics) ledgerout.LedgerStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KVLedgerStore{kv: kv, logger: logger, metrics: m, days: map[string]domain.DayRecord{}}
}

func (s *KVLedgerStore) SwapBaseline(ctx context.Context, documentID string, next domain.Baseline) (domain.Baseline, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadBaselinesLocked(ctx)
	prev, ok := s.baselines[documentID]
	s.baselines[documentID] = next
	s.save(ctx, domain.BaselinesKey, s.baselines)
	return prev, ok, nil
}

func (s *KVLedgerStore) InsertBaseline(ctx context.Context, documentID string, next domain.Baseline) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadBaselinesLocked(ctx)
	if _, ok := s.baselines[documentID]; ok {
		return false, nil
	}
	s.baselines[documentID] = next
	s.save(ctx, domain.BaselinesKey, s.baselines)
	return true, nil
}

func (s *KVLedgerStore) AdvanceBaseline(ctx context.Context, documentID string, next domain.Baseline) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadBaselinesLocked(ctx)
	if prev, ok := s.baselines[documentID]; ok && !prev.UpdatedAt.Before(next.UpdatedAt) {
		return false, nil
	}
	s.baselines[documentID] = next
	s.save(ctx, domain.BaselinesKey, s.baselines)
	return true, nil
}

func (s *KVLedgerStore) AppendEntry(ctx context.Context, date string, entry domain.Entry) (domain.DayRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	day := s.loadDayLocked(ctx, date)
	day.Append(entry)
	s.days[date] = day
	s.save(ctx, domain.DayKey(date), day)
	return copyDay(day), nil
}

func (s *KVLedgerStore) LoadDay(ctx context.Context, date string) (domain.DayRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyDay(s.loadDayLocked(ctx, date)), nil
}

func (s *KVLedgerStore) ListDays(ctx context.Context, from, to string) ([]domain.DayRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dates := map[string]struct{}{}
	keys, err := s.kv.Keys(ctx, domain.DayKeyPrefix)
	if err != nil {
		s.logger.Warn("list ledger days", zap.Error(err))
	}
	for _, key := range keys {
		if date, ok := domain.DateFromKey(key); ok {
			dates[date] = struct{}{}
		}
	}
	for date := range s.days {
		dates[date] = struct{}{}
	}

	out := make([]domain.DayRecord, 0, len(dates))
	for date := range dates {
		if date < from || date > to {
			continue
		}
		out = append(out, copyDay(s.loadDayLocked(ctx, date)))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s *KVLedgerStore) DeleteBefore(ctx context.Context, date string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys, err := s.kv.Keys(ctx, domain.DayKeyPrefix)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, key := range keys {
		day, ok := domain.DateFromKey(key)
		if !ok || day >= date {
			continue
		}
		if err := s.kv.Delete(ctx, key); err != nil {
			s.logger.Warn("delete ledger day", zap.String("key", key), zap.Error(err))
			continue
		}
		delete(s.days, day)
		removed++
	}
	return removed, nil
}

func (s *KVLedgerStore) Reload(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baselines = nil
	s.days = map[string]domain.DayRecord{}
	return nil
}

func (s *KVLedgerStore) loadBaselinesLocked(ctx context.Context) {
	if s.baselines != nil {
		return
	}
	loaded := map[string]domain.Baseline{}
	if err := s.kv.Load(ctx, domain.BaselinesKey, &loaded); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("load document baselines, starting empty", zap.Error(err))
		}
		loaded = map[string]domain.Baseline{}
	}
	s.baselines = loaded
}

func (s *KVLedgerStore) loadDayLocked(ctx context.Context, date string) domain.DayRecord {
	if day, ok := s.days[date]; ok {
		return day
	}
	day := domain.EmptyDay(date)
	if err := s.kv.Load(ctx, domain.DayKey(date), &day); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("load ledger day, starting empty", zap.String("date", date), zap.Error(err))
		}
		day = domain.EmptyDay(date)
	}
	if day.Entries == nil {
		day.Entries = []domain.Entry{}
	}
	day.Date = date
	s.days[date] = day
	return day
}

func (s *KVLedgerStore) save(ctx context.Context, key string, value any) {
	if err := s.kv.Save(ctx, key, value); err != nil {
		s.logger.Warn("persist ledger", zap.String("key", key), zap.Error(err))
		s.metrics.PersistenceFailed(key)
	}
}

func copyDay(day domain.DayRecord) domain.DayRecord {
	entries := make([]domain.Entry, len(day.Entries))
	copy(entries, day.Entries)
	day.Entries = entries
	return day
}
