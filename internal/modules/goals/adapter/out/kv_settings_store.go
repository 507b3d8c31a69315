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

const SettingsKey = "goal-settings"

// KVSettingsStore initialises settings with defaults on first use. Stored
// values that fail validation are replaced by the defaults.
type KVSettingsStore struct {
	kv      kvstore.Store
	logger  *zap.Logger
	metrics *metrics.Metrics

	mu       sync.Mutex
	settings *domain.Settings
}

func NewKVSettingsStore(kv kvstore.Store, logger *zap.Logger, m *metrics.Metrics) goalsout.SettingsStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KVSettingsStore{kv: kv, logger: logger, metrics: m}
}

func (s *KVSettingsStore) Load(ctx context.Context) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings != nil {
		return *s.settings, nil
	}
	settings := domain.DefaultSettings()
	err := s.kv.Load(ctx, SettingsKey, &settings)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		settings = domain.DefaultSettings()
		s.persistLocked(ctx, settings)
	case err != nil:
		s.logger.Warn("load settings, using defaults", zap.Error(err))
		settings = domain.DefaultSettings()
	default:
		if verr := settings.Validate(); verr != nil {
			s.logger.Warn("stored settings invalid, using defaults", zap.Error(verr))
			settings = domain.DefaultSettings()
		}
	}
	s.settings = &settings
	return settings, nil
}

func (s *KVSettingsStore) Save(ctx context.Context, settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = &settings
	s.persistLocked(ctx, settings)
	return nil
}

func (s *KVSettingsStore) Reload(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = nil
	return nil
}

func (s *KVSettingsStore) persistLocked(ctx context.Context, settings domain.Settings) {
	if err := s.kv.Save(ctx, SettingsKey, settings); err != nil {
		s.logger.Warn("persist settings", zap.Error(err))
		s.metrics.PersistenceFailed(SettingsKey)
	}
}
