package service

import (
	"context"

	"inkwell/internal/modules/goals/domain"
	goalsout "inkwell/internal/modules/goals/port/out"
)

type SettingsService struct {
	store goalsout.SettingsStore
}

func NewSettingsService(store goalsout.SettingsStore) *SettingsService {
	return &SettingsService{store: store}
}

func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	return s.store.Load(ctx)
}

func (s *SettingsService) Update(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	current, err := s.store.Load(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	next, err := current.Apply(patch)
	if err != nil {
		return domain.Settings{}, err
	}
	if err := s.store.Save(ctx, next); err != nil {
		return domain.Settings{}, err
	}
	return next, nil
}

func (s *SettingsService) Reload(ctx context.Context) error {
	return s.store.Reload(ctx)
}
