package domain

import (
	"fmt"
	"time"

	apperrors "inkwell/internal/platform/errors"
)

type Settings struct {
	EnableNotifications   bool   `json:"enableNotifications"`
	NotificationTime      string `json:"notificationTime"`
	WeekStartsOn          int    `json:"weekStartsOn"`
	IncludeCharacterCount bool   `json:"includeCharacterCount"`
	AutoArchiveOldGoals   bool   `json:"autoArchiveOldGoals"`
	ArchiveAfterDays      int    `json:"archiveAfterDays"`
}

type SettingsPatch struct {
	EnableNotifications   *bool
	NotificationTime      *string
	WeekStartsOn          *int
	IncludeCharacterCount *bool
	AutoArchiveOldGoals   *bool
	ArchiveAfterDays      *int
}

func DefaultSettings() Settings {
	return Settings{
		EnableNotifications:   true,
		NotificationTime:      "09:00",
		WeekStartsOn:          1,
		IncludeCharacterCount: false,
		AutoArchiveOldGoals:   false,
		ArchiveAfterDays:      30,
	}
}

func (s Settings) Validate() error {
	if s.WeekStartsOn < 0 || s.WeekStartsOn > 6 {
		return fmt.Errorf("%w: week starts on must be 0..6, got %d", apperrors.ErrInvalidSettings, s.WeekStartsOn)
	}
	if s.ArchiveAfterDays < 1 {
		return fmt.Errorf("%w: archive after days must be at least 1, got %d", apperrors.ErrInvalidSettings, s.ArchiveAfterDays)
	}
	if _, err := time.Parse("15:04", s.NotificationTime); err != nil {
		return fmt.Errorf("%w: notification time %q is not HH:MM", apperrors.ErrInvalidSettings, s.NotificationTime)
	}
	return nil
}

func (s Settings) Apply(patch SettingsPatch) (Settings, error) {
	next := s
	if patch.EnableNotifications != nil {
		next.EnableNotifications = *patch.EnableNotifications
	}
	if patch.NotificationTime != nil {
		next.NotificationTime = *patch.NotificationTime
	}
	if patch.WeekStartsOn != nil {
		next.WeekStartsOn = *patch.WeekStartsOn
	}
	if patch.IncludeCharacterCount != nil {
		next.IncludeCharacterCount = *patch.IncludeCharacterCount
	}
	if patch.AutoArchiveOldGoals != nil {
		next.AutoArchiveOldGoals = *patch.AutoArchiveOldGoals
	}
	if patch.ArchiveAfterDays != nil {
		next.ArchiveAfterDays = *patch.ArchiveAfterDays
	}
	if err := next.Validate(); err != nil {
		return Settings{}, err
	}
	return next, nil
}
