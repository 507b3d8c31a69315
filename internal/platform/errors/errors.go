package apperrors

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrGoalNotFound    = errors.New("goal not found")
	ErrInvalidGoal     = errors.New("invalid goal")
	ErrGoalArchived    = errors.New("goal is archived")
	ErrInvalidSettings = errors.New("invalid settings")
	ErrDocumentMissing = errors.New("document not found")
)
