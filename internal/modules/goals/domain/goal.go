package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "inkwell/internal/platform/errors"
)

type GoalType string

const (
	GoalTypeDaily   GoalType = "daily"
	GoalTypeWeekly  GoalType = "weekly"
	GoalTypeMonthly GoalType = "monthly"
	GoalTypeYearly  GoalType = "yearly"
)

const DefaultDailyTarget = 500

func (t GoalType) Validate() error {
	switch t {
	case GoalTypeDaily, GoalTypeWeekly, GoalTypeMonthly, GoalTypeYearly:
		return nil
	default:
		return fmt.Errorf("%w: unsupported goal type %q", apperrors.ErrInvalidGoal, string(t))
	}
}

type GoalStatus string

const (
	GoalStatusActive   GoalStatus = "active"
	GoalStatusInactive GoalStatus = "inactive"
	GoalStatusArchived GoalStatus = "archived"
)

type WritingGoal struct {
	ID          string     `json:"id"`
	Type        GoalType   `json:"type"`
	TargetWords int        `json:"targetWords"`
	StartDate   string     `json:"startDate"`
	EndDate     string     `json:"endDate"`
	IsActive    bool       `json:"isActive"`
	Archived    bool       `json:"archived,omitempty"`
	ArchivedAt  *time.Time `json:"archivedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// GoalPatch carries a partial update. Nil fields are left unchanged.
type GoalPatch struct {
	Type        *GoalType
	TargetWords *int
	StartDate   *string
	EndDate     *string
	IsActive    *bool
}

func (g WritingGoal) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return fmt.Errorf("%w: id is required", apperrors.ErrInvalidGoal)
	}
	if err := g.Type.Validate(); err != nil {
		return err
	}
	if g.TargetWords < 0 {
		return fmt.Errorf("%w: target words must be non-negative, got %d", apperrors.ErrInvalidGoal, g.TargetWords)
	}
	if _, err := ParseDay(g.StartDate); err != nil {
		return fmt.Errorf("%w: start date: %v", apperrors.ErrInvalidGoal, err)
	}
	if _, err := ParseDay(g.EndDate); err != nil {
		return fmt.Errorf("%w: end date: %v", apperrors.ErrInvalidGoal, err)
	}
	if g.StartDate > g.EndDate {
		return fmt.Errorf("%w: start date %s is after end date %s", apperrors.ErrInvalidGoal, g.StartDate, g.EndDate)
	}
	return nil
}

func (g WritingGoal) Status() GoalStatus {
	switch {
	case g.Archived:
		return GoalStatusArchived
	case g.IsActive:
		return GoalStatusActive
	default:
		return GoalStatusInactive
	}
}

func (g WritingGoal) Contains(day string) bool {
	return g.StartDate <= day && day <= g.EndDate
}

// Trackable reports whether new writing on day counts toward the goal.
func (g WritingGoal) Trackable(day string) bool {
	return g.IsActive && !g.Archived && g.Contains(day)
}

func (g *WritingGoal) Activate(now time.Time) error {
	return g.setActive(true, now)
}

func (g *WritingGoal) Deactivate(now time.Time) error {
	return g.setActive(false, now)
}

func (g *WritingGoal) setActive(active bool, now time.Time) error {
	if g.Archived {
		return apperrors.ErrGoalArchived
	}
	g.IsActive = active
	g.UpdatedAt = now
	return nil
}

func (g *WritingGoal) Archive(now time.Time) error {
	if g.Archived {
		return apperrors.ErrGoalArchived
	}
	g.Archived = true
	g.IsActive = false
	at := now
	g.ArchivedAt = &at
	g.UpdatedAt = now
	return nil
}

// Apply returns the goal with patch applied and validated. The receiver is not
// modified.
func (g WritingGoal) Apply(patch GoalPatch, now time.Time) (WritingGoal, error) {
	if g.Archived {
		return WritingGoal{}, apperrors.ErrGoalArchived
	}
	next := g
	if patch.Type != nil {
		next.Type = *patch.Type
	}
	if patch.TargetWords != nil {
		next.TargetWords = *patch.TargetWords
	}
	if patch.StartDate != nil {
		next.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		next.EndDate = *patch.EndDate
	}
	if patch.IsActive != nil {
		next.IsActive = *patch.IsActive
	}
	if err := next.Validate(); err != nil {
		return WritingGoal{}, err
	}
	next.UpdatedAt = now
	return next, nil
}

// DefaultGoal is the daily goal created for an empty registry: 500 words a
// day across the calendar year containing now.
func DefaultGoal(id string, now time.Time) WritingGoal {
	year := now.UTC().Year()
	return WritingGoal{
		ID:          id,
		Type:        GoalTypeDaily,
		TargetWords: DefaultDailyTarget,
		StartDate:   fmt.Sprintf("%04d-01-01", year),
		EndDate:     fmt.Sprintf("%04d-12-31", year),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
