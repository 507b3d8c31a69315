package in

import (
	"context"

	"inkwell/internal/modules/goals/dto"
)

type Usecase interface {
	CreateGoal(ctx context.Context, input dto.CreateGoalInput) (dto.GoalOutput, error)
	UpdateGoal(ctx context.Context, input dto.UpdateGoalInput) (dto.GoalOutput, error)
	DeleteGoal(ctx context.Context, id string) (dto.DeleteGoalOutput, error)
	GetGoal(ctx context.Context, id string) (dto.GoalOutput, error)
	ListGoals(ctx context.Context, input dto.ListGoalsInput) ([]dto.GoalOutput, error)
	SetGoalActive(ctx context.Context, id string, active bool) (dto.GoalOutput, error)
	ArchiveGoal(ctx context.Context, id string) (dto.GoalOutput, error)
	EnsureDefaults(ctx context.Context) (bool, error)

	TrackDocumentChange(ctx context.Context, input dto.TrackInput) (dto.TrackOutput, error)
	PopulateHistorical(ctx context.Context) (dto.PopulateOutput, error)
	// SeedBaselines records current document sizes in the ledger without
	// crediting any goal.
	SeedBaselines(ctx context.Context) (int, error)
	Reconcile(ctx context.Context) (dto.ReconcileOutput, error)
	Cleanup(ctx context.Context, retentionDays int) (dto.CleanupOutput, error)
	ValidateAndFix(ctx context.Context) (dto.ValidateOutput, error)
	ListProgress(ctx context.Context, input dto.ListProgressInput) ([]dto.ProgressOutput, error)

	Stats(ctx context.Context, input dto.StatsInput) (dto.GoalStatsOutput, error)
	Overview(ctx context.Context) (dto.OverviewOutput, error)
	Calendar(ctx context.Context, month string) (dto.CalendarOutput, error)
	Streak(ctx context.Context) (dto.StreakOutput, error)
	History(ctx context.Context, from, to string) ([]dto.DailyTotalOutput, error)

	GetSettings(ctx context.Context) (dto.SettingsOutput, error)
	UpdateSettings(ctx context.Context, input dto.SettingsPatchInput) (dto.SettingsOutput, error)

	Reindex(ctx context.Context) (dto.ReindexOutput, error)
	Export(ctx context.Context, path string) (dto.ExportOutput, error)
	// Reload drops cached state so the next call re-reads persisted data.
	Reload(ctx context.Context) error
}
