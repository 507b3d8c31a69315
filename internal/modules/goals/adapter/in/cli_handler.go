package in

import (
	"context"

	"inkwell/internal/modules/goals/dto"
	goalsin "inkwell/internal/modules/goals/port/in"
)

type CLIHandler struct {
	usecase goalsin.Usecase
}

func NewCLIHandler(usecase goalsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) CreateGoal(ctx context.Context, goalType string, target int, start, end string, active bool) (dto.GoalOutput, error) {
	return h.usecase.CreateGoal(ctx, dto.CreateGoalInput{
		Type:        goalType,
		TargetWords: target,
		StartDate:   start,
		EndDate:     end,
		IsActive:    &active,
	})
}

func (h CLIHandler) UpdateGoal(ctx context.Context, input dto.UpdateGoalInput) (dto.GoalOutput, error) {
	return h.usecase.UpdateGoal(ctx, input)
}

func (h CLIHandler) DeleteGoal(ctx context.Context, id string) (dto.DeleteGoalOutput, error) {
	return h.usecase.DeleteGoal(ctx, id)
}

func (h CLIHandler) GetGoal(ctx context.Context, id string) (dto.GoalOutput, error) {
	return h.usecase.GetGoal(ctx, id)
}

func (h CLIHandler) ListGoals(ctx context.Context, includeArchived, activeOnly bool) ([]dto.GoalOutput, error) {
	return h.usecase.ListGoals(ctx, dto.ListGoalsInput{IncludeArchived: includeArchived, ActiveOnly: activeOnly})
}

func (h CLIHandler) SetGoalActive(ctx context.Context, id string, active bool) (dto.GoalOutput, error) {
	return h.usecase.SetGoalActive(ctx, id, active)
}

func (h CLIHandler) ArchiveGoal(ctx context.Context, id string) (dto.GoalOutput, error) {
	return h.usecase.ArchiveGoal(ctx, id)
}

func (h CLIHandler) EnsureDefaults(ctx context.Context) (bool, error) {
	return h.usecase.EnsureDefaults(ctx)
}

func (h CLIHandler) Track(ctx context.Context, documentID, projectID string, words, chars int) (dto.TrackOutput, error) {
	return h.usecase.TrackDocumentChange(ctx, dto.TrackInput{
		DocumentID: documentID,
		ProjectID:  projectID,
		WordCount:  words,
		CharCount:  chars,
	})
}

func (h CLIHandler) Populate(ctx context.Context) (dto.PopulateOutput, error) {
	return h.usecase.PopulateHistorical(ctx)
}

func (h CLIHandler) SeedBaselines(ctx context.Context) (int, error) {
	return h.usecase.SeedBaselines(ctx)
}

func (h CLIHandler) Reconcile(ctx context.Context) (dto.ReconcileOutput, error) {
	return h.usecase.Reconcile(ctx)
}

func (h CLIHandler) Cleanup(ctx context.Context, retentionDays int) (dto.CleanupOutput, error) {
	return h.usecase.Cleanup(ctx, retentionDays)
}

func (h CLIHandler) Validate(ctx context.Context) (dto.ValidateOutput, error) {
	return h.usecase.ValidateAndFix(ctx)
}

func (h CLIHandler) ListProgress(ctx context.Context, goalID, from, to string) ([]dto.ProgressOutput, error) {
	return h.usecase.ListProgress(ctx, dto.ListProgressInput{GoalID: goalID, From: from, To: to})
}

func (h CLIHandler) Stats(ctx context.Context, goalID, reference string) (dto.GoalStatsOutput, error) {
	return h.usecase.Stats(ctx, dto.StatsInput{GoalID: goalID, Reference: reference})
}

func (h CLIHandler) Overview(ctx context.Context) (dto.OverviewOutput, error) {
	return h.usecase.Overview(ctx)
}

func (h CLIHandler) Calendar(ctx context.Context, month string) (dto.CalendarOutput, error) {
	return h.usecase.Calendar(ctx, month)
}

func (h CLIHandler) Streak(ctx context.Context) (dto.StreakOutput, error) {
	return h.usecase.Streak(ctx)
}

func (h CLIHandler) History(ctx context.Context, from, to string) ([]dto.DailyTotalOutput, error) {
	return h.usecase.History(ctx, from, to)
}

func (h CLIHandler) Settings(ctx context.Context) (dto.SettingsOutput, error) {
	return h.usecase.GetSettings(ctx)
}

func (h CLIHandler) UpdateSettings(ctx context.Context, input dto.SettingsPatchInput) (dto.SettingsOutput, error) {
	return h.usecase.UpdateSettings(ctx, input)
}

func (h CLIHandler) Reindex(ctx context.Context) (dto.ReindexOutput, error) {
	return h.usecase.Reindex(ctx)
}

func (h CLIHandler) Export(ctx context.Context, path string) (dto.ExportOutput, error) {
	return h.usecase.Export(ctx, path)
}

func (h CLIHandler) Reload(ctx context.Context) error {
	return h.usecase.Reload(ctx)
}
