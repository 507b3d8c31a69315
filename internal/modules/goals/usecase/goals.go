package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"inkwell/internal/modules/goals/domain"
	"inkwell/internal/modules/goals/dto"
	goalsin "inkwell/internal/modules/goals/port/in"
	goalsout "inkwell/internal/modules/goals/port/out"
	"inkwell/internal/modules/goals/service"
	"inkwell/internal/platform/calendar"
	"inkwell/internal/platform/clock"
	apperrors "inkwell/internal/platform/errors"
	"inkwell/internal/platform/metrics"
)

type Options struct {
	RetentionDays int
}

type Interactor struct {
	clock    clock.Clock
	goals    *service.GoalService
	progress *service.ProgressService
	stats    *service.StatsService
	settings *service.SettingsService
	exporter goalsout.ReportExporter
	opts     Options
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

type Deps struct {
	Goals    *service.GoalService
	Progress *service.ProgressService
	Stats    *service.StatsService
	Settings *service.SettingsService
	Exporter goalsout.ReportExporter
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
}

func NewInteractor(clock clock.Clock, deps Deps, opts Options) goalsin.Usecase {
	if opts.RetentionDays <= 0 {
		opts.RetentionDays = domain.DefaultRetentionDays
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{
		clock:    clock,
		goals:    deps.Goals,
		progress: deps.Progress,
		stats:    deps.Stats,
		settings: deps.Settings,
		exporter: deps.Exporter,
		opts:     opts,
		logger:   logger,
		metrics:  deps.Metrics,
	}
}

// ─── goals ───────────────────────────────────────────────────────────────

func (i *Interactor) CreateGoal(ctx context.Context, input dto.CreateGoalInput) (dto.GoalOutput, error) {
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}
	start, end := input.StartDate, input.EndDate
	goalType := domain.GoalType(strings.ToLower(strings.TrimSpace(input.Type)))
	if start == "" || end == "" {
		// Goals without explicit dates run for the current calendar year.
		window, err := domain.DateRangeForPeriod(domain.GoalTypeYearly, i.clock.Now(), 0)
		if err != nil {
			return dto.GoalOutput{}, err
		}
		if start == "" {
			start = window.Start
		}
		if end == "" {
			end = window.End
		}
	}
	goal, err := i.goals.Create(ctx, goalType, input.TargetWords, start, end, active)
	if err != nil {
		return dto.GoalOutput{}, err
	}
	return toGoalOutput(goal), nil
}

func (i *Interactor) UpdateGoal(ctx context.Context, input dto.UpdateGoalInput) (dto.GoalOutput, error) {
	patch := domain.GoalPatch{
		TargetWords: input.TargetWords,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		IsActive:    input.IsActive,
	}
	if input.Type != nil {
		goalType := domain.GoalType(strings.ToLower(strings.TrimSpace(*input.Type)))
		patch.Type = &goalType
	}
	goal, err := i.goals.Update(ctx, input.ID, patch)
	if err != nil {
		return dto.GoalOutput{}, err
	}
	return toGoalOutput(goal), nil
}

func (i *Interactor) DeleteGoal(ctx context.Context, id string) (dto.DeleteGoalOutput, error) {
	removed, err := i.goals.Delete(ctx, id)
	if err != nil {
		return dto.DeleteGoalOutput{}, err
	}
	return dto.DeleteGoalOutput{ID: id, ProgressRemoved: removed}, nil
}

func (i *Interactor) GetGoal(ctx context.Context, id string) (dto.GoalOutput, error) {
	goal, err := i.goals.Get(ctx, id)
	if err != nil {
		return dto.GoalOutput{}, err
	}
	return toGoalOutput(goal), nil
}

func (i *Interactor) ListGoals(ctx context.Context, input dto.ListGoalsInput) ([]dto.GoalOutput, error) {
	goals, err := i.goals.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GoalOutput, 0, len(goals))
	for _, goal := range goals {
		if goal.Archived && !input.IncludeArchived {
			continue
		}
		if input.ActiveOnly && !goal.IsActive {
			continue
		}
		out = append(out, toGoalOutput(goal))
	}
	return out, nil
}

func (i *Interactor) SetGoalActive(ctx context.Context, id string, active bool) (dto.GoalOutput, error) {
	goal, err := i.goals.SetActive(ctx, id, active)
	if err != nil {
		return dto.GoalOutput{}, err
	}
	return toGoalOutput(goal), nil
}

func (i *Interactor) ArchiveGoal(ctx context.Context, id string) (dto.GoalOutput, error) {
	goal, err := i.goals.Archive(ctx, id)
	if err != nil {
		return dto.GoalOutput{}, err
	}
	return toGoalOutput(goal), nil
}

func (i *Interactor) EnsureDefaults(ctx context.Context) (bool, error) {
	return i.goals.EnsureDefaults(ctx)
}

// ─── progress ────────────────────────────────────────────────────────────

func (i *Interactor) TrackDocumentChange(ctx context.Context, input dto.TrackInput) (dto.TrackOutput, error) {
	result, err := i.progress.TrackDocumentChange(ctx, input.DocumentID, input.ProjectID, input.WordCount, input.CharCount)
	if err != nil {
		return dto.TrackOutput{}, err
	}
	return dto.TrackOutput{
		Date:       result.Delta.Date,
		WordsDelta: result.Delta.Words,
		CharsDelta: result.Delta.Chars,
		DayWords:   result.Delta.DayWords,
		GoalIDs:    result.GoalIDs,
	}, nil
}

func (i *Interactor) PopulateHistorical(ctx context.Context) (dto.PopulateOutput, error) {
	created, docs, err := i.progress.PopulateHistorical(ctx)
	if err != nil {
		return dto.PopulateOutput{}, err
	}
	return dto.PopulateOutput{Created: created, Documents: docs}, nil
}

func (i *Interactor) SeedBaselines(ctx context.Context) (int, error) {
	return i.progress.SeedBaselines(ctx)
}

// Reconcile is the nightly pass: backfill from documents, repair the store,
// apply retention and archive goals that have aged out. Each step runs even
// when an earlier one fails; the joined error reports every failure.
func (i *Interactor) Reconcile(ctx context.Context) (dto.ReconcileOutput, error) {
	out := dto.ReconcileOutput{RanAt: i.clock.Now(), ArchivedIDs: []string{}}
	var errs []error

	if created, _, err := i.progress.PopulateHistorical(ctx); err != nil {
		errs = append(errs, fmt.Errorf("populate: %w", err))
	} else {
		out.Populated = created
	}
	if report, _, err := i.progress.ValidateAndFix(ctx); err != nil {
		errs = append(errs, fmt.Errorf("validate: %w", err))
	} else {
		out.Orphaned = report.Orphaned
		out.Duplicates = report.Duplicates
	}
	if removed, err := i.progress.Cleanup(ctx, i.opts.RetentionDays); err != nil {
		errs = append(errs, fmt.Errorf("cleanup: %w", err))
	} else {
		out.Removed = removed
	}
	if pruned, err := i.progress.PruneLedger(ctx, i.opts.RetentionDays); err != nil {
		errs = append(errs, fmt.Errorf("prune ledger: %w", err))
	} else {
		out.LedgerPruned = pruned
	}
	settings, err := i.settings.Get(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("settings: %w", err))
	} else if archived, err := i.goals.AutoArchive(ctx, settings); err != nil {
		errs = append(errs, fmt.Errorf("auto-archive: %w", err))
	} else {
		out.ArchivedIDs = archived
		i.metrics.Archived(len(archived))
	}

	joined := errors.Join(errs...)
	i.metrics.Reconciled(joined)
	if joined != nil {
		i.logger.Error("reconcile finished with errors", zap.Error(joined))
	} else {
		i.logger.Info("reconcile finished",
			zap.Int("populated", out.Populated),
			zap.Int("removed", out.Removed),
			zap.Int("archived", len(out.ArchivedIDs)),
		)
	}
	return out, joined
}

func (i *Interactor) Cleanup(ctx context.Context, retentionDays int) (dto.CleanupOutput, error) {
	if retentionDays <= 0 {
		retentionDays = i.opts.RetentionDays
	}
	removed, err := i.progress.Cleanup(ctx, retentionDays)
	if err != nil {
		return dto.CleanupOutput{}, err
	}
	pruned, err := i.progress.PruneLedger(ctx, retentionDays)
	if err != nil {
		return dto.CleanupOutput{}, err
	}
	return dto.CleanupOutput{RetentionDays: retentionDays, Removed: removed, LedgerPruned: pruned}, nil
}

func (i *Interactor) ValidateAndFix(ctx context.Context) (dto.ValidateOutput, error) {
	report, remaining, err := i.progress.ValidateAndFix(ctx)
	if err != nil {
		return dto.ValidateOutput{}, err
	}
	return dto.ValidateOutput{Orphaned: report.Orphaned, Duplicates: report.Duplicates, Remaining: remaining}, nil
}

func (i *Interactor) ListProgress(ctx context.Context, input dto.ListProgressInput) ([]dto.ProgressOutput, error) {
	for _, day := range []string{input.From, input.To} {
		if day != "" && !calendar.Valid(day) {
			return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrInvalidInput, day)
		}
	}
	rows, err := i.progress.List(ctx, input.GoalID, input.From, input.To)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProgressOutput, 0, len(rows))
	for _, row := range rows {
		out = append(out, toProgressOutput(row))
	}
	return out, nil
}

// ─── stats ───────────────────────────────────────────────────────────────

func (i *Interactor) Stats(ctx context.Context, input dto.StatsInput) (dto.GoalStatsOutput, error) {
	ref := i.clock.Now()
	if input.Reference != "" {
		parsed, err := calendar.Parse(input.Reference)
		if err != nil {
			return dto.GoalStatsOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		ref = parsed
	}
	settings, err := i.settings.Get(ctx)
	if err != nil {
		return dto.GoalStatsOutput{}, err
	}
	stats, err := i.stats.GoalStats(ctx, input.GoalID, ref, settings)
	if err != nil {
		return dto.GoalStatsOutput{}, err
	}
	return toStatsOutput(stats), nil
}

func (i *Interactor) Overview(ctx context.Context) (dto.OverviewOutput, error) {
	settings, err := i.settings.Get(ctx)
	if err != nil {
		return dto.OverviewOutput{}, err
	}
	overview, err := i.stats.Overview(ctx, settings)
	if err != nil {
		return dto.OverviewOutput{}, err
	}
	out := dto.OverviewOutput{
		Date:          overview.Date,
		TodayWords:    overview.Today.Words,
		TodayChars:    overview.Today.Chars,
		CurrentStreak: overview.CurrentStreak,
		LongestStreak: overview.LongestStreak,
		Goals:         make([]dto.GoalStatsOutput, 0, len(overview.Goals)),
		ShowChars:     settings.IncludeCharacterCount,
	}
	for _, stats := range overview.Goals {
		out.Goals = append(out.Goals, toStatsOutput(stats))
	}
	return out, nil
}

func (i *Interactor) Calendar(ctx context.Context, month string) (dto.CalendarOutput, error) {
	ref := i.clock.Now()
	if month != "" {
		parsed, err := calendar.ParseMonth(month)
		if err != nil {
			return dto.CalendarOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		ref = parsed
	}
	cells, target, err := i.stats.Calendar(ctx, ref)
	if err != nil {
		return dto.CalendarOutput{}, err
	}
	out := dto.CalendarOutput{
		Month:       ref.Format("2006-01"),
		DailyTarget: target,
		Cells:       make([]dto.CalendarCellOutput, 0, len(cells)),
	}
	for _, cell := range cells {
		out.Cells = append(out.Cells, dto.CalendarCellOutput{Date: cell.Date, Words: cell.Words, GoalMet: cell.GoalMet})
	}
	return out, nil
}

func (i *Interactor) Streak(ctx context.Context) (dto.StreakOutput, error) {
	today, current, longest, err := i.stats.Streak(ctx)
	if err != nil {
		return dto.StreakOutput{}, err
	}
	return dto.StreakOutput{Date: today, Current: current, Longest: longest}, nil
}

func (i *Interactor) History(ctx context.Context, from, to string) ([]dto.DailyTotalOutput, error) {
	if to == "" {
		to = calendar.Day(i.clock.Now())
	}
	if from == "" {
		var err error
		if from, err = calendar.AddDays(to, -29); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
	}
	totals, err := i.stats.History(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DailyTotalOutput, 0, len(totals))
	for _, total := range totals {
		out = append(out, dto.DailyTotalOutput{Date: total.Date, Words: total.Words, Chars: total.Chars, Goals: total.Goals})
	}
	return out, nil
}

// ─── settings ────────────────────────────────────────────────────────────

func (i *Interactor) GetSettings(ctx context.Context) (dto.SettingsOutput, error) {
	settings, err := i.settings.Get(ctx)
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	return toSettingsOutput(settings), nil
}

func (i *Interactor) UpdateSettings(ctx context.Context, input dto.SettingsPatchInput) (dto.SettingsOutput, error) {
	settings, err := i.settings.Update(ctx, domain.SettingsPatch{
		EnableNotifications:   input.EnableNotifications,
		NotificationTime:      input.NotificationTime,
		WeekStartsOn:          input.WeekStartsOn,
		IncludeCharacterCount: input.IncludeCharacterCount,
		AutoArchiveOldGoals:   input.AutoArchiveOldGoals,
		ArchiveAfterDays:      input.ArchiveAfterDays,
	})
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	return toSettingsOutput(settings), nil
}

// ─── maintenance ─────────────────────────────────────────────────────────

func (i *Interactor) Reindex(ctx context.Context) (dto.ReindexOutput, error) {
	rows, err := i.progress.Reindex(ctx)
	if err != nil {
		return dto.ReindexOutput{}, err
	}
	return dto.ReindexOutput{Rows: rows}, nil
}

func (i *Interactor) Export(ctx context.Context, path string) (dto.ExportOutput, error) {
	if strings.TrimSpace(path) == "" {
		return dto.ExportOutput{}, fmt.Errorf("%w: export path is required", apperrors.ErrInvalidInput)
	}
	if i.exporter == nil {
		return dto.ExportOutput{}, fmt.Errorf("report exporter is not configured")
	}
	settings, err := i.settings.Get(ctx)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	goals, err := i.goals.List(ctx)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	rows, err := i.progress.List(ctx, "", "", "")
	if err != nil {
		return dto.ExportOutput{}, err
	}
	now := i.clock.Now()
	report := domain.Report{GeneratedAt: now, Goals: goals, Progress: rows, Stats: make([]domain.GoalStats, 0, len(goals))}
	for _, goal := range goals {
		stats, err := domain.ComputeGoalStats(goal, rows, now, settings.WeekStartsOn)
		if err != nil {
			return dto.ExportOutput{}, err
		}
		report.Stats = append(report.Stats, stats)
	}
	if err := i.exporter.Export(ctx, path, report); err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{Path: path, Goals: len(goals), Progress: len(rows)}, nil
}

func (i *Interactor) Reload(ctx context.Context) error {
	return errors.Join(
		i.goals.Reload(ctx),
		i.progress.Reload(ctx),
		i.settings.Reload(ctx),
	)
}

// ─── mapping ─────────────────────────────────────────────────────────────

func toGoalOutput(goal domain.WritingGoal) dto.GoalOutput {
	return dto.GoalOutput{
		ID:          goal.ID,
		Type:        string(goal.Type),
		TargetWords: goal.TargetWords,
		StartDate:   goal.StartDate,
		EndDate:     goal.EndDate,
		IsActive:    goal.IsActive,
		Archived:    goal.Archived,
		Status:      string(goal.Status()),
		ArchivedAt:  goal.ArchivedAt,
		CreatedAt:   goal.CreatedAt,
		UpdatedAt:   goal.UpdatedAt,
	}
}

func toProgressOutput(row domain.GoalProgress) dto.ProgressOutput {
	return dto.ProgressOutput{
		ID:           row.ID,
		GoalID:       row.GoalID,
		Date:         row.Date,
		WordsWritten: row.WordsWritten,
		CharsWritten: row.CharsWritten,
		ProjectIDs:   append([]string(nil), row.ProjectIDs...),
		DocumentIDs:  append([]string(nil), row.DocumentIDs...),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func toStatsOutput(stats domain.GoalStats) dto.GoalStatsOutput {
	return dto.GoalStatsOutput{
		Goal:           toGoalOutput(stats.Goal),
		PeriodStart:    stats.Period.Range.Start,
		PeriodEnd:      stats.Period.Range.End,
		WordsWritten:   stats.Period.WordsWritten,
		CharsWritten:   stats.Period.CharsWritten,
		DayCount:       stats.Period.DayCount,
		Percent:        stats.Percent,
		DisplayPercent: domain.ClampPercent(stats.Percent),
		RemainingWords: stats.RemainingWords,
		CurrentStreak:  stats.CurrentStreak,
		LongestStreak:  stats.LongestStreak,
		DaysActive:     stats.DaysActive,
	}
}

func toSettingsOutput(settings domain.Settings) dto.SettingsOutput {
	return dto.SettingsOutput{
		EnableNotifications:   settings.EnableNotifications,
		NotificationTime:      settings.NotificationTime,
		WeekStartsOn:          settings.WeekStartsOn,
		IncludeCharacterCount: settings.IncludeCharacterCount,
		AutoArchiveOldGoals:   settings.AutoArchiveOldGoals,
		ArchiveAfterDays:      settings.ArchiveAfterDays,
	}
}
