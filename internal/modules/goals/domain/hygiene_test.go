package domain_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"inkwell/internal/modules/goals/domain"
)

func TestCleanupOldProgressRetention(t *testing.T) {
	t.Parallel()
	today := "2024-03-01"
	old, _ := domain.AddDays(today, -40)
	recent, _ := domain.AddDays(today, -10)
	progress := []domain.GoalProgress{row("g", old, 10), row("g", recent, 20)}

	got := domain.CleanupOldProgress(progress, 30, today)
	if len(got) != 1 || got[0].Date != recent {
		t.Fatalf("expected only %s to survive, got %+v", recent, got)
	}

	edge, _ := domain.AddDays(today, -30)
	if kept := domain.CleanupOldProgress([]domain.GoalProgress{row("g", edge, 1)}, 30, today); len(kept) != 1 {
		t.Fatalf("row exactly at the cutoff should be kept")
	}
	if kept := domain.CleanupOldProgress(progress, 0, today); len(kept) != 2 {
		t.Fatalf("default retention should keep both rows, got %d", len(kept))
	}
}

func TestValidateAndFixProgress(t *testing.T) {
	t.Parallel()
	t0 := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	progress := []domain.GoalProgress{
		{ID: "a", GoalID: "goal-1", Date: "2024-03-01", WordsWritten: 10, UpdatedAt: t0.Add(time.Hour)},
		{ID: "orphan", GoalID: "gone", Date: "2024-03-01", WordsWritten: 99, UpdatedAt: t0},
		{ID: "b", GoalID: "goal-1", Date: "2024-03-01", WordsWritten: 20, UpdatedAt: t0},
		{ID: "c", GoalID: "goal-1", Date: "2024-03-02", WordsWritten: 5, UpdatedAt: t0},
		{ID: "d", GoalID: "goal-1", Date: "2024-03-02", WordsWritten: 6, UpdatedAt: t0},
	}
	fixed, report := domain.ValidateAndFixProgress(progress, []domain.WritingGoal{dailyGoal()})

	ids := make([]string, 0, len(fixed))
	for _, p := range fixed {
		ids = append(ids, p.ID)
	}
	if diff := cmp.Diff([]string{"a", "d"}, ids); diff != "" {
		t.Fatalf("kept rows (-want +got):\n%s", diff)
	}
	if report.Orphaned != 1 || report.Duplicates != 2 || !report.Changed() {
		t.Fatalf("unexpected report %+v", report)
	}

	again, second := domain.ValidateAndFixProgress(fixed, []domain.WritingGoal{dailyGoal()})
	if second.Changed() || len(again) != 2 {
		t.Fatalf("second pass should be a no-op, got %+v", second)
	}
}

func TestArchiveCandidates(t *testing.T) {
	t.Parallel()
	old := dailyGoal()
	old.ID = "old"
	old.StartDate, old.EndDate = "2023-01-01", "2023-12-31"
	recent := dailyGoal()
	recent.ID = "recent"
	recent.StartDate, recent.EndDate = "2024-01-01", "2024-02-20"
	current := dailyGoal()

	settings := domain.DefaultSettings()
	goals := []domain.WritingGoal{old, recent, current}
	if got := domain.ArchiveCandidates(goals, settings, "2024-03-01"); len(got) != 0 {
		t.Fatalf("auto-archive disabled should yield nothing, got %+v", got)
	}

	settings.AutoArchiveOldGoals = true
	got := domain.ArchiveCandidates(goals, settings, "2024-03-01")
	if len(got) != 1 || got[0].ID != "old" {
		t.Fatalf("expected only old goal, got %+v", got)
	}

	updated, archived := domain.ArchiveAll(goals, got, now)
	if diff := cmp.Diff([]string{"old"}, archived); diff != "" {
		t.Fatalf("archived ids (-want +got):\n%s", diff)
	}
	if !updated[0].Archived || updated[0].IsActive || updated[1].Archived {
		t.Fatalf("unexpected goals after archive %+v", updated)
	}
	if goals[0].Archived {
		t.Fatalf("input slice must not be modified")
	}
}
