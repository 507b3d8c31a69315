package domain_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"inkwell/internal/modules/goals/domain"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("prog-%d", n)
	}
}

func TestPopulateScenarioProducesSingleRow(t *testing.T) {
	t.Parallel()
	docs := []domain.Document{{
		ID:        "d1",
		ProjectID: "p1",
		WordCount: 300,
		UpdatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}}
	runAt := time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)

	got := domain.Populate([]domain.WritingGoal{dailyGoal()}, docs, nil, runAt, sequentialIDs())

	want := []domain.GoalProgress{{
		ID:           "prog-1",
		GoalID:       "goal-1",
		Date:         "2024-03-01",
		WordsWritten: 300,
		CharsWritten: 1500,
		ProjectIDs:   []string{"p1"},
		DocumentIDs:  []string{"d1"},
		CreatedAt:    runAt,
		UpdatedAt:    runAt,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("populate mismatch (-want +got):\n%s", diff)
	}
}

func TestPopulateAggregatesDocumentsOnSameDay(t *testing.T) {
	t.Parallel()
	day := time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)
	docs := []domain.Document{
		{ID: "d1", ProjectID: "p1", WordCount: 100, CharCount: 640, UpdatedAt: day},
		{ID: "d2", ProjectID: "p2", WordCount: 50, UpdatedAt: day.Add(3 * time.Hour)},
		{ID: "d3", ProjectID: "p1", WordCount: 10, UpdatedAt: day.Add(5 * time.Hour)},
	}
	got := domain.Populate([]domain.WritingGoal{dailyGoal()}, docs, nil, now, sequentialIDs())
	if len(got) != 1 {
		t.Fatalf("expected one row, got %d", len(got))
	}
	row := got[0]
	if row.WordsWritten != 160 || row.CharsWritten != 640+250+50 {
		t.Fatalf("unexpected totals: words=%d chars=%d", row.WordsWritten, row.CharsWritten)
	}
	if diff := cmp.Diff([]string{"p1", "p2"}, row.ProjectIDs); diff != "" {
		t.Fatalf("project ids (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"d1", "d2", "d3"}, row.DocumentIDs); diff != "" {
		t.Fatalf("document ids (-want +got):\n%s", diff)
	}
}

func TestPopulateIsUniqueAndIdempotent(t *testing.T) {
	t.Parallel()
	weekly := dailyGoal()
	weekly.ID = "goal-2"
	weekly.Type = domain.GoalTypeWeekly
	goals := []domain.WritingGoal{dailyGoal(), weekly}

	docs := make([]domain.Document, 0)
	for i := 0; i < 20; i++ {
		docs = append(docs, domain.Document{
			ID:        fmt.Sprintf("d%d", i),
			ProjectID: "p1",
			WordCount: 10 * (i + 1),
			UpdatedAt: time.Date(2024, 2, 1+i%7, 12, 0, 0, 0, time.UTC),
		})
	}

	first := domain.Populate(goals, docs, nil, now, sequentialIDs())
	seen := map[domain.ProgressKey]bool{}
	for _, row := range first {
		if seen[row.Key()] {
			t.Fatalf("duplicate row for %+v", row.Key())
		}
		seen[row.Key()] = true
	}
	if len(first) != 14 {
		t.Fatalf("expected 7 days for 2 goals, got %d rows", len(first))
	}

	second := domain.Populate(goals, docs, first, now, sequentialIDs())
	if len(second) != 0 {
		t.Fatalf("second run should add nothing, got %d rows", len(second))
	}
}

func TestPopulateNeverOverwritesExistingDay(t *testing.T) {
	t.Parallel()
	existing := []domain.GoalProgress{{ID: "kept", GoalID: "goal-1", Date: "2024-03-01", WordsWritten: 42}}
	docs := []domain.Document{{ID: "d1", ProjectID: "p1", WordCount: 900, UpdatedAt: now}}
	got := domain.Populate([]domain.WritingGoal{dailyGoal()}, docs, existing, now, sequentialIDs())
	if len(got) != 0 {
		t.Fatalf("existing day must stay frozen, got %+v", got)
	}
}

func TestPopulateSkipsZeroWordDocuments(t *testing.T) {
	t.Parallel()
	docs := []domain.Document{
		{ID: "empty", ProjectID: "p1", WordCount: 0, CharCount: 12, UpdatedAt: time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)},
	}
	if activity := domain.ExtractActivity(docs); len(activity) != 0 {
		t.Fatalf("zero-word document should yield no activity, got %v", activity)
	}
	if got := domain.Populate([]domain.WritingGoal{dailyGoal()}, docs, nil, now, sequentialIDs()); len(got) != 0 {
		t.Fatalf("expected no rows, got %+v", got)
	}
}

func TestPopulateClipsToTodayAndSkipsInactiveGoals(t *testing.T) {
	t.Parallel()
	future := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	docs := []domain.Document{{ID: "d1", ProjectID: "p1", WordCount: 10, UpdatedAt: future}}
	if got := domain.Populate([]domain.WritingGoal{dailyGoal()}, docs, nil, now, sequentialIDs()); len(got) != 0 {
		t.Fatalf("future activity must not be populated, got %+v", got)
	}

	inactive := dailyGoal()
	inactive.IsActive = false
	docs[0].UpdatedAt = now
	if got := domain.Populate([]domain.WritingGoal{inactive}, docs, nil, now, sequentialIDs()); len(got) != 0 {
		t.Fatalf("inactive goal must not be populated, got %+v", got)
	}
}

func TestExtractActivityGroupsByUTCDay(t *testing.T) {
	t.Parallel()
	tokyo := time.FixedZone("JST", 9*60*60)
	docs := []domain.Document{
		{ID: "d1", ProjectID: "p1", WordCount: 10, UpdatedAt: time.Date(2024, 3, 2, 8, 0, 0, 0, tokyo)},
		{ID: "d2", ProjectID: "p1", WordCount: 20, UpdatedAt: time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)},
	}
	activity := domain.ExtractActivity(docs)
	if len(activity["2024-03-01"]) != 2 {
		t.Fatalf("expected both documents on 2024-03-01, got %v", activity)
	}
}
