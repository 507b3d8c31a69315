package out_test

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	out "inkwell/internal/modules/goals/adapter/out"
	"inkwell/internal/modules/goals/domain"
)

func progressRow(goalID, date string, words, chars int) domain.GoalProgress {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return domain.GoalProgress{
		ID:           goalID + "-" + date,
		GoalID:       goalID,
		Date:         date,
		WordsWritten: words,
		CharsWritten: chars,
		ProjectIDs:   []string{"novel"},
		DocumentIDs:  []string{"ch1", "ch2"},
		CreatedAt:    at,
		UpdatedAt:    at,
	}
}

func TestSQLiteProgressProjectorDailyTotals(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	projector, err := out.NewSQLiteProgressProjector(filepath.Join(t.TempDir(), "nested", "inkwell.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = projector.(io.Closer).Close() })

	require.NoError(t, projector.Upsert(ctx,
		progressRow("daily", "2024-02-29", 300, 1500),
		progressRow("monthly", "2024-02-29", 300, 1500),
		progressRow("daily", "2024-03-01", 120, 600),
	))
	// Re-upserting a key replaces the row.
	require.NoError(t, projector.Upsert(ctx, progressRow("daily", "2024-03-01", 180, 900)))

	totals, err := projector.DailyTotals(ctx, "2024-02-01", "2024-03-31")
	require.NoError(t, err)
	want := []domain.DailyTotal{
		{Date: "2024-02-29", Words: 300, Chars: 1500, Goals: 2},
		{Date: "2024-03-01", Words: 180, Chars: 900, Goals: 1},
	}
	if diff := cmp.Diff(want, totals); diff != "" {
		t.Fatalf("daily totals mismatch (-want +got):\n%s", diff)
	}

	narrow, err := projector.DailyTotals(ctx, "2024-03-01", "2024-03-01")
	require.NoError(t, err)
	require.Len(t, narrow, 1)

	require.NoError(t, projector.DeleteGoal(ctx, "monthly"))
	totals, err = projector.DailyTotals(ctx, "2024-02-01", "2024-03-31")
	require.NoError(t, err)
	require.Equal(t, 1, totals[0].Goals)

	require.NoError(t, projector.Reset(ctx))
	totals, err = projector.DailyTotals(ctx, "2024-02-01", "2024-03-31")
	require.NoError(t, err)
	require.Empty(t, totals)
}

func TestSQLiteProgressProjectorReopensExistingSchema(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "inkwell.db")

	first, err := out.NewSQLiteProgressProjector(path)
	require.NoError(t, err)
	require.NoError(t, first.Upsert(ctx, progressRow("daily", "2024-03-01", 50, 250)))
	require.NoError(t, first.(io.Closer).Close())

	second, err := out.NewSQLiteProgressProjector(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.(io.Closer).Close() })
	totals, err := second.DailyTotals(ctx, "2024-03-01", "2024-03-01")
	require.NoError(t, err)
	require.Equal(t, []domain.DailyTotal{{Date: "2024-03-01", Words: 50, Chars: 250, Goals: 1}}, totals)
}
