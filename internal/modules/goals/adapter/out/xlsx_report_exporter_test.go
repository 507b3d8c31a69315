package out_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	out "inkwell/internal/modules/goals/adapter/out"
	"inkwell/internal/modules/goals/domain"
)

func TestXLSXReportExporterWritesSheets(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	goal := domain.WritingGoal{
		ID: "g1", Type: domain.GoalTypeDaily, TargetWords: 500,
		StartDate: "2024-01-01", EndDate: "2024-12-31", IsActive: true,
		CreatedAt: now, UpdatedAt: now,
	}
	report := domain.Report{
		GeneratedAt: now,
		Goals:       []domain.WritingGoal{goal},
		Progress:    []domain.GoalProgress{progressRow("g1", "2024-03-01", 250, 1250)},
		Stats: []domain.GoalStats{{
			Goal:           goal,
			Period:         domain.PeriodTotals{Range: domain.DateRange{Start: "2024-03-01", End: "2024-03-01"}, WordsWritten: 250, DayCount: 1},
			Percent:        50,
			RemainingWords: 250,
			CurrentStreak:  1,
			LongestStreak:  1,
			DaysActive:     1,
		}},
	}
	path := filepath.Join(t.TempDir(), "exports", "report.xlsx")

	require.NoError(t, out.NewXLSXReportExporter().Export(context.Background(), path, report))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{out.SheetGoals, out.SheetProgress, out.SheetStats}, f.GetSheetList())

	goals, err := f.GetRows(out.SheetGoals)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, []string{"g1", "daily", "500", "2024-01-01", "2024-12-31", "active"}, goals[1][:6])

	progress, err := f.GetRows(out.SheetProgress)
	require.NoError(t, err)
	require.Len(t, progress, 2)
	assert.Equal(t, []string{"g1", "2024-03-01", "250", "1250", "novel", "ch1, ch2"}, progress[1][:6])

	stats, err := f.GetRows(out.SheetStats)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "50", stats[1][6])
}

func TestXLSXReportExporterRequiresPath(t *testing.T) {
	t.Parallel()
	err := out.NewXLSXReportExporter().Export(context.Background(), " ", domain.Report{})
	require.Error(t, err)
}
