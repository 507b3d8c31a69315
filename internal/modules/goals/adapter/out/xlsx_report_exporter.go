package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"inkwell/internal/modules/goals/domain"
	goalsout "inkwell/internal/modules/goals/port/out"

	"github.com/xuri/excelize/v2"
)

const (
	SheetGoals    = "Goals"
	SheetProgress = "Progress"
	SheetStats    = "Stats"
)

type XLSXReportExporter struct{}

func NewXLSXReportExporter() goalsout.ReportExporter {
	return XLSXReportExporter{}
}

func (XLSXReportExporter) Export(ctx context.Context, path string, report domain.Report) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("export path is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), SheetGoals)
	if _, err := f.NewSheet(SheetProgress); err != nil {
		return fmt.Errorf("create progress sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetStats); err != nil {
		return fmt.Errorf("create stats sheet: %w", err)
	}

	goalRows := [][]any{{"ID", "Type", "Target", "Start", "End", "Status", "Created", "Updated"}}
	for _, g := range report.Goals {
		goalRows = append(goalRows, []any{
			g.ID, string(g.Type), g.TargetWords, g.StartDate, g.EndDate,
			string(g.Status()), formatTime(g.CreatedAt), formatTime(g.UpdatedAt),
		})
	}
	if err := writeRows(f, SheetGoals, goalRows); err != nil {
		return err
	}

	progressRows := [][]any{{"Goal", "Date", "Words", "Chars", "Projects", "Documents", "Updated"}}
	for _, p := range report.Progress {
		progressRows = append(progressRows, []any{
			p.GoalID, p.Date, p.WordsWritten, p.CharsWritten,
			strings.Join(p.ProjectIDs, ", "), strings.Join(p.DocumentIDs, ", "), formatTime(p.UpdatedAt),
		})
	}
	if err := writeRows(f, SheetProgress, progressRows); err != nil {
		return err
	}

	statsRows := [][]any{{"Goal", "Type", "Period Start", "Period End", "Words", "Target", "Percent", "Remaining", "Current Streak", "Longest Streak", "Active Days"}}
	for _, s := range report.Stats {
		statsRows = append(statsRows, []any{
			s.Goal.ID, string(s.Goal.Type), s.Period.Range.Start, s.Period.Range.End,
			s.Period.WordsWritten, s.Goal.TargetWords, s.Percent, s.RemainingWords,
			s.CurrentStreak, s.LongestStreak, s.DaysActive,
		})
	}
	if err := writeRows(f, SheetStats, statsRows); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
