package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"inkwell/internal/ui/theme"
)

// HeatCell is one day of a month grid.
type HeatCell struct {
	Date  time.Time
	Words int
	Met   bool
}

var weekdayLabels = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// HeatLevel maps a day's words onto theme.Heat. Days that met the goal use the
// top shade; other days are bucketed by thirds of the target.
func HeatLevel(words, target int, met bool) int {
	switch {
	case words <= 0:
		return 0
	case met:
		return len(theme.Heat) - 1
	case target <= 0:
		return 2
	case words*3 < target:
		return 1
	case words*3 < target*2:
		return 2
	default:
		return 3
	}
}

// RenderHeatMap draws a month as weeks of colored day cells. weekStartsOn is
// 0 for Sunday through 6 for Saturday.
func RenderHeatMap(cells []HeatCell, target, weekStartsOn int) string {
	if len(cells) == 0 {
		return theme.Muted.Render("no days")
	}
	weekStartsOn = ((weekStartsOn % 7) + 7) % 7
	cell := lipgloss.NewStyle().Width(4).Align(lipgloss.Center)

	var sb strings.Builder
	header := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		header = append(header, cell.Foreground(theme.Subtext0).Render(weekdayLabels[(weekStartsOn+i)%7]))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...) + "\n")

	row := make([]string, 0, 7)
	lead := (int(cells[0].Date.Weekday()) - weekStartsOn + 7) % 7
	for i := 0; i < lead; i++ {
		row = append(row, cell.Render(""))
	}
	for _, c := range cells {
		level := HeatLevel(c.Words, target, c.Met)
		style := cell.Background(theme.Heat[level]).Foreground(theme.Base)
		if level == 0 {
			style = style.Foreground(theme.Subtext0)
		}
		row = append(row, style.Render(fmt.Sprintf("%2d", c.Date.Day())))
		if len(row) == 7 {
			sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...) + "\n")
			row = row[:0]
		}
	}
	if len(row) > 0 {
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// ProgressBar renders percent (clamped to 0..100) as a bar width cells wide.
func ProgressBar(percent, width int) string {
	if width < 1 {
		width = 1
	}
	percent = max(0, min(percent, 100))
	filled := percent * width / 100
	color := theme.Sapphire
	if percent >= 100 {
		color = theme.Green
	}
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Surface1).Render(strings.Repeat("░", width-filled))
}
