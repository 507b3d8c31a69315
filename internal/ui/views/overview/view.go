package overview

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	goalsdto "inkwell/internal/modules/goals/dto"
	"inkwell/internal/ui/components"
	"inkwell/internal/ui/theme"
)

// HistoryDays is how many days the recent-activity chart covers.
const HistoryDays = 14

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Overview(ctx context.Context) (goalsdto.OverviewOutput, error)
	History(ctx context.Context, from, to string) ([]goalsdto.DailyTotalOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Overview goalsdto.OverviewOutput
	History  []goalsdto.DailyTotalOutput
	Err      error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	overview goalsdto.OverviewOutput
	history  []goalsdto.DailyTotalOutput
	spinner  spinner.Model
	loading  bool
	err      error
	width    int
	height   int
}

func New(port Port) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{port: port, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Refresh(), m.spinner.Tick)
}

// Refresh reloads the overview and recent history.
func (m Model) Refresh() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		if port == nil {
			return LoadedMsg{Err: fmt.Errorf("goals are not configured")}
		}
		ctx := context.Background()
		ov, err := port.Overview(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		// History is optional; the index may not be built yet.
		hist, _ := port.History(ctx, "", "")
		if len(hist) > HistoryDays {
			hist = hist[len(hist)-HistoryDays:]
		}
		return LoadedMsg{Overview: ov, History: hist}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.overview = msg.Overview
			m.history = msg.History
		}
	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading goals…")
	}
	if m.err != nil {
		return theme.Bad.Render("overview: " + m.err.Error())
	}

	ov := m.overview
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Today "+ov.Date) + "\n\n")
	today := fmt.Sprintf("%s words", theme.Hot.Render(fmt.Sprintf("%d", ov.TodayWords)))
	if ov.ShowChars {
		today += fmt.Sprintf("  %s chars", theme.Hot.Render(fmt.Sprintf("%d", ov.TodayChars)))
	}
	sb.WriteString(today + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("streak %d days · best %d", ov.CurrentStreak, ov.LongestStreak)) + "\n\n")

	barW := max(10, min(40, m.width-40))
	if len(ov.Goals) == 0 {
		sb.WriteString(theme.Muted.Render("no active goals") + "\n")
	}
	for _, g := range ov.Goals {
		label := fmt.Sprintf("%-8s %6d/%-6d", g.Goal.Type, g.WordsWritten, g.Goal.TargetWords)
		pct := fmt.Sprintf("%4d%%", g.Percent)
		if g.Percent >= 100 {
			pct = theme.Good.Render(pct)
		}
		sb.WriteString(label + " " + components.ProgressBar(g.DisplayPercent, barW) + " " + pct + "\n")
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("         %s → %s  %d left", g.PeriodStart, g.PeriodEnd, g.RemainingWords)) + "\n")
	}

	if len(m.history) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Recent days") + "\n")
		sb.WriteString(renderHistory(m.history, barW))
	}
	return theme.Pane.Width(max(20, m.width-2)).Render(strings.TrimRight(sb.String(), "\n"))
}

func renderHistory(days []goalsdto.DailyTotalOutput, width int) string {
	peak := 0
	for _, d := range days {
		peak = max(peak, d.Words)
	}
	var sb strings.Builder
	for _, d := range days {
		pct := 0
		if peak > 0 {
			pct = d.Words * 100 / peak
		}
		sb.WriteString(fmt.Sprintf("%s %s %d\n", d.Date[5:], components.ProgressBar(pct, width), d.Words))
	}
	return sb.String()
}
