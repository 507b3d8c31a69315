package goals

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	goalsdto "inkwell/internal/modules/goals/dto"
	"inkwell/internal/ui/components"
	"inkwell/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	ListGoals(ctx context.Context, includeArchived, activeOnly bool) ([]goalsdto.GoalOutput, error)
	Stats(ctx context.Context, goalID, reference string) (goalsdto.GoalStatsOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type GoalsLoadedMsg struct {
	Goals []goalsdto.GoalOutput
	Err   error
}

type StatsLoadedMsg struct {
	Stats goalsdto.GoalStatsOutput
	Err   error
}

// ─── list item ───────────────────────────────────────────────────────────────

type goalItem struct {
	goal goalsdto.GoalOutput
}

func (i goalItem) Title() string {
	return fmt.Sprintf("%s · %d words", i.goal.Type, i.goal.TargetWords)
}

func (i goalItem) Description() string {
	return fmt.Sprintf("%s → %s  [%s]", i.goal.StartDate, i.goal.EndDate, i.goal.Status)
}

func (i goalItem) FilterValue() string { return i.goal.Type + " " + i.goal.Status + " " + i.goal.ID }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    Port
	list    list.Model
	stats   goalsdto.GoalStatsOutput
	detail  viewport.Model
	loading bool
	width   int
	height  int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Goals"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	return Model{port: port, list: l, detail: vp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return m.Refresh()
}

// Refresh reloads the goal list, archived goals included.
func (m Model) Refresh() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		if port == nil {
			return GoalsLoadedMsg{Err: fmt.Errorf("goals are not configured")}
		}
		goals, err := port.ListGoals(context.Background(), true, false)
		return GoalsLoadedMsg{Goals: goals, Err: err}
	}
}

func (m Model) loadStatsCmd(goalID string) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		stats, err := port.Stats(context.Background(), goalID, "")
		return StatsLoadedMsg{Stats: stats, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case GoalsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Goals: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Goals"
		items := make([]list.Item, len(msg.Goals))
		for i, g := range msg.Goals {
			items[i] = goalItem{goal: g}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if id, ok := m.SelectedGoalID(); ok {
			cmds = append(cmds, m.loadStatsCmd(id))
		} else if len(msg.Goals) > 0 {
			cmds = append(cmds, m.loadStatsCmd(msg.Goals[0].ID))
		} else {
			m.detail.SetContent(theme.Muted.Render("no goals yet"))
		}

	case StatsLoadedMsg:
		if msg.Err != nil {
			m.detail.SetContent(theme.Bad.Render(msg.Err.Error()))
		} else {
			m.stats = msg.Stats
			m.detail.SetContent(m.renderDetail())
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if id, ok := m.SelectedGoalID(); ok {
				cmds = append(cmds, m.loadStatsCmd(id))
			}
		}

		var vCmd tea.Cmd
		m.detail, vCmd = m.detail.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, "Loading goals…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(max(1, detailW-2)).
		Height(max(1, m.height-2)).
		Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// SelectedGoalID returns the highlighted goal, if any.
func (m Model) SelectedGoalID() (string, bool) {
	if item, ok := m.list.SelectedItem().(goalItem); ok {
		return item.goal.ID, true
	}
	return "", false
}

// Filtering reports whether the list's search filter is active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	m.list.SetSize(listW, m.height)
	m.detail.Width = max(1, m.width-listW-4)
	m.detail.Height = max(1, m.height-4)
	if m.stats.Goal.ID != "" {
		m.detail.SetContent(m.renderDetail())
	}
}

func (m Model) renderDetail() string {
	s := m.stats
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(fmt.Sprintf("%s goal", s.Goal.Type)) + "\n")
	sb.WriteString(theme.Muted.Render(s.Goal.ID) + "\n\n")
	sb.WriteString(fmt.Sprintf("status    %s\n", s.Goal.Status))
	sb.WriteString(fmt.Sprintf("window    %s → %s\n", s.Goal.StartDate, s.Goal.EndDate))
	sb.WriteString(fmt.Sprintf("period    %s → %s\n\n", s.PeriodStart, s.PeriodEnd))
	sb.WriteString(fmt.Sprintf("%d / %d words  %d%%\n", s.WordsWritten, s.Goal.TargetWords, s.Percent))
	sb.WriteString(components.ProgressBar(s.DisplayPercent, max(10, m.detail.Width-4)) + "\n\n")
	sb.WriteString(fmt.Sprintf("remaining     %d\n", s.RemainingWords))
	sb.WriteString(fmt.Sprintf("days written  %d this period, %d total\n", s.DayCount, s.DaysActive))
	sb.WriteString(fmt.Sprintf("streak        %d (best %d)\n", s.CurrentStreak, s.LongestStreak))
	return sb.String()
}
