package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	goalsdto "inkwell/internal/modules/goals/dto"
	"inkwell/internal/ui/components"
	"inkwell/internal/ui/theme"
	calendarview "inkwell/internal/ui/views/calendar"
	goalsview "inkwell/internal/ui/views/goals"
	overviewview "inkwell/internal/ui/views/overview"
)

// RefreshInterval is how often the dashboard re-reads persisted state so
// saves tracked by a running watcher show up.
const RefreshInterval = 30 * time.Second

// ─── ports ───────────────────────────────────────────────────────────────────

// GoalsPort is everything the dashboard needs from the goals module. The
// sub-view ports are narrower slices of it.
type GoalsPort interface {
	overviewview.Port
	goalsview.Port
	calendarview.Port

	Populate(ctx context.Context) (goalsdto.PopulateOutput, error)
	Reconcile(ctx context.Context) (goalsdto.ReconcileOutput, error)
	Reindex(ctx context.Context) (goalsdto.ReindexOutput, error)
	SetGoalActive(ctx context.Context, id string, active bool) (goalsdto.GoalOutput, error)
	ArchiveGoal(ctx context.Context, id string) (goalsdto.GoalOutput, error)
	Export(ctx context.Context, path string) (goalsdto.ExportOutput, error)
	Reload(ctx context.Context) error
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabOverview tabID = iota
	tabGoals
	tabCalendar
	tabCount
)

var tabLabels = [tabCount]string{"Overview", "Goals", "Calendar"}

// ─── async messages ──────────────────────────────────────────────────────────

type tickMsg time.Time

type reloadedMsg struct{ err error }

// actionDoneMsg reports a palette action. Successful actions refresh every view.
type actionDoneMsg struct {
	status string
	err    error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Month   key.Binding
	Refresh key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Month:   key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "calendar month")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Month, k.Refresh},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the periodic
// refresh, the help overlay and the command palette. Rendering is delegated
// to sub-views.
type Model struct {
	vaultPath string
	goals     GoalsPort

	overView overviewview.Model
	goalView goalsview.Model
	calView  calendarview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(vaultPath string, goals GoalsPort) Model {
	return Model{
		vaultPath: vaultPath,
		goals:     goals,
		overView:  overviewview.New(goals),
		goalView:  goalsview.New(goals),
		calView:   calendarview.New(goals),
		activeTab: tabOverview,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(paletteCommands),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.overView.Init(),
		m.goalView.Init(),
		m.calView.Init(),
		tick(),
	)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.reloadCmd(), tick())

	case reloadedMsg:
		if msg.err != nil {
			m.status = "reload: " + msg.err.Error()
			return m, nil
		}
		return m, m.refreshAll()

	case actionDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = msg.status
		return m, m.refreshAll()

	case overviewview.LoadedMsg, spinner.TickMsg:
		var cmd tea.Cmd
		m.overView, cmd = m.overView.Update(msg)
		return m, cmd

	case goalsview.GoalsLoadedMsg, goalsview.StatsLoadedMsg:
		var cmd tea.Cmd
		m.goalView, cmd = m.goalView.Update(msg)
		return m, cmd

	case calendarview.LoadedMsg:
		if msg.Err != nil {
			m.status = "calendar: " + msg.Err.Error()
		}
		var cmd tea.Cmd
		m.calView, cmd = m.calView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the goal list while its search filter is open.
		if m.activeTab == tabGoals && m.goalView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "r":
			m.status = "refreshing"
			return m, m.reloadCmd()
		}
	}

	// Everything else goes to the active tab.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabOverview:
		m.overView, tabCmd = m.overView.Update(msg)
	case tabGoals:
		m.goalView, tabCmd = m.goalView.Update(msg)
	case tabCalendar:
		m.calView, tabCmd = m.calView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(1, m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar))

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabOverview:
		return m.overView.View()
	case tabGoals:
		return m.goalView.View()
	case tabCalendar:
		return m.calView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "inkwell  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ───────────────────────────────────────────────────────

// paletteCommands lists what executePalette accepts, in suggestion order.
var paletteCommands = []components.PaletteCommand{
	{Name: "refresh", Help: "re-read stored state"},
	{Name: "populate", Help: "backfill days from manuscript history"},
	{Name: "reconcile", Help: "run the nightly maintenance now"},
	{Name: "reindex", Help: "rebuild the progress index"},
	{Name: "calendar", Args: "[YYYY-MM]", Help: "open the heatmap for a month"},
	{Name: "goal:activate", Args: "[id]", Help: "start tracking a goal"},
	{Name: "goal:deactivate", Args: "[id]", Help: "pause a goal"},
	{Name: "goal:archive", Args: "[id]", Help: "archive a goal"},
	{Name: "export", Args: "<file.xlsx>", Help: "write a spreadsheet report"},
}

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	switch parts[0] {
	case "refresh":
		m.status = "refreshing"
		return m, m.reloadCmd()

	case "populate":
		return m, m.actionCmd(func(ctx context.Context) (string, error) {
			out, err := m.goals.Populate(ctx)
			return fmt.Sprintf("populated %d rows from %d documents", out.Created, out.Documents), err
		})

	case "reconcile":
		return m, m.actionCmd(func(ctx context.Context) (string, error) {
			out, err := m.goals.Reconcile(ctx)
			return fmt.Sprintf("reconciled: %d populated, %d removed, %d archived",
				out.Populated, out.Orphaned+out.Duplicates+out.Removed, len(out.ArchivedIDs)), err
		})

	case "reindex":
		return m, m.actionCmd(func(ctx context.Context) (string, error) {
			out, err := m.goals.Reindex(ctx)
			return fmt.Sprintf("reindexed %d rows", out.Rows), err
		})

	case "calendar":
		month := ""
		if len(parts) >= 2 {
			month = parts[1]
		}
		m.activeTab = tabCalendar
		return m, m.calView.Load(month)

	case "goal:activate", "goal:deactivate", "goal:archive":
		id := m.targetGoal(parts)
		if id == "" {
			m.status = "usage: " + parts[0] + " <id>"
			return m, nil
		}
		verb := parts[0]
		return m, m.actionCmd(func(ctx context.Context) (string, error) {
			var (
				goal goalsdto.GoalOutput
				err  error
			)
			switch verb {
			case "goal:activate":
				goal, err = m.goals.SetGoalActive(ctx, id, true)
			case "goal:deactivate":
				goal, err = m.goals.SetGoalActive(ctx, id, false)
			default:
				goal, err = m.goals.ArchiveGoal(ctx, id)
			}
			return fmt.Sprintf("goal %s is %s", goal.ID, goal.Status), err
		})

	case "export":
		if len(parts) < 2 {
			m.status = "usage: export <file.xlsx>"
			return m, nil
		}
		path := parts[1]
		return m, m.actionCmd(func(ctx context.Context) (string, error) {
			out, err := m.goals.Export(ctx, path)
			return fmt.Sprintf("exported %d goals to %s", out.Goals, out.Path), err
		})

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// targetGoal is the explicit id argument, or the goal highlighted on the
// Goals tab.
func (m Model) targetGoal(parts []string) string {
	if len(parts) >= 2 {
		return parts[1]
	}
	if id, ok := m.goalView.SelectedGoalID(); ok {
		return id
	}
	return ""
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.overView, _ = m.overView.Update(sz)
	m.goalView, _ = m.goalView.Update(sz)
	m.calView, _ = m.calView.Update(sz)
}

func (m Model) refreshAll() tea.Cmd {
	return tea.Batch(
		m.overView.Refresh(),
		m.goalView.Refresh(),
		m.calView.Load(m.calView.Month()),
	)
}

// ─── async commands ──────────────────────────────────────────────────────────

func tick() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) reloadCmd() tea.Cmd {
	goals := m.goals
	return func() tea.Msg {
		if goals == nil {
			return reloadedMsg{err: fmt.Errorf("goals are not configured")}
		}
		return reloadedMsg{err: goals.Reload(context.Background())}
	}
}

func (m Model) actionCmd(fn func(ctx context.Context) (string, error)) tea.Cmd {
	if m.goals == nil {
		return func() tea.Msg { return actionDoneMsg{err: fmt.Errorf("goals are not configured")} }
	}
	return func() tea.Msg {
		status, err := fn(context.Background())
		return actionDoneMsg{status: status, err: err}
	}
}
