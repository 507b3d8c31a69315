package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	goalsdto "inkwell/internal/modules/goals/dto"
	"inkwell/internal/ui/components"
	"inkwell/internal/ui/theme"
)

const monthLayout = "2006-01"

type Port interface {
	Calendar(ctx context.Context, month string) (goalsdto.CalendarOutput, error)
	Settings(ctx context.Context) (goalsdto.SettingsOutput, error)
}

type LoadedMsg struct {
	Calendar     goalsdto.CalendarOutput
	WeekStartsOn int
	Err          error
}

type Model struct {
	port         Port
	month        string
	cal          goalsdto.CalendarOutput
	weekStartsOn int
	err          error
	width        int
	height       int
}

func New(port Port) Model {
	return Model{port: port, weekStartsOn: 1}
}

func (m Model) Init() tea.Cmd {
	return m.Load(m.month)
}

// Load fetches month (YYYY-MM); empty means the current month.
func (m Model) Load(month string) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		if port == nil {
			return LoadedMsg{Err: fmt.Errorf("goals are not configured")}
		}
		ctx := context.Background()
		cal, err := port.Calendar(ctx, month)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		weekStart := 1
		if settings, err := port.Settings(ctx); err == nil {
			weekStart = settings.WeekStartsOn
		}
		return LoadedMsg{Calendar: cal, WeekStartsOn: weekStart}
	}
}

// Month is the month currently shown.
func (m Model) Month() string {
	return m.month
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.cal = msg.Calendar
			m.month = msg.Calendar.Month
			m.weekStartsOn = msg.WeekStartsOn
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			return m, m.Load(shiftMonth(m.month, -1))
		case "right", "l":
			return m, m.Load(shiftMonth(m.month, 1))
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Bad.Render("calendar: " + m.err.Error())
	}
	if m.month == "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, "Loading calendar…")
	}
	cells := make([]components.HeatCell, 0, len(m.cal.Cells))
	written, met, total := 0, 0, 0
	for _, c := range m.cal.Cells {
		day, err := time.Parse(time.DateOnly, c.Date)
		if err != nil {
			continue
		}
		cells = append(cells, components.HeatCell{Date: day, Words: c.Words, Met: c.GoalMet})
		total += c.Words
		if c.Words > 0 {
			written++
		}
		if c.GoalMet {
			met++
		}
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render(m.title()) + "\n")
	target := "no daily goal"
	if m.cal.DailyTarget > 0 {
		target = fmt.Sprintf("daily target %d", m.cal.DailyTarget)
	}
	sb.WriteString(theme.Muted.Render(target) + "\n\n")
	sb.WriteString(components.RenderHeatMap(cells, m.cal.DailyTarget, m.weekStartsOn) + "\n\n")
	sb.WriteString(fmt.Sprintf("%d words · %d days written · %d goals met\n", total, written, met))
	sb.WriteString(theme.Muted.Render("←/→ month"))
	return theme.Pane.Render(sb.String())
}

func (m Model) title() string {
	t, err := time.Parse(monthLayout, m.month)
	if err != nil {
		return m.month
	}
	return t.Format("January 2006")
}

func shiftMonth(month string, delta int) string {
	t, err := time.Parse(monthLayout, month)
	if err != nil {
		return ""
	}
	return t.AddDate(0, delta, 0).Format(monthLayout)
}
