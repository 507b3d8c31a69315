package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"inkwell/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

// PaletteCommand describes one entry the palette can suggest.
type PaletteCommand struct {
	Name string
	Args string
	Help string
}

func (c PaletteCommand) usageWidth() int {
	if c.Args == "" {
		return lipgloss.Width(c.Name)
	}
	return lipgloss.Width(c.Name) + 1 + lipgloss.Width(c.Args)
}

const maxSuggestions = 6

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	argStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// Palette is a command-palette overlay backed by bubbles/textinput. Typing
// narrows the suggestions by command name; up/down pick one and tab
// completes it.
type Palette struct {
	input    textinput.Model
	commands []PaletteCommand
	cursor   int
	visible  bool
	width    int
}

func NewPalette(commands []PaletteCommand) Palette {
	ti := textinput.New()
	ti.Placeholder = "command, tab to complete"
	ti.CharLimit = 256
	return Palette{input: ti, commands: commands}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette, clears the input and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.cursor = 0
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

// Value is the current input.
func (p Palette) Value() string { return p.input.Value() }

// Suggestions lists the commands whose name starts with the first word typed.
func (p Palette) Suggestions() []PaletteCommand {
	word := strings.ToLower(strings.TrimSpace(p.input.Value()))
	if i := strings.IndexByte(word, ' '); i >= 0 {
		word = word[:i]
	}
	out := make([]PaletteCommand, 0, len(p.commands))
	for _, c := range p.commands {
		if strings.HasPrefix(c.Name, word) {
			out = append(out, c)
		}
	}
	return out
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "up":
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil
		case "down":
			if p.cursor < min(len(p.Suggestions()), maxSuggestions)-1 {
				p.cursor++
			}
			return p, nil
		case "tab":
			p.complete()
			return p, nil
		}
	}
	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.cursor = 0
	}
	return p, cmd
}

// complete replaces the typed command word with the highlighted suggestion
// and keeps any arguments already entered.
func (p *Palette) complete() {
	matches := p.Suggestions()
	if len(matches) == 0 {
		return
	}
	pick := matches[min(p.cursor, len(matches)-1)]
	rest := ""
	if fields := strings.Fields(p.input.Value()); len(fields) > 1 {
		rest = strings.Join(fields[1:], " ")
	}
	value := pick.Name + " "
	if rest != "" {
		value += rest
	}
	p.input.SetValue(value)
	p.input.CursorEnd()
	p.cursor = 0
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	w := p.width
	if w < 20 {
		w = 64
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Commands") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")

	matches := p.Suggestions()
	if len(matches) == 0 {
		sb.WriteString("\n" + theme.Bad.Render("  no matching command"))
		return paletteStyle.Width(w - 2).Render(sb.String())
	}
	sb.WriteString("\n")
	usageWidth := 0
	for _, c := range p.commands {
		usageWidth = max(usageWidth, c.usageWidth())
	}
	for i, c := range matches {
		if i == maxSuggestions {
			sb.WriteString(theme.Muted.Render("  …") + "\n")
			break
		}
		name := c.Name
		if i == p.cursor {
			name = theme.Hot.Render("› " + name)
		} else {
			name = "  " + name
		}
		usage := name
		if c.Args != "" {
			usage += " " + argStyle.Render(c.Args)
		}
		pad := usageWidth - c.usageWidth() + 2
		sb.WriteString(usage + strings.Repeat(" ", pad) + theme.Muted.Render(c.Help) + "\n")
	}
	return paletteStyle.Width(w - 2).Render(strings.TrimRight(sb.String(), "\n"))
}
