package components

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

var testCommands = []PaletteCommand{
	{Name: "refresh", Help: "re-read stored state"},
	{Name: "goal:activate", Args: "[id]", Help: "start tracking a goal"},
	{Name: "goal:deactivate", Args: "[id]", Help: "pause a goal"},
	{Name: "goal:archive", Args: "[id]", Help: "archive a goal"},
	{Name: "export", Args: "<file.xlsx>", Help: "write a spreadsheet report"},
}

func typeInto(p Palette, s string) Palette {
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return p
}

func suggestionNames(p Palette) []string {
	var names []string
	for _, c := range p.Suggestions() {
		names = append(names, c.Name)
	}
	return names
}

func TestPaletteNarrowsAndCompletesSelection(t *testing.T) {
	t.Parallel()
	p := NewPalette(testCommands)
	_ = p.Open()

	p = typeInto(p, "goal:")
	want := []string{"goal:activate", "goal:deactivate", "goal:archive"}
	if got := suggestionNames(p); !reflect.DeepEqual(got, want) {
		t.Fatalf("suggestions = %v, want %v", got, want)
	}

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := p.Value(); got != "goal:deactivate " {
		t.Fatalf("completed value = %q", got)
	}

	p = typeInto(p, "g7")
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Visible() {
		t.Fatal("palette still visible after enter")
	}
	if msg, ok := cmd().(PaletteSubmitMsg); !ok || msg.Input != "goal:deactivate g7" {
		t.Fatalf("submit = %#v", cmd())
	}
}

func TestPaletteCompletionKeepsArguments(t *testing.T) {
	t.Parallel()
	p := NewPalette(testCommands)
	_ = p.Open()
	p = typeInto(p, "exp report.xlsx")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := p.Value(); got != "export report.xlsx" {
		t.Fatalf("completed value = %q", got)
	}
}

func TestPaletteViewShowsUsageAndMisses(t *testing.T) {
	t.Parallel()
	p := NewPalette(testCommands)
	if p.View() != "" {
		t.Fatal("closed palette renders")
	}
	_ = p.Open()
	p.SetWidth(72)

	view := ansi.Strip(p.View())
	for _, want := range []string{"Commands", "› refresh", "export <file.xlsx>", "write a spreadsheet report"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}

	p = typeInto(p, "zzz")
	if view := ansi.Strip(p.View()); !strings.Contains(view, "no matching command") {
		t.Fatalf("view = %s", view)
	}

	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := cmd().(PaletteCancelMsg); !ok || p.Visible() {
		t.Fatal("esc did not cancel")
	}
}
