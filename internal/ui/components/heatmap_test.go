package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
)

func TestHeatLevel(t *testing.T) {
	t.Parallel()
	cases := []struct {
		words, target int
		met           bool
		want          int
	}{
		{0, 500, false, 0},
		{100, 500, false, 1},
		{200, 500, false, 2},
		{400, 500, false, 3},
		{600, 500, true, 4},
		{10, 0, false, 2},
	}
	for _, tc := range cases {
		if got := HeatLevel(tc.words, tc.target, tc.met); got != tc.want {
			t.Fatalf("HeatLevel(%d, %d, %v) = %d, want %d", tc.words, tc.target, tc.met, got, tc.want)
		}
	}
}

func TestRenderHeatMapAlignsFirstWeekday(t *testing.T) {
	t.Parallel()
	// March 2024 starts on a Friday.
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	cells := make([]HeatCell, 0, 31)
	for d := 0; d < 31; d++ {
		cells = append(cells, HeatCell{Date: start.AddDate(0, 0, d)})
	}
	lines := strings.Split(ansi.Strip(RenderHeatMap(cells, 500, 1)), "\n")
	if !strings.HasPrefix(strings.TrimSpace(lines[0]), "Mo") {
		t.Fatalf("header should start on Monday: %q", lines[0])
	}
	first := strings.Fields(lines[1])
	if len(first) != 3 || first[0] != "1" {
		t.Fatalf("first week = %v, want Fri..Sun", first)
	}
	if len(lines) != 6 {
		t.Fatalf("rows = %d, want header plus 5 weeks", len(lines))
	}
}

func TestProgressBarClamps(t *testing.T) {
	t.Parallel()
	if got := ansi.Strip(ProgressBar(150, 10)); got != strings.Repeat("█", 10) {
		t.Fatalf("over-target bar = %q", got)
	}
	if got := ansi.Strip(ProgressBar(-5, 4)); got != strings.Repeat("░", 4) {
		t.Fatalf("negative bar = %q", got)
	}
}
