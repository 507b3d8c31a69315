package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, vault string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--vault", vault}, args...))
	require.NoError(t, root.Execute(), out.String())
	return out.String()
}

func TestGoalCreateTrackAndStats(t *testing.T) {
	vault := t.TempDir()

	created := run(t, vault, "goal", "create", "--type", "daily", "--target", "100", "--start", "2000-01-01", "--end", "2999-12-31")
	assert.Contains(t, created, "created daily goal")

	listed := run(t, vault, "goal", "list")
	assert.Equal(t, 1, strings.Count(strings.TrimSpace(listed), "\n")+1)
	assert.Contains(t, listed, "daily\t100")

	tracked := run(t, vault, "progress", "track", "--doc", "novel/ch1", "--project", "novel", "--words", "120")
	assert.Contains(t, tracked, "+120 words")
	assert.Contains(t, tracked, "1 goals updated")

	stats := run(t, vault, "stats")
	assert.Contains(t, stats, "120 words")
	assert.Contains(t, stats, "120/100\t100%")

	_, err := os.Stat(filepath.Join(vault, ".inkwell", "inkwell.db"))
	assert.NoError(t, err)
}

func TestSettingsSetOnlyAppliesGivenFlags(t *testing.T) {
	vault := t.TempDir()

	out := run(t, vault, "settings", "set", "--week-starts-on", "0")
	assert.Contains(t, out, "week_starts_on: 0")
	assert.Contains(t, out, "auto_archive_old_goals: false")

	shown := run(t, vault, "settings", "show")
	assert.Contains(t, shown, "week_starts_on: 0")
}

func TestManuscriptListAndExport(t *testing.T) {
	vault := t.TempDir()
	dir := filepath.Join(vault, "manuscripts", "novel")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ch1.md"), []byte("one two three four"), 0o644))

	listed := run(t, vault, "manuscript", "list")
	assert.Contains(t, listed, "novel/ch1\tnovel\t4")

	path := filepath.Join(vault, "out", "report.xlsx")
	exported := run(t, vault, "export", "--out", path)
	assert.Contains(t, exported, path)
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestCommandErrorsSurface(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--vault", t.TempDir(), "goal", "show", "missing"})
	assert.Error(t, root.Execute())
}
