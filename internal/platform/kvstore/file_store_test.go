package kvstore_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "inkwell/internal/platform/errors"
	"inkwell/internal/platform/kvstore"
)

type counter struct {
	Value int `json:"value"`
}

func TestFileStoreSaveLoadDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kvstore.NewFileStore(filepath.Join(t.TempDir(), "storage"))

	got := counter{}
	require.ErrorIs(t, store.Load(ctx, "goal-settings", &got), apperrors.ErrNotFound)

	require.NoError(t, store.Save(ctx, "goal-settings", counter{Value: 7}))
	require.NoError(t, store.Load(ctx, "goal-settings", &got))
	assert.Equal(t, 7, got.Value)

	require.NoError(t, store.Delete(ctx, "goal-settings"))
	require.NoError(t, store.Delete(ctx, "goal-settings"))
	require.ErrorIs(t, store.Load(ctx, "goal-settings", &got), apperrors.ErrNotFound)
}

func TestFileStoreKeysFiltersByPrefix(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	store := kvstore.NewFileStore(dir)
	for _, key := range []string{"word-progress-2024-03-02", "word-progress-2024-03-01", "writing-goals"} {
		require.NoError(t, store.Save(ctx, key, counter{}))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	keys, err := store.Keys(ctx, "word-progress-")
	require.NoError(t, err)
	assert.Equal(t, []string{"word-progress-2024-03-01", "word-progress-2024-03-02"}, keys)

	empty, err := kvstore.NewFileStore(filepath.Join(dir, "missing")).Keys(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestFileStoreRejectsPathKeys(t *testing.T) {
	t.Parallel()
	store := kvstore.NewFileStore(t.TempDir())
	for _, key := range []string{"", "../escape", "a/b", `a\b`} {
		assert.Error(t, store.Save(context.Background(), key, counter{}), "key %q", key)
	}
}

func TestFileStoreCorruptPayloadSurfacesDecodeError(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "goal-progress.json"), []byte("{not json"), 0o644))
	err := kvstore.NewFileStore(dir).Load(context.Background(), "goal-progress", &counter{})
	require.Error(t, err)
	assert.False(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestFileStoreChangedReportsForeignWrites(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	store := kvstore.NewFileStore(dir)

	require.NoError(t, store.Save(ctx, "goal-progress", counter{Value: 1}))
	require.NoError(t, store.Save(ctx, "writing-goals", counter{Value: 1}))
	changed, err := store.Changed(ctx)
	require.NoError(t, err)
	assert.False(t, changed)

	other := kvstore.NewFileStore(dir)
	require.NoError(t, other.Save(ctx, "goal-progress", counter{Value: 2}))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "goal-progress.json"), later, later))

	changed, err = store.Changed(ctx)
	require.NoError(t, err)
	assert.True(t, changed)
	changed, err = store.Changed(ctx)
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, os.Remove(filepath.Join(dir, "writing-goals.json")))
	changed, err = store.Changed(ctx)
	require.NoError(t, err)
	assert.True(t, changed)

	got := counter{}
	require.NoError(t, store.Load(ctx, "goal-progress", &got))
	assert.Equal(t, 2, got.Value)
	changed, err = store.Changed(ctx)
	require.NoError(t, err)
	assert.False(t, changed)

	require.ErrorIs(t, store.Load(ctx, "goal-settings", &got), apperrors.ErrNotFound)
	require.NoError(t, other.Save(ctx, "goal-settings", counter{Value: 3}))
	changed, err = store.Changed(ctx)
	require.NoError(t, err)
	assert.True(t, changed)
}
