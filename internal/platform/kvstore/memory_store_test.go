package kvstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "inkwell/internal/platform/errors"
	"inkwell/internal/platform/kvstore"
)

func TestMemoryStoreFailWrites(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	quota := errors.New("quota exceeded")

	store.FailWrites(quota)
	require.ErrorIs(t, store.Save(ctx, "writing-goals", counter{Value: 1}), quota)
	require.ErrorIs(t, store.Load(ctx, "writing-goals", &counter{}), apperrors.ErrNotFound)

	store.FailWrites(nil)
	require.NoError(t, store.Save(ctx, "writing-goals", counter{Value: 2}))
	got := counter{}
	require.NoError(t, store.Load(ctx, "writing-goals", &got))
	assert.Equal(t, 2, got.Value)
}

func TestMemoryStorePutSeedsRawPayload(t *testing.T) {
	t.Parallel()
	store := kvstore.NewMemoryStore()
	store.Put("goal-settings", []byte("garbage"))
	require.Error(t, store.Load(context.Background(), "goal-settings", &counter{}))

	keys, err := store.Keys(context.Background(), "goal-")
	require.NoError(t, err)
	assert.Equal(t, []string{"goal-settings"}, keys)
}
