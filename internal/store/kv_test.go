package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kvContract runs the behaviour every KV implementation must share.
func kvContract(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "streak", "1"))
	require.NoError(t, kv.Set(ctx, "streak", "2"))
	v, ok, err := kv.Get(ctx, "streak")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", v, "Set must overwrite")

	require.NoError(t, kv.Set(ctx, "empty", ""))
	v, ok, err = kv.Get(ctx, "empty")
	require.NoError(t, err)
	assert.True(t, ok, "empty string is a present value")
	assert.Equal(t, "", v)

	require.NoError(t, kv.Delete(ctx, "streak"))
	require.NoError(t, kv.Delete(ctx, "streak"), "deleting twice is fine")
	_, ok, err = kv.Get(ctx, "streak")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "a", "1"))
	require.NoError(t, kv.Set(ctx, "b", "2"))
	require.NoError(t, kv.Clear(ctx))
	for _, key := range []string{"a", "b", "empty"} {
		_, ok, err := kv.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, "key %q survived Clear", key)
	}
}

func TestSQLiteKV(t *testing.T) {
	kvContract(t, openTestStore(t).KV())
}

func TestMemoryKV(t *testing.T) {
	m := NewMemoryKV()
	kvContract(t, m)
	assert.Equal(t, 0, m.Len())
}
