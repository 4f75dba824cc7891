package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", map[string]int{"a": 1}, time.Minute))

	var got map[string]int
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, 1, got["a"])

	ok, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryCache_Miss(t *testing.T) {
	c := NewMemoryCache()

	var got string
	err := c.Get(context.Background(), "missing", &got)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_Expiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := &memoryCache{
		entries: make(map[string]memoryEntry),
		now:     func() time.Time { return now },
	}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", true, time.Second))
	ok, _ := c.Exists(ctx, "k")
	assert.True(t, ok)

	now = now.Add(2 * time.Second)
	ok, _ = c.Exists(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryCache_ExpiredLookupKeepsConcurrentSet(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	c := &memoryCache{entries: make(map[string]memoryEntry)}

	// The first expiry check runs between the read and write locks; a Set
	// issued from there lands exactly in that window.
	interleave := false
	c.now = func() time.Time {
		if interleave {
			interleave = false
			require.NoError(t, c.Set(ctx, "k", "fresh", time.Hour))
		}
		return now
	}

	require.NoError(t, c.Set(ctx, "k", "stale", time.Second))
	now = now.Add(2 * time.Second)
	interleave = true

	var got string
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, "fresh", got)

	ok, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", 0))
	require.NoError(t, c.Delete(ctx, "k"))

	ok, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
