package cache

import (
	"context"
	"testing"
	"time"

	"github.com/anoixa/tripill/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profile struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

func newTestMemory(t *testing.T) *MemoryCache {
	t.Helper()
	c, err := NewMemoryCache(MemoryConfig{NumCounters: 1000, MaxCost: 1 << 20, BufferItems: 64})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestMemoryCache_SetGetDelete(t *testing.T) {
	c := newTestMemory(t)
	ctx := context.Background()
	key := User.BuildID(7)

	require.NoError(t, c.Set(ctx, key, profile{ID: 7, Email: "g@example.com"}, time.Minute))

	var got profile
	require.NoError(t, c.Get(ctx, key, &got))
	assert.Equal(t, profile{ID: 7, Email: "g@example.com"}, got)

	exists, err := c.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, c.Delete(ctx, key))
	assert.True(t, IsCacheMiss(c.Get(ctx, key, &got)))
}

func TestMemoryCache_Clear(t *testing.T) {
	c := newTestMemory(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, User.BuildID(1), profile{ID: 1}, time.Minute))
	n, err := Clear(ctx, c, User)
	require.NoError(t, err)
	assert.Equal(t, -1, n)

	var got profile
	assert.ErrorIs(t, c.Get(ctx, User.BuildID(1), &got), ErrCacheMiss)
}

func TestKeyBuilder(t *testing.T) {
	kb := NewKeyBuilder("p")
	assert.Equal(t, "p", kb.Build())
	assert.Equal(t, "p:a:b", kb.Build("a", "b"))
	assert.Equal(t, "p:42", kb.BuildID(42))
	assert.Equal(t, "p:*", kb.Pattern())
}

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider(context.Background(), &config.Config{CacheType: "memory"})
	require.NoError(t, err)
	assert.Equal(t, "memory", provider.Name())
	_ = provider.Close()

	_, err = NewProvider(context.Background(), &config.Config{CacheType: "memcached"})
	assert.Error(t, err)
}
