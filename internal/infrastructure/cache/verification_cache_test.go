package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryVerificationCache(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryVerificationCache(0)
	id := uuid.New()

	_, ok, err := c.Get(ctx, "ABC")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "ABC", id))
	got, ok, err := c.Get(ctx, "ABC")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, id, got)

	require.NoError(t, c.Delete(ctx, "ABC"))
	_, ok, _ = c.Get(ctx, "ABC")
	assert.False(t, ok)
}

func TestInMemoryVerificationCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewInMemoryVerificationCache(time.Minute)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "XYZ", uuid.New()))
	_, ok, _ := c.Get(ctx, "XYZ")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok, _ = c.Get(ctx, "XYZ")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestFactory_CreateVerificationCache(t *testing.T) {
	ctx := context.Background()
	unreachable := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1, CacheTTL: time.Hour}

	t.Run("disabled redis uses memory", func(t *testing.T) {
		c, closeFn, err := NewFactory(config.RedisConfig{}).CreateVerificationCache(ctx)
		require.NoError(t, err)
		assert.IsType(t, &InMemoryVerificationCache{}, c)
		assert.NoError(t, closeFn())
	})

	t.Run("unreachable redis falls back", func(t *testing.T) {
		f := NewFactory(unreachable, WithPingTimeout(200*time.Millisecond))
		c, _, err := f.CreateVerificationCache(ctx)
		require.NoError(t, err)
		assert.IsType(t, &InMemoryVerificationCache{}, c)
	})

	t.Run("fallback can be disabled", func(t *testing.T) {
		f := NewFactory(unreachable, WithPingTimeout(200*time.Millisecond), WithInMemoryFallback(false))
		_, _, err := f.CreateVerificationCache(ctx)
		assert.Error(t, err)
	})
}
