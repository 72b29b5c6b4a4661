package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/institute/backend/internal/infrastructure/config"
)

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	t.Run("first mark wins", func(t *testing.T) {
		isNew, err := store.MarkProcessed(ctx, "pay-1:SUCCESS", time.Hour)
		require.NoError(t, err)
		assert.True(t, isNew)

		isNew, err = store.MarkProcessed(ctx, "pay-1:SUCCESS", time.Hour)
		require.NoError(t, err)
		assert.False(t, isNew)

		done, err := store.IsProcessed(ctx, "pay-1:SUCCESS")
		require.NoError(t, err)
		assert.True(t, done)
	})

	t.Run("expired keys can be marked again", func(t *testing.T) {
		_, err := store.MarkProcessed(ctx, "pay-2:FAILED", time.Minute)
		require.NoError(t, err)

		now = now.Add(time.Minute)
		done, err := store.IsProcessed(ctx, "pay-2:FAILED")
		require.NoError(t, err)
		assert.False(t, done)

		isNew, err := store.MarkProcessed(ctx, "pay-2:FAILED", time.Minute)
		require.NoError(t, err)
		assert.True(t, isNew)
	})

	t.Run("unknown key", func(t *testing.T) {
		done, err := store.IsProcessed(ctx, "never")
		require.NoError(t, err)
		assert.False(t, done)
	})
}

func TestInMemoryIdempotencyStore_Cleanup(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Close()
	ctx := context.Background()

	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	_, _ = store.MarkProcessed(ctx, "short", time.Second)
	_, _ = store.MarkProcessed(ctx, "long", time.Hour)
	assert.Equal(t, 2, store.Size())

	now = now.Add(time.Minute)
	store.cleanup()
	assert.Equal(t, 1, store.Size())
}

func TestInMemoryIdempotencyStore_ConcurrentMarks(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Close()

	var winners atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := store.MarkProcessed(context.Background(), "same", time.Hour); ok {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), winners.Load())
}

func TestInMemoryIdempotencyStore_CloseTwice(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Millisecond)
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestFactory_CreateIdempotencyStore(t *testing.T) {
	ctx := context.Background()
	unreachable := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}

	store, err := NewFactory(config.RedisConfig{}).CreateIdempotencyStore(ctx)
	require.NoError(t, err)
	assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	assert.NoError(t, store.Close())

	store, err = NewFactory(unreachable, WithPingTimeout(200*time.Millisecond)).CreateIdempotencyStore(ctx)
	require.NoError(t, err)
	assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	assert.NoError(t, store.Close())

	_, err = NewFactory(unreachable, WithPingTimeout(200*time.Millisecond), WithInMemoryFallback(false)).CreateIdempotencyStore(ctx)
	assert.Error(t, err)
}
