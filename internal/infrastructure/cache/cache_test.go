package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kitchenpos/backend/internal/infrastructure/config"
)

func TestInMemoryIdempotencyStore(t *testing.T) {
	ctx := context.Background()

	t.Run("marks a key once", func(t *testing.T) {
		s := NewInMemoryIdempotencyStore(0)
		defer s.Close()

		first, err := s.MarkProcessed(ctx, "k", time.Hour)
		require.NoError(t, err)
		second, err := s.MarkProcessed(ctx, "k", time.Hour)
		require.NoError(t, err)

		assert.True(t, first)
		assert.False(t, second)

		seen, err := s.IsProcessed(ctx, "k")
		require.NoError(t, err)
		assert.True(t, seen)
	})

	t.Run("released key can be marked again", func(t *testing.T) {
		s := NewInMemoryIdempotencyStore(0)
		defer s.Close()

		ok, _ := s.MarkProcessed(ctx, "k", time.Hour)
		require.True(t, ok)
		require.NoError(t, s.Release(ctx, "k"))
		require.NoError(t, s.Release(ctx, "absent"))

		seen, _ := s.IsProcessed(ctx, "k")
		assert.False(t, seen)
		ok, _ = s.MarkProcessed(ctx, "k", time.Hour)
		assert.True(t, ok)
	})

	t.Run("expired keys can be marked again", func(t *testing.T) {
		s := NewInMemoryIdempotencyStore(0)
		defer s.Close()
		clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
		s.now = func() time.Time { return clock }

		ok, _ := s.MarkProcessed(ctx, "k", time.Minute)
		require.True(t, ok)

		clock = clock.Add(2 * time.Minute)
		seen, _ := s.IsProcessed(ctx, "k")
		assert.False(t, seen)

		ok, _ = s.MarkProcessed(ctx, "k", time.Minute)
		assert.True(t, ok)
	})

	t.Run("cleanup removes expired keys", func(t *testing.T) {
		s := NewInMemoryIdempotencyStore(0)
		defer s.Close()
		clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
		s.now = func() time.Time { return clock }

		_, _ = s.MarkProcessed(ctx, "short", time.Minute)
		_, _ = s.MarkProcessed(ctx, "long", time.Hour)
		clock = clock.Add(10 * time.Minute)
		s.cleanup()

		assert.Equal(t, 1, s.Size())
	})

	t.Run("exactly one concurrent mark wins", func(t *testing.T) {
		s := NewInMemoryIdempotencyStore(0)
		defer s.Close()

		var wins atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if ok, _ := s.MarkProcessed(ctx, "race", time.Hour); ok {
					wins.Add(1)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), wins.Load())
	})

	t.Run("close is idempotent", func(t *testing.T) {
		s := NewInMemoryIdempotencyStore(time.Millisecond)
		assert.NoError(t, s.Close())
		assert.NoError(t, s.Close())
	})
}

func TestNewIdempotencyStore(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled redis gives in-memory store", func(t *testing.T) {
		s, err := NewIdempotencyStore(ctx, config.RedisConfig{Enabled: false}, false, zap.NewNop())
		require.NoError(t, err)
		defer s.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, s)
	})

	unreachable := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}

	t.Run("unreachable redis fails without fallback", func(t *testing.T) {
		_, err := NewIdempotencyStore(ctx, unreachable, false, zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("unreachable redis falls back when allowed", func(t *testing.T) {
		s, err := NewIdempotencyStore(ctx, unreachable, true, zap.NewNop())
		require.NoError(t, err)
		defer s.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, s)
	})
}
