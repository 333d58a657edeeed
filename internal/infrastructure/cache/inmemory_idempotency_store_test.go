package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *InMemoryIdempotencyStore {
	t.Helper()
	store := NewInMemoryIdempotencyStore()
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("first mark wins", func(t *testing.T) {
		isNew, err := store.MarkProcessed(ctx, "checkout:idempotency:key-1", time.Hour)
		require.NoError(t, err)
		assert.True(t, isNew)
	})

	t.Run("repeat mark reports duplicate", func(t *testing.T) {
		key := "checkout:idempotency:key-2"

		isNew, err := store.MarkProcessed(ctx, key, time.Hour)
		require.NoError(t, err)
		assert.True(t, isNew)

		isNew, err = store.MarkProcessed(ctx, key, time.Hour)
		require.NoError(t, err)
		assert.False(t, isNew, "retried checkout with the same key must be a duplicate")
	})

	t.Run("expired key can be marked again", func(t *testing.T) {
		key := "checkout:idempotency:key-3"

		isNew, err := store.MarkProcessed(ctx, key, 10*time.Millisecond)
		require.NoError(t, err)
		assert.True(t, isNew)

		time.Sleep(20 * time.Millisecond)

		isNew, err = store.MarkProcessed(ctx, key, 10*time.Millisecond)
		require.NoError(t, err)
		assert.True(t, isNew)
	})
}

func TestInMemoryIdempotencyStore_IsProcessed(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("unknown key", func(t *testing.T) {
		processed, err := store.IsProcessed(ctx, "webhook:evt_never_seen")
		require.NoError(t, err)
		assert.False(t, processed)
	})

	t.Run("marked key", func(t *testing.T) {
		_, err := store.MarkProcessed(ctx, "webhook:evt_123", time.Hour)
		require.NoError(t, err)

		processed, err := store.IsProcessed(ctx, "webhook:evt_123")
		require.NoError(t, err)
		assert.True(t, processed)
	})

	t.Run("expired key reads as unprocessed", func(t *testing.T) {
		_, err := store.MarkProcessed(ctx, "webhook:evt_expired", 10*time.Millisecond)
		require.NoError(t, err)

		time.Sleep(20 * time.Millisecond)

		processed, err := store.IsProcessed(ctx, "webhook:evt_expired")
		require.NoError(t, err)
		assert.False(t, processed)
	})
}

func TestInMemoryIdempotencyStore_Size(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	assert.Equal(t, 0, store.Size())

	store.MarkProcessed(ctx, "checkout:idempotency:a", time.Hour)
	store.MarkProcessed(ctx, "checkout:idempotency:b", time.Hour)
	assert.Equal(t, 2, store.Size())

	// Re-marking an existing key must not grow the map
	store.MarkProcessed(ctx, "checkout:idempotency:a", time.Hour)
	assert.Equal(t, 2, store.Size())
}

func TestInMemoryIdempotencyStore_Cleanup(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.MarkProcessed(ctx, "short-lived-1", 10*time.Millisecond)
	store.MarkProcessed(ctx, "short-lived-2", 10*time.Millisecond)
	store.MarkProcessed(ctx, "long-lived", time.Hour)
	require.Equal(t, 3, store.Size())

	time.Sleep(20 * time.Millisecond)
	store.cleanup()

	assert.Equal(t, 1, store.Size())

	processed, err := store.IsProcessed(ctx, "long-lived")
	require.NoError(t, err)
	assert.True(t, processed)

	processed, err = store.IsProcessed(ctx, "short-lived-1")
	require.NoError(t, err)
	assert.False(t, processed)
}

// Simulates a burst of identical checkout submissions, e.g. a double-clicked
// pay button fanned out by retries. Exactly one must win.
func TestInMemoryIdempotencyStore_ConcurrentAccess(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	const attempts = 100
	const key = "checkout:idempotency:double-click"

	results := make(chan bool, attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			isNew, err := store.MarkProcessed(ctx, key, time.Hour)
			results <- err == nil && isNew
		}()
	}

	newCount := 0
	for i := 0; i < attempts; i++ {
		if <-results {
			newCount++
		}
	}

	assert.Equal(t, 1, newCount, "exactly one submission should pass the idempotency check")
}

func TestInMemoryIdempotencyStore_DistinctKeysDoNotCollide(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		isNew, err := store.MarkProcessed(ctx, fmt.Sprintf("checkout:idempotency:parent-%d", i), time.Hour)
		require.NoError(t, err)
		assert.True(t, isNew)
	}
	assert.Equal(t, 10, store.Size())
}

func TestInMemoryIdempotencyStore_Close(t *testing.T) {
	store := NewInMemoryIdempotencyStore()

	assert.NoError(t, store.Close())
	// Closing twice must be safe
	assert.NoError(t, store.Close())
}
