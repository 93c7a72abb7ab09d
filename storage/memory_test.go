package storage

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySetNX(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	ok, err := store.SetNX(ctx, "sess_a", KeyCheckoutAttempt, "first")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.SetNX(ctx, "sess_a", KeyCheckoutAttempt, "second")
	require.NoError(t, err)
	assert.False(t, ok)

	val, err := store.Get(ctx, "sess_a", KeyCheckoutAttempt)
	require.NoError(t, err)
	assert.Equal(t, "first", val)

	// Another session's key is independent.
	ok, err = store.SetNX(ctx, "sess_b", KeyCheckoutAttempt, "other")
	require.NoError(t, err)
	assert.True(t, ok)

	// Deleting frees the key for the next SetNX.
	require.NoError(t, store.Delete(ctx, "sess_a", KeyCheckoutAttempt))
	ok, err = store.SetNX(ctx, "sess_a", KeyCheckoutAttempt, "third")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemorySetNXSingleWinner(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	const writers = 32
	var wg sync.WaitGroup
	wins := make(chan bool, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.SetNX(ctx, "sess_a", KeyCheckoutAttempt, "v")
			assert.NoError(t, err)
			wins <- ok
		}()
	}
	wg.Wait()
	close(wins)

	won := 0
	for ok := range wins {
		if ok {
			won++
		}
	}
	assert.Equal(t, 1, won)
}
