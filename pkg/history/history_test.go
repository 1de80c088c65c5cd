package history

import (
	"VaniAssistant/pkg/kvstore"
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_NeverExceedsCapacity(t *testing.T) {
	ctx := context.Background()
	log := New(kvstore.NewMemory(), 3)

	for i := 0; i <= log.Capacity(); i++ {
		require.NoError(t, log.Append(ctx, Entry{ID: fmt.Sprint(i), Command: fmt.Sprintf("cmd %d", i)}))
	}

	entries, err := log.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "3", entries[0].ID, "newest entry is present")
	for _, e := range entries {
		assert.NotEqual(t, "0", e.ID, "oldest entry must be dropped")
	}
}

func TestLog_RecentLimit(t *testing.T) {
	ctx := context.Background()
	log := New(kvstore.NewMemory(), 10)

	for i := 0; i < 10; i++ {
		require.NoError(t, log.Append(ctx, Entry{ID: fmt.Sprint(i)}))
	}

	entries, err := log.Recent(ctx, 8)
	require.NoError(t, err)
	require.Len(t, entries, 8)
	assert.Equal(t, "9", entries[0].ID)
	assert.Equal(t, "2", entries[7].ID)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestLog_Clear(t *testing.T) {
	ctx := context.Background()
	log := New(kvstore.NewMemory(), 5)

	require.NoError(t, log.Append(ctx, Entry{ID: "a", Success: true}))
	require.NoError(t, log.Clear(ctx))

	entries, err := log.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLog_ConcurrentAppendsAreNotLost(t *testing.T) {
	ctx := context.Background()
	log := New(kvstore.NewMemory(), 500)

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, log.Append(ctx, Entry{ID: fmt.Sprint(i)}))
		}(i)
	}
	wg.Wait()

	entries, err := log.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 200)
}

func TestNew_DefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultCapacity, New(kvstore.NewMemory(), 0).Capacity())
}
