package store

import (
	"fmt"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewShardedStore verifies shard-count resolution: the NumCPU
// default for nil/zero configs, the explicit value when set, and the
// MaxShardCount cap.
func TestNewShardedStore(t *testing.T) {
	t.Parallel()

	s := NewShardedStore[int](nil)
	require.NotNil(t, s)
	assert.Equal(t, max(1, runtime.NumCPU()), s.shardCount)
	assert.Len(t, s.shards, s.shardCount)

	s = NewShardedStore[int](&Config{ShardCount: 4})
	assert.Equal(t, 4, s.shardCount)

	s = NewShardedStore[int](&Config{ShardCount: MaxShardCount + 1})
	assert.Equal(t, MaxShardCount, s.shardCount)
}

// TestShardedStore_SingleShard pins the store to one shard so every
// code path runs with the fast shardByKey shortcut.
func TestShardedStore_SingleShard(t *testing.T) {
	t.Parallel()

	s := NewShardedStore[int](&Config{ShardCount: 1})

	require.NoError(t, s.Set("a", 1))
	require.NoError(t, s.Set("b", 2))

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, got)
	assert.EqualValues(t, 2, s.Size())
}

// TestShardedStore_KeysSpreadAcrossShards inserts enough keys that,
// with the default xxhash strategy, more than one shard must end up
// populated.
func TestShardedStore_KeysSpreadAcrossShards(t *testing.T) {
	t.Parallel()

	s := NewShardedStore[int](&Config{ShardCount: 8})

	for i := 0; i < 256; i++ {
		require.NoError(t, s.Set(fmt.Sprintf("key-%d", i), i))
	}

	populated := 0

	for _, sh := range s.shards {
		sh.mu.Lock()
		if len(sh.container) > 0 {
			populated++
		}
		sh.mu.Unlock()
	}

	assert.Greater(t, populated, 1, "256 keys must not all hash to one shard")
	assert.EqualValues(t, 256, s.Size())
}

// TestShardedStore_SameKeySameShard verifies routing is deterministic:
// a value written through one call path is found by all the others.
func TestShardedStore_SameKeySameShard(t *testing.T) {
	t.Parallel()

	s := NewShardedStore[string](&Config{ShardCount: 16})

	require.NoError(t, s.Set("route-me", "v1"))

	previous, loaded, err := s.Swap("route-me", "v2")
	require.NoError(t, err)
	require.True(t, loaded, "Swap must find the key Set stored")
	assert.Equal(t, "v1", previous)

	got, ok := s.GetAndDelete("route-me")
	require.True(t, ok)
	assert.Equal(t, "v2", got)
	assert.False(t, s.Exists("route-me"))
}

// TestShardedStore_EntryBudgetUnderContention hammers a capped store
// from several goroutines and verifies the cap is enforced exactly:
// successful inserts equal the cap, the rest fail with the budget error.
func TestShardedStore_EntryBudgetUnderContention(t *testing.T) {
	t.Parallel()

	const (
		capEntries = 64
		workers    = 8
		attempts   = 100
	)

	s := NewShardedStore[int](&Config{ShardCount: 8, MaxEntries: capEntries})

	var (
		wg        sync.WaitGroup
		succeeded [workers]int64
	)

	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func(worker int) {
			defer wg.Done()

			for i := 0; i < attempts; i++ {
				err := s.Set(fmt.Sprintf("w%d-k%d", worker, i), i)
				if err == nil {
					succeeded[worker]++
					continue
				}

				assert.ErrorIs(t, err, ErrEntryBudgetExceeded)
			}
		}(w)
	}

	wg.Wait()

	var total int64
	for _, n := range succeeded {
		total += n
	}

	assert.EqualValues(t, capEntries, total, "exactly cap inserts may succeed")
	assert.EqualValues(t, capEntries, s.Size())
	assert.EqualValues(t, capEntries, s.Stats().Entries)
}

// TestShardedStore_ClearResetsCounters verifies Clear zeroes both the
// global counters and the per-shard byte accounting.
func TestShardedStore_ClearResetsCounters(t *testing.T) {
	t.Parallel()

	s := NewShardedStore[int](&Config{ShardCount: 4})

	for i := 0; i < 50; i++ {
		require.NoError(t, s.Set(fmt.Sprintf("key-%d", i), i))
	}

	require.Positive(t, s.Stats().KeyBytes)

	s.Clear()

	st := s.Stats()
	assert.EqualValues(t, 0, st.Entries)
	assert.EqualValues(t, 0, st.KeyBytes)

	for _, sh := range s.shards {
		sh.mu.Lock()
		assert.Empty(t, sh.container)
		assert.Zero(t, sh.keyBytes)
		sh.mu.Unlock()
	}

	// The store stays usable after Clear.
	require.NoError(t, s.Set("again", 1))
	assert.EqualValues(t, 1, s.Size())
}

// TestShardedStore_CloseBlocksInFlightInserts closes the store while
// writers are running and verifies the end state is consistent: closed,
// empty, zeroed counters, with every late Set rejected.
func TestShardedStore_CloseBlocksInFlightInserts(t *testing.T) {
	t.Parallel()

	s := NewShardedStore[int](&Config{ShardCount: 4})

	var wg sync.WaitGroup

	wg.Add(2)

	go func() {
		defer wg.Done()

		for i := 0; i < 500; i++ {
			_ = s.Set(fmt.Sprintf("key-%d", i), i)
		}
	}()

	go func() {
		defer wg.Done()
		_ = s.Close()
	}()

	wg.Wait()

	// Whatever interleaving happened, the closed flag was flipped while
	// every shard lock was held, so the end state is fully torn down.
	st := s.Stats()
	assert.EqualValues(t, 0, st.Entries)
	assert.EqualValues(t, 0, st.KeyBytes)

	require.NoError(t, s.Close(), "Close must stay idempotent after the race")
	require.ErrorIs(t, s.Set("late", 1), ErrStoreClosed)
}
