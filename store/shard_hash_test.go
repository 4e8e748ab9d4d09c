package store

import (
	"testing"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSelectShardHashFunc verifies the strategy dispatch, including the
// xxhash default for unknown strategies.
func TestSelectShardHashFunc(t *testing.T) {
	t.Parallel()

	const key = "dispatch-probe"

	assert.Equal(t, sumBytesShardHash(key), selectShardHashFunc(shardHashSumBytes)(key))
	assert.Equal(t, fnvShardHash(key), selectShardHashFunc(shardHashFNV)(key))
	assert.Equal(t, xxhashShardHash(key), selectShardHashFunc(shardHashXXHash)(key))
	assert.Equal(t, xxhashShardHash(key), selectShardHashFunc(shardHashStrategy(99))(key),
		"unknown strategies must fall back to xxhash")
}

// TestFNVShardHash_KnownAnswers pins the inlined FNV-1a against the
// canonical 64-bit test vectors so the constants cannot silently drift.
func TestFNVShardHash_KnownAnswers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint64(14695981039346656037), fnvShardHash(""),
		"hash of the empty string is the offset basis")
	assert.Equal(t, uint64(0xaf63dc4c8601ec8c), fnvShardHash("a"))
}

// TestXXHashShardHash matches the library directly; the wrapper must
// add nothing.
func TestXXHashShardHash(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"", "a", "shard-me", "日本語"} {
		assert.Equal(t, xxhash.Sum64String(key), xxhashShardHash(key))
	}
}

// TestSumBytesShardHash documents the weakness that keeps this strategy
// out of the default path: permutations of the same bytes collide.
func TestSumBytesShardHash(t *testing.T) {
	t.Parallel()

	assert.Zero(t, sumBytesShardHash(""))
	assert.Equal(t, uint64('a'+'b'), sumBytesShardHash("ab"))

	require.Equal(t, sumBytesShardHash("ab"), sumBytesShardHash("ba"),
		"byte-sum is order-insensitive; this is why it is not the default")
	assert.NotEqual(t, fnvShardHash("ab"), fnvShardHash("ba"))
	assert.NotEqual(t, xxhashShardHash("ab"), xxhashShardHash("ba"))
}
