package store

import (
	xxhash "github.com/cespare/xxhash/v2"
)

type (
	// shardHashStrategy selects the algorithm used to map a key to a shard.
	shardHashStrategy int

	// shardHashFunc maps a key to a 64-bit hash.
	shardHashFunc func(string) uint64
)

// Canonical 64-bit FNV-1a parameters. The fallback path must stay
// deterministic and allocation-free, so the algorithm is inlined here
// instead of going through hash/fnv's writer interface.
const (
	// fnv1aOffset64 is the standard 64-bit FNV-1a offset basis: the
	// initial hash value before processing any input bytes.
	fnv1aOffset64 uint64 = 14695981039346656037
	// fnv1aPrime64 is the standard 64-bit FNV-1a prime, the multiplier
	// applied on every input byte.
	fnv1aPrime64 uint64 = 1099511628211
)

const (
	// shardHashSumBytes sums the key's bytes. Dangerously weak for
	// sharding: it only depends on the multiset of characters, not their
	// order, so countless distinct keys collapse onto the same shard as
	// the keyspace grows. Kept for comparison and tests only.
	shardHashSumBytes shardHashStrategy = iota
	// shardHashXXHash uses xxhash: as fast as the weak options while
	// keeping the shard distribution uniform.
	shardHashXXHash
	// shardHashFNV uses FNV-1a. Solid distribution but slower than xxhash.
	shardHashFNV

	defaultShardHashStrategy = shardHashXXHash
)

// selectShardHashFunc returns the hash function for a strategy.
func selectShardHashFunc(strategy shardHashStrategy) shardHashFunc {
	switch strategy {
	case shardHashSumBytes:
		return sumBytesShardHash
	case shardHashFNV:
		return fnvShardHash
	case shardHashXXHash:
		return xxhashShardHash
	default:
		return xxhashShardHash
	}
}

// sumBytesShardHash hashes a key by summing its bytes.
func sumBytesShardHash(key string) uint64 {
	var sum uint64

	for i := 0; i < len(key); i++ {
		sum += uint64(key[i])
	}

	return sum
}

// xxhashShardHash hashes a key with xxhash.
func xxhashShardHash(key string) uint64 {
	return xxhash.Sum64String(key)
}

// fnvShardHash hashes a key with 64-bit FNV-1a.
func fnvShardHash(key string) uint64 {
	hash := fnv1aOffset64

	for i := 0; i < len(key); i++ {
		hash ^= uint64(key[i])
		hash *= fnv1aPrime64
	}

	return hash
}
