package store

import (
	"runtime"

	"go.uber.org/zap"
)

// MaxShardCount caps the number of shards a ShardedStore will create.
// Beyond this point more shards only add memory overhead; contention is
// already spread far wider than any realistic core count.
const MaxShardCount = 1024

// Config holds engine configuration shared by both store implementations.
// The zero value is valid: no budgets, default shard count, no logging.
type Config struct {
	// ShardCount sets the number of shards for ShardedStore.
	// If <= 0, defaults to runtime.NumCPU().
	// If > MaxShardCount, capped at MaxShardCount.
	// Ignored by LockedStore.
	ShardCount int

	// MaxEntries caps the number of entries the store may hold.
	// Inserts past the cap fail with ErrEntryBudgetExceeded.
	// <= 0 means unlimited.
	MaxEntries int64

	// MaxKeyBytes caps the total bytes of key copies the store may own.
	// Inserts past the cap fail with ErrKeyBudgetExceeded.
	// <= 0 means unlimited.
	MaxKeyBytes int64

	// Logger receives debug-level lifecycle events (creation, Clear,
	// Close). Nil disables logging. The per-key hot path never logs.
	Logger *zap.Logger
}

// GetShardCount returns the effective shard count for a ShardedStore.
// If the shard count is not set, it defaults to runtime.NumCPU().
// If the shard count is greater than MaxShardCount, it is capped at
// MaxShardCount.
func (cfg *Config) GetShardCount() int {
	var shards int
	if cfg != nil {
		shards = cfg.ShardCount
	}

	if shards <= 0 {
		shards = max(1, runtime.NumCPU())
	}

	if shards > MaxShardCount {
		shards = MaxShardCount
	}

	return shards
}

// logger returns the configured logger or a no-op one.
func (cfg *Config) logger() *zap.Logger {
	if cfg == nil || cfg.Logger == nil {
		return zap.NewNop()
	}

	return cfg.Logger
}

// normalized returns a defensive copy of cfg so later caller mutations
// of the original struct cannot change a live store's budgets.
func (cfg *Config) normalized() Config {
	if cfg == nil {
		return Config{}
	}

	return *cfg
}
