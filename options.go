package zease

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/zigrok/zease/store"
)

const (
	// EngineLocked selects the single-mutex engine: every operation on
	// the store is linearizable with respect to every other.
	EngineLocked = "locked"

	// EngineSharded selects the sharded engine: per-key atomicity, no
	// single global linearization point.
	EngineSharded = "sharded"

	// DefaultEngine is used when Options.Engine is left empty.
	DefaultEngine = EngineLocked
)

// ErrInvalidEngine is returned when Options names an unknown engine.
var ErrInvalidEngine = errors.New("invalid engine")

// Options controls how New builds a store.
// The zero value selects the locked engine with no budgets and no logging.
type Options struct {
	// Engine selects the locking strategy backing the store.
	// Valid values: "locked" (default), "sharded".
	Engine string

	// ShardCount sets the number of shards for the sharded engine.
	// <= 0 defaults to the number of CPUs; values above
	// store.MaxShardCount are capped. Ignored by the locked engine.
	ShardCount int

	// MaxEntries caps the number of entries the store may hold.
	// <= 0 means unlimited.
	MaxEntries int64

	// MaxKeyBytes caps the total bytes of key copies the store may own.
	// <= 0 means unlimited.
	MaxKeyBytes int64

	// Logger receives debug-level lifecycle events. Nil disables logging.
	Logger *zap.Logger
}

// Validate rejects option combinations New cannot honor. It is
// intentionally strict to fail fast on invalid configuration.
func (o *Options) Validate() error {
	switch o.Engine {
	case "", EngineLocked, EngineSharded:
	default:
		return fmt.Errorf(
			"%w: %q; valid values are: %q, %q",
			ErrInvalidEngine, o.Engine, EngineLocked, EngineSharded,
		)
	}

	if o.ShardCount < 0 {
		return fmt.Errorf("%w: %d (must be >= 0)", store.ErrInvalidShardCount, o.ShardCount)
	}

	return nil
}

// Equal checks if two Options select the same store configuration.
// Loggers are compared by identity.
func (o Options) Equal(other Options) bool {
	return o.Engine == other.Engine &&
		o.ShardCount == other.ShardCount &&
		o.MaxEntries == other.MaxEntries &&
		o.MaxKeyBytes == other.MaxKeyBytes &&
		o.Logger == other.Logger
}

// storeConfig translates the options into the engine configuration.
func (o Options) storeConfig() *store.Config {
	return &store.Config{
		ShardCount:  o.ShardCount,
		MaxEntries:  o.MaxEntries,
		MaxKeyBytes: o.MaxKeyBytes,
		Logger:      o.Logger,
	}
}
