package zease

import (
	"fmt"

	"github.com/zigrok/zease/store"
)

// New builds a store for values of type V according to opts.
// The zero-value Options select the locked engine with no budgets.
// Invalid options are rejected with a named *Error.
func New[V any](opts Options) (store.Store[V], error) {
	if opts.Engine == "" {
		opts.Engine = DefaultEngine
	}

	if err := opts.Validate(); err != nil {
		return nil, Classify(err)
	}

	switch opts.Engine {
	case EngineLocked:
		return store.NewLockedStore[V](opts.storeConfig()), nil
	case EngineSharded:
		return store.NewShardedStore[V](opts.storeConfig()), nil
	default:
		// Unreachable: the engine is validated above.
		return nil, Classify(fmt.Errorf("%w: %s", ErrInvalidEngine, opts.Engine))
	}
}
