package store

import "errors"

var (
	// ErrStoreClosed is returned by mutating operations after Close.
	ErrStoreClosed = errors.New("store is closed")
	// ErrEntryBudgetExceeded is returned when an insert would exceed the
	// configured MaxEntries cap.
	ErrEntryBudgetExceeded = errors.New("entry budget exceeded")
	// ErrKeyBudgetExceeded is returned when an insert would push the
	// total bytes of owned key copies past the configured MaxKeyBytes cap.
	ErrKeyBudgetExceeded = errors.New("key byte budget exceeded")
	// ErrInvalidShardCount is returned when a shard count cannot be used.
	ErrInvalidShardCount = errors.New("invalid shard count")
)
