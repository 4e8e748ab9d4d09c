package store

import (
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// LockedStore is the single-lock engine: one exclusive mutex guarding
// one table. Every public operation is a bounded, synchronous critical
// section, so all operations on the same store are linearizable with
// respect to each other. Operations on unrelated keys serialize too;
// that is the documented tradeoff of this engine, and ShardedStore is
// the variant that relaxes it.
//
// The store owns a private copy of every key it holds: the first insert
// of a key clones it (strings.Clone), an overwrite reuses the copy
// already held, and removal or teardown drops it. Owned-key bytes are
// tracked and reported through Stats.
type LockedStore[V any] struct {
	mu        sync.Mutex
	container map[string]V

	// keyBytes is the total length of key copies the store owns.
	keyBytes int64

	closed bool
	cfg    Config
	logger *zap.Logger
}

// NewLockedStore creates an empty LockedStore with the given
// configuration. A nil cfg means no budgets and no logging.
func NewLockedStore[V any](cfg *Config) *LockedStore[V] {
	s := &LockedStore[V]{
		container: make(map[string]V),
		cfg:       cfg.normalized(),
		logger:    cfg.logger(),
	}

	s.logger.Debug("locked store created",
		zap.Int64("max_entries", s.cfg.MaxEntries),
		zap.Int64("max_key_bytes", s.cfg.MaxKeyBytes))

	return s
}

// Get returns the value stored under key and whether it was present.
func (s *LockedStore[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.container[key]

	return value, ok
}

// Set stores value under key, overwriting any existing value in place.
//
// A new key costs one private key copy; overwriting an existing key
// performs no allocation beyond the value assignment. On a budget
// failure the table is left unchanged.
func (s *LockedStore[V]) Set(key string, value V) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, exists := s.container[key]; exists {
		s.container[key] = value

		return nil
	}

	return s.insertLocked(key, value)
}

// GetOrSet returns the existing value (loaded=true) if key is present,
// otherwise stores value and returns it (loaded=false).
func (s *LockedStore[V]) GetOrSet(key string, value V) (V, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		var zero V
		return zero, false, ErrStoreClosed
	}

	if existing, exists := s.container[key]; exists {
		return existing, true, nil
	}

	if err := s.insertLocked(key, value); err != nil {
		var zero V
		return zero, false, err
	}

	return value, false, nil
}

// Swap replaces the value under key and returns the previous value and
// whether the key existed, all in one critical section. When the key
// did not exist it is created and previous is the zero value of V.
func (s *LockedStore[V]) Swap(key string, value V) (V, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero V

	if s.closed {
		return zero, false, ErrStoreClosed
	}

	if previous, exists := s.container[key]; exists {
		s.container[key] = value

		return previous, true, nil
	}

	if err := s.insertLocked(key, value); err != nil {
		return zero, false, err
	}

	return zero, false, nil
}

// GetAndDelete removes key and returns the value that was stored under
// it, combining the existence check, extraction, and key-copy release
// into one critical section.
func (s *LockedStore[V]) GetAndDelete(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, exists := s.container[key]
	if !exists {
		var zero V
		return zero, false
	}

	s.deleteLocked(key)

	return value, true
}

// Delete removes key if present and reports whether an entry was
// actually removed. Deleting an absent key is a no-op returning false.
func (s *LockedStore[V]) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.container[key]; !exists {
		return false
	}

	s.deleteLocked(key)

	return true
}

// Exists reports whether key is present.
func (s *LockedStore[V]) Exists(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.container[key]

	return ok
}

// Update invokes fn with a pointer to the value stored under key while
// the lock is held, then writes the (possibly mutated) value back.
// Returns whether the key was found.
//
// The value is copied out of the table, mutated through the pointer,
// and copied back in: map elements are not addressable, and the extra
// copy also guarantees a retained pointer cannot reach live table state
// after the lock is released.
func (s *LockedStore[V]) Update(key string, fn func(value *V)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, exists := s.container[key]
	if !exists {
		return false
	}

	fn(&value)
	s.container[key] = value

	return true
}

// ForEach invokes fn once per entry with the entry's key and a pointer
// to its value, all under a single lock acquisition. The callback may
// mutate values in place but must not insert into or remove from the
// same store: it would deadlock against the lock already held.
func (s *LockedStore[V]) ForEach(fn func(key string, value *V)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range s.container {
		fn(key, &value)
		s.container[key] = value
	}
}

// Keys returns a snapshot of all keys in unspecified order.
func (s *LockedStore[V]) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.container))
	for key := range s.container {
		keys = append(keys, key)
	}

	return keys
}

// List returns entries whose keys start with prefix, ordered
// lexicographically by key. limit <= 0 means "no limit".
func (s *LockedStore[V]) List(prefix string, limit int64) []Entry[V] {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.container))

	for key := range s.container {
		if prefix != "" && !strings.HasPrefix(key, prefix) {
			continue
		}

		keys = append(keys, key)
	}

	// Lexicographical sort for deterministic ordering.
	sort.Strings(keys)

	if limit > 0 && limit < int64(len(keys)) {
		keys = keys[:limit]
	}

	entries := make([]Entry[V], len(keys))
	for i, key := range keys {
		entries[i] = Entry[V]{Key: key, Value: s.container[key]}
	}

	return entries
}

// Size returns the number of entries currently stored.
func (s *LockedStore[V]) Size() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return int64(len(s.container))
}

// Clear removes all entries and releases every owned key copy.
func (s *LockedStore[V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearLocked()
	s.logger.Debug("locked store cleared")
}

// Stats returns a snapshot of the store's entry and owned-key counters.
func (s *LockedStore[V]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Stats{
		Entries:  int64(len(s.container)),
		KeyBytes: s.keyBytes,
		Shards:   1,
	}
}

// Close releases all entries and owned key copies and marks the store
// closed. Further mutating calls fail with ErrStoreClosed; reads report
// absence. Close is idempotent.
func (s *LockedStore[V]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.clearLocked()
	s.closed = true
	s.logger.Debug("locked store closed")

	return nil
}

// insertLocked adds a new key with a private copy of its bytes.
// Precondition: s.mu is held and key is absent from the container.
func (s *LockedStore[V]) insertLocked(key string, value V) error {
	if s.cfg.MaxEntries > 0 && int64(len(s.container))+1 > s.cfg.MaxEntries {
		return ErrEntryBudgetExceeded
	}

	if s.cfg.MaxKeyBytes > 0 && s.keyBytes+int64(len(key)) > s.cfg.MaxKeyBytes {
		return ErrKeyBudgetExceeded
	}

	// Clone so a key sliced from a larger caller buffer does not pin
	// that buffer for the lifetime of the entry.
	owned := strings.Clone(key)

	s.container[owned] = value
	s.keyBytes += int64(len(owned))

	return nil
}

// deleteLocked removes key and its owned copy.
// Precondition: s.mu is held and key is present in the container.
func (s *LockedStore[V]) deleteLocked(key string) {
	delete(s.container, key)
	s.keyBytes -= int64(len(key))
}

// clearLocked resets the container and the owned-key accounting.
// Precondition: s.mu is held.
func (s *LockedStore[V]) clearLocked() {
	s.container = make(map[string]V)
	s.keyBytes = 0
}
