package store

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// ShardedStore is the finer-grained engine: the table is split across
// shards, each guarded by its own exclusive mutex, with the shard
// picked by a hash of the key.
//
// The concurrency contract is deliberately weaker than LockedStore's:
// operations on a single key are still atomic and linearizable with
// respect to each other, but there is no single global linearization
// point across keys, and whole-table operations (ForEach, Keys, List,
// Clear) observe shards one at a time. Choose this engine when
// unrelated-key throughput matters more than a strict total order.
type ShardedStore[V any] struct {
	shards     []*shard[V]
	shardCount int
	hashFn     shardHashFunc

	// Global counters mirror the per-shard state so Size/Stats and
	// budget checks stay exact without locking every shard.
	entries  atomic.Int64
	keyBytes atomic.Int64

	// closed is written while every shard lock is held and read under
	// any single shard lock.
	closed bool

	cfg    Config
	logger *zap.Logger
}

// shard holds one slice of the keyspace behind its own lock.
type shard[V any] struct {
	mu        sync.Mutex
	container map[string]V
	keyBytes  int64
}

// NewShardedStore creates an empty ShardedStore with cfg.GetShardCount()
// shards. A nil cfg means NumCPU shards, no budgets, and no logging.
func NewShardedStore[V any](cfg *Config) *ShardedStore[V] {
	shardCount := cfg.GetShardCount()

	shards := make([]*shard[V], shardCount)
	for i := range shards {
		shards[i] = &shard[V]{container: make(map[string]V)}
	}

	s := &ShardedStore[V]{
		shards:     shards,
		shardCount: shardCount,
		hashFn:     selectShardHashFunc(defaultShardHashStrategy),
		cfg:        cfg.normalized(),
		logger:     cfg.logger(),
	}

	s.logger.Debug("sharded store created",
		zap.Int("shards", shardCount),
		zap.Int64("max_entries", s.cfg.MaxEntries),
		zap.Int64("max_key_bytes", s.cfg.MaxKeyBytes))

	return s
}

// Get returns the value stored under key and whether it was present.
func (s *ShardedStore[V]) Get(key string) (V, bool) {
	sh := s.shardByKey(key)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	value, ok := sh.container[key]

	return value, ok
}

// Set stores value under key, overwriting any existing value in place.
func (s *ShardedStore[V]) Set(key string, value V) error {
	sh := s.shardByKey(key)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, exists := sh.container[key]; exists {
		sh.container[key] = value

		return nil
	}

	return s.insertLocked(sh, key, value)
}

// GetOrSet returns the existing value (loaded=true) if key is present,
// otherwise stores value and returns it (loaded=false).
func (s *ShardedStore[V]) GetOrSet(key string, value V) (V, bool, error) {
	sh := s.shardByKey(key)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	if s.closed {
		var zero V
		return zero, false, ErrStoreClosed
	}

	if existing, exists := sh.container[key]; exists {
		return existing, true, nil
	}

	if err := s.insertLocked(sh, key, value); err != nil {
		var zero V
		return zero, false, err
	}

	return value, false, nil
}

// Swap replaces the value under key and returns the previous value and
// whether the key existed. An absent key is created.
func (s *ShardedStore[V]) Swap(key string, value V) (V, bool, error) {
	sh := s.shardByKey(key)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	var zero V

	if s.closed {
		return zero, false, ErrStoreClosed
	}

	if previous, exists := sh.container[key]; exists {
		sh.container[key] = value

		return previous, true, nil
	}

	if err := s.insertLocked(sh, key, value); err != nil {
		return zero, false, err
	}

	return zero, false, nil
}

// GetAndDelete removes key and returns the value that was stored under it.
func (s *ShardedStore[V]) GetAndDelete(key string) (V, bool) {
	sh := s.shardByKey(key)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	value, exists := sh.container[key]
	if !exists {
		var zero V
		return zero, false
	}

	s.deleteLocked(sh, key)

	return value, true
}

// Delete removes key if present and reports whether an entry was
// actually removed.
func (s *ShardedStore[V]) Delete(key string) bool {
	sh := s.shardByKey(key)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	if _, exists := sh.container[key]; !exists {
		return false
	}

	s.deleteLocked(sh, key)

	return true
}

// Exists reports whether key is present.
func (s *ShardedStore[V]) Exists(key string) bool {
	sh := s.shardByKey(key)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	_, ok := sh.container[key]

	return ok
}

// Update invokes fn with a pointer to the value stored under key while
// the key's shard lock is held, then writes the value back. Returns
// whether the key was found. The pointer must not outlive the callback.
func (s *ShardedStore[V]) Update(key string, fn func(value *V)) bool {
	sh := s.shardByKey(key)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	value, exists := sh.container[key]
	if !exists {
		return false
	}

	fn(&value)
	sh.container[key] = value

	return true
}

// ForEach invokes fn once per entry, locking one shard at a time. A
// key's shard is fixed, so no entry is visited twice, but entries
// inserted concurrently into a not-yet-visited shard may be seen while
// entries inserted into an already-visited shard will not. The callback
// must not call back into the store.
func (s *ShardedStore[V]) ForEach(fn func(key string, value *V)) {
	for _, sh := range s.shards {
		sh.mu.Lock()

		for key, value := range sh.container {
			fn(key, &value)
			sh.container[key] = value
		}

		sh.mu.Unlock()
	}
}

// Keys returns a snapshot of all keys in unspecified order, assembled
// shard by shard.
func (s *ShardedStore[V]) Keys() []string {
	keys := make([]string, 0, s.entries.Load())

	for _, sh := range s.shards {
		sh.mu.Lock()

		for key := range sh.container {
			keys = append(keys, key)
		}

		sh.mu.Unlock()
	}

	return keys
}

// List returns entries whose keys start with prefix, ordered
// lexicographically by key. limit <= 0 means "no limit". The snapshot
// is assembled shard by shard, then sorted.
func (s *ShardedStore[V]) List(prefix string, limit int64) []Entry[V] {
	entries := make([]Entry[V], 0, s.entries.Load())

	for _, sh := range s.shards {
		sh.mu.Lock()

		for key, value := range sh.container {
			if prefix != "" && !strings.HasPrefix(key, prefix) {
				continue
			}

			entries = append(entries, Entry[V]{Key: key, Value: value})
		}

		sh.mu.Unlock()
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })

	if limit > 0 && limit < int64(len(entries)) {
		entries = entries[:limit]
	}

	return entries
}

// Size returns the number of entries currently stored.
func (s *ShardedStore[V]) Size() int64 {
	return s.entries.Load()
}

// Clear removes all entries shard by shard.
func (s *ShardedStore[V]) Clear() {
	for _, sh := range s.shards {
		sh.mu.Lock()
		s.clearShardLocked(sh)
		sh.mu.Unlock()
	}

	s.logger.Debug("sharded store cleared")
}

// Stats returns a snapshot of the store's entry and owned-key counters.
func (s *ShardedStore[V]) Stats() Stats {
	return Stats{
		Entries:  s.entries.Load(),
		KeyBytes: s.keyBytes.Load(),
		Shards:   s.shardCount,
	}
}

// Close releases all entries and marks the store closed. The closed
// flag is flipped while every shard lock is held so no insert can race
// past the teardown. Close is idempotent.
func (s *ShardedStore[V]) Close() error {
	s.lockAllShards()
	defer s.unlockAllShards()

	if s.closed {
		return nil
	}

	for _, sh := range s.shards {
		s.clearShardLocked(sh)
	}

	s.closed = true
	s.logger.Debug("sharded store closed")

	return nil
}

// shardByKey returns the shard responsible for key.
func (s *ShardedStore[V]) shardByKey(key string) *shard[V] {
	if s.shardCount == 1 {
		return s.shards[0]
	}

	hashFn := s.hashFn
	if hashFn == nil {
		hashFn = selectShardHashFunc(defaultShardHashStrategy)
	}

	return s.shards[hashFn(key)%uint64(s.shardCount)]
}

// lockAllShards acquires every shard lock in index order.
func (s *ShardedStore[V]) lockAllShards() {
	for i := 0; i < s.shardCount; i++ {
		s.shards[i].mu.Lock()
	}
}

// unlockAllShards releases the shard locks in reverse order to match
// the acquisition order.
func (s *ShardedStore[V]) unlockAllShards() {
	for i := s.shardCount - 1; i >= 0; i-- {
		s.shards[i].mu.Unlock()
	}
}

// insertLocked adds a new key to sh with a private copy of its bytes,
// reserving budget headroom through the global counters first.
// Precondition: sh.mu is held and key is absent from sh.container.
func (s *ShardedStore[V]) insertLocked(sh *shard[V], key string, value V) error {
	keyLen := int64(len(key))

	// Reserve-then-rollback keeps the caps exact across shards without a
	// global lock: the counter is bumped optimistically and undone when
	// the reservation overshoots.
	if total := s.entries.Add(1); s.cfg.MaxEntries > 0 && total > s.cfg.MaxEntries {
		s.entries.Add(-1)

		return ErrEntryBudgetExceeded
	}

	if total := s.keyBytes.Add(keyLen); s.cfg.MaxKeyBytes > 0 && total > s.cfg.MaxKeyBytes {
		s.keyBytes.Add(-keyLen)
		s.entries.Add(-1)

		return ErrKeyBudgetExceeded
	}

	// Clone so a key sliced from a larger caller buffer does not pin
	// that buffer for the lifetime of the entry.
	owned := strings.Clone(key)

	sh.container[owned] = value
	sh.keyBytes += keyLen

	return nil
}

// deleteLocked removes key from sh and settles the counters.
// Precondition: sh.mu is held and key is present in sh.container.
func (s *ShardedStore[V]) deleteLocked(sh *shard[V], key string) {
	delete(sh.container, key)

	keyLen := int64(len(key))
	sh.keyBytes -= keyLen

	s.entries.Add(-1)
	s.keyBytes.Add(-keyLen)
}

// clearShardLocked resets one shard and settles the global counters.
// Precondition: sh.mu is held.
func (s *ShardedStore[V]) clearShardLocked(sh *shard[V]) {
	s.entries.Add(-int64(len(sh.container)))
	s.keyBytes.Add(-sh.keyBytes)

	sh.container = make(map[string]V)
	sh.keyBytes = 0
}
