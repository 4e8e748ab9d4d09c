package store

// Store defines the operations of a thread-safe, string-keyed store of
// values of type V.
//
// General notes:
//
//   - Keys are strings. The store keeps a private copy of every key it
//     holds; callers may reuse or mutate the buffers their keys were
//     sliced from as soon as the call returns.
//   - Values are stored by value. The store never allocates or releases
//     resources on a value's behalf.
//   - Methods that return a boolean indicate whether the key was present
//     (Get, Exists, GetAndDelete, Update) or whether a mutation took
//     place (Delete).
//   - All methods are safe for concurrent use. Operations on a single
//     key never interleave their critical sections.
//
// Error semantics:
//
//   - Only Set, GetOrSet, and Swap can fail: with a budget error when a
//     configured capacity cap would be exceeded, or with ErrStoreClosed
//     after Close. A failed call leaves the table unchanged.
//   - Every other method is infallible and reports a missing key through
//     its boolean result, never through an error.
type Store[V any] interface {
	// Get returns the value stored under key and whether it was present.
	Get(key string) (V, bool)

	// Set stores value under key, overwriting any existing value in
	// place. Inserting a new key makes a private copy of it; overwriting
	// an existing key reuses the copy already held.
	Set(key string, value V) error

	// GetOrSet atomically ensures a value for key and returns the
	// resulting value along with a loaded flag.
	//
	// Semantics:
	//   - If key already exists: the stored value is returned as actual
	//     and loaded == true; the store is not modified.
	//   - If key does not exist: value is stored, actual == value and
	//     loaded == false.
	GetOrSet(key string, value V) (actual V, loaded bool, err error)

	// Swap atomically replaces the value under key and returns the
	// previous value together with a loaded flag indicating whether the
	// key existed. When loaded is false, previous is the zero value of V
	// and the key has been created.
	Swap(key string, value V) (previous V, loaded bool, err error)

	// GetAndDelete atomically removes key and returns the value that was
	// stored under it. The boolean is false when the key was absent.
	GetAndDelete(key string) (V, bool)

	// Delete removes key and reports whether an entry was actually
	// removed. Deleting an absent key is a no-op returning false.
	Delete(key string) bool

	// Exists reports whether key is present.
	Exists(key string) bool

	// Update invokes fn with a pointer to the value stored under key
	// while the key's lock is held, then releases the lock. It returns
	// whether the key was found.
	//
	// The pointer is only valid for the duration of the callback: fn
	// must not retain it, and must not call back into the same store
	// (doing so deadlocks against the lock it is already holding).
	Update(key string, fn func(value *V)) bool

	// ForEach invokes fn once per entry with the entry's key and a
	// pointer to its value. The callback may mutate values in place but
	// must not insert into or remove from the same store, and must not
	// retain the pointer after returning.
	//
	// LockedStore runs the whole traversal inside one critical section;
	// ShardedStore locks one shard at a time, so entries inserted into
	// not-yet-visited shards during the traversal may or may not be seen.
	ForEach(fn func(key string, value *V))

	// Keys returns a snapshot of all keys in unspecified order.
	Keys() []string

	// List returns key-value pairs whose keys start with prefix, ordered
	// lexicographically by key. If limit > 0, at most limit entries are
	// returned; limit <= 0 means "no limit".
	List(prefix string, limit int64) []Entry[V]

	// Size returns the number of entries currently stored.
	Size() int64

	// Clear removes all entries and releases every owned key copy.
	Clear()

	// Stats returns a snapshot of the store's entry count, owned-key
	// byte accounting, and shard layout.
	Stats() Stats

	// Close releases all entries and owned key copies and marks the
	// store closed. After Close, mutating calls fail with ErrStoreClosed
	// and reads report absence. Close is idempotent.
	Close() error
}

// Entry is a single key-value pair as returned by List.
type Entry[V any] struct {
	// Key is the string identifier for the stored value.
	Key string
	// Value is a copy of the stored value.
	Value V
}
