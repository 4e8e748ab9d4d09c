// Package store provides a thread-safe, string-keyed, generic key-value
// store. It defines the Store interface and two engines implementing it:
//
//   - LockedStore: a single exclusive mutex guarding one table. Every
//     operation on a store is linearizable with respect to every other;
//     the price is that operations on unrelated keys serialize too. This
//     is a deliberate simplicity-over-throughput choice, not an oversight.
//   - ShardedStore: per-shard mutexes with the shard picked by a key
//     hash. Operations on a single key remain atomic, but there is no
//     single global linearization point across keys, and whole-table
//     traversals observe shards one at a time.
//
// Both engines own a private copy of every key they hold, so a key
// sliced out of a larger caller buffer never pins that buffer. Values
// are stored by value and never inspected; if the value type owns
// resources of its own, releasing them is entirely the caller's job,
// both for values removed and values overwritten.
package store
