// Package zease is a small library of concurrency utilities, the
// centerpiece of which is a thread-safe, string-keyed, generic
// key-value store with automatic key-lifetime management.
//
// High-level behavior:
//   - New selects one of two engines: "locked" (a single exclusive
//     mutex, strict total order across all operations) or "sharded"
//     (per-shard mutexes, per-key atomicity only). The engine choice is
//     a concurrency-contract choice, not just a performance knob; see
//     the store package for the exact guarantees of each.
//   - Stores own a private copy of every key they hold and never manage
//     resources owned by the values themselves.
//   - The companion contract package provides a reflection-based
//     interface-conformance check used to validate plugin-style types
//     before they are used generically.
package zease
