package store

import (
	"fmt"
	"sync/atomic"
	"testing"
)

// benchmarkEngines mirrors the engines() helper for benchmarks, so the
// two locking strategies can be compared under identical workloads.
func benchmarkEngines() map[string]func() Store[int] {
	return map[string]func() Store[int]{
		"locked":  func() Store[int] { return NewLockedStore[int](nil) },
		"sharded": func() Store[int] { return NewShardedStore[int](&Config{ShardCount: 16}) },
	}
}

func BenchmarkStore_Set(b *testing.B) {
	for name, newStore := range benchmarkEngines() {
		b.Run(name, func(b *testing.B) {
			s := newStore()

			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = s.Set(fmt.Sprintf("key-%d", i%4096), i)
			}
		})
	}
}

func BenchmarkStore_Get(b *testing.B) {
	for name, newStore := range benchmarkEngines() {
		b.Run(name, func(b *testing.B) {
			s := newStore()

			for i := 0; i < 4096; i++ {
				_ = s.Set(fmt.Sprintf("key-%d", i), i)
			}

			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_, _ = s.Get(fmt.Sprintf("key-%d", i%4096))
			}
		})
	}
}

// BenchmarkStore_SetParallel is the workload the sharded engine exists
// for: concurrent writers on disjoint keys.
func BenchmarkStore_SetParallel(b *testing.B) {
	for name, newStore := range benchmarkEngines() {
		b.Run(name, func(b *testing.B) {
			var (
				s      = newStore()
				nextID atomic.Int64
			)

			b.ResetTimer()

			b.RunParallel(func(pb *testing.PB) {
				worker := nextID.Add(1)

				i := 0
				for pb.Next() {
					_ = s.Set(fmt.Sprintf("w%d-key-%d", worker, i%1024), i)
					i++
				}
			})
		})
	}
}

func BenchmarkStore_Update(b *testing.B) {
	for name, newStore := range benchmarkEngines() {
		b.Run(name, func(b *testing.B) {
			s := newStore()
			_ = s.Set("counter", 0)

			b.ResetTimer()

			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					s.Update("counter", func(v *int) { *v++ })
				}
			})
		})
	}
}
