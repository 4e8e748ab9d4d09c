package store

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Stats is a point-in-time snapshot of a store's counters.
type Stats struct {
	// Entries is the number of key-value pairs currently stored.
	Entries int64

	// KeyBytes is the total length of the private key copies the store
	// owns. It reaches zero after Clear or Close; an overwrite does not
	// change it because the existing key copy is reused.
	KeyBytes int64

	// Shards is the number of shards backing the store (1 for LockedStore).
	Shards int
}

// String renders the snapshot in a human-readable form, e.g.
// "1,048,576 entries, 24 MiB of owned keys across 8 shards".
func (st Stats) String() string {
	keyBytes := st.KeyBytes
	if keyBytes < 0 {
		keyBytes = 0
	}

	noun := "shards"
	if st.Shards == 1 {
		noun = "shard"
	}

	return fmt.Sprintf("%s entries, %s of owned keys across %d %s",
		humanize.Comma(st.Entries),
		humanize.IBytes(uint64(keyBytes)),
		st.Shards,
		noun,
	)
}
