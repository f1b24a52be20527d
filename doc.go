/*
Package lexicon is the partitioned lexicon store of a word-segmentation engine.

A Store holds lexical entries keyed by (partition, key). Partitions are small
integers naming independent word lists (core vocabulary, stop words, units,
surnames, …); they are created lazily on first write. Every partition of one
Store is backed by the same storage strategy, selected at construction time
from a registry of backends:

	hashmap (1)   hash table, allocation-free Match
	trie    (2)   rune trie with prefix queries and incremental walks

Further backends may be added with RegisterBackend without touching the Store.

Segmenters call Match and Get for every candidate substring, so these paths
neither trace nor allocate (for the hash backend). Loaders feed entries
through Add or one of the Load functions; the value returned from Add is the
authoritative state after merging with a previously stored entry of the same
key (see MergePolicy).

Concurrency

Each partition carries its own reader/writer lock: readers of a partition
never block each other, writers are exclusive per partition. Different
partitions never contend except when a new partition is created.

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package lexicon

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'lexicon'
func tracer() tracing.Trace {
	return tracing.Select("lexicon")
}

func assertThat(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
