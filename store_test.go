package lexicon

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var builtinBackends = []BackendType{HashMap, Trie}

func newStore(t *testing.T, kind BackendType, opts ...Option) *Store {
	t.Helper()
	store, err := New(append([]Option{WithBackend(kind)}, opts...)...)
	require.NoError(t, err)
	require.Equal(t, kind, store.Backend())
	return store
}

func TestStoreScenarioAccumulate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexicon")
	defer teardown()
	//
	for _, kind := range builtinBackends {
		t.Run(kind.String(), func(t *testing.T) {
			store := newStore(t, kind)
			assert.Equal(t, MergeAccumulate, store.MergePolicy())
			e, err := AddWord(store, 0, "中国", 120, 1, "ns")
			require.NoError(t, err)
			assert.Equal(t, 120, e.Frequency())
			assert.Equal(t, 1, store.Size(0))
			assert.True(t, store.Match(0, "中国"))
			got, ok := store.Get(0, "中国")
			require.True(t, ok)
			assert.Equal(t, 120, got.Frequency())
			assert.Equal(t, []string{"ns"}, got.Metadata())

			e, err = AddWord(store, 0, "中国", 30, 1)
			require.NoError(t, err)
			assert.Equal(t, 150, e.Frequency())
			assert.Equal(t, 1, store.Size(0))
			got, ok = store.Get(0, "中国")
			require.True(t, ok)
			assert.True(t, e.Equal(got), "Add must return the stored entry")
			assert.Equal(t, 150, got.Frequency())
			assert.Equal(t, 1, got.Type())
			assert.Empty(t, got.Metadata(), "metadata is replaced by the newer entry")
		})
	}
}

func TestStoreScenarioOverwrite(t *testing.T) {
	for _, kind := range builtinBackends {
		t.Run(kind.String(), func(t *testing.T) {
			store := newStore(t, kind, WithMergePolicy(MergeOverwrite))
			_, err := AddWord(store, 0, "中国", 120, 1, "ns")
			require.NoError(t, err)
			e, err := AddWord(store, 0, "中国", 30, 1)
			require.NoError(t, err)
			assert.Equal(t, 30, e.Frequency())
			got, ok := store.Get(0, "中国")
			require.True(t, ok)
			assert.Equal(t, 30, got.Frequency())
			assert.Empty(t, got.Metadata())
		})
	}
}

func TestStoreTypeReplacedOnMerge(t *testing.T) {
	store := newStore(t, HashMap)
	_, err := AddTyped(store, PartitionCore, "研究", 1, "n")
	require.NoError(t, err)
	e, err := AddWord(store, PartitionCore, "研究", 8, 2, "v", "vn")
	require.NoError(t, err)
	assert.Equal(t, 8, e.Frequency())
	assert.Equal(t, 2, e.Type())
	assert.Equal(t, []string{"v", "vn"}, e.Metadata())
}

func TestStoreFrequencySaturates(t *testing.T) {
	store := newStore(t, HashMap)
	_, err := AddWord(store, 0, "的", math.MaxInt, 0)
	require.NoError(t, err)
	e, err := AddWord(store, 0, "的", 5, 0)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, e.Frequency())
}

func TestStoreUnknownPartitionIsEmpty(t *testing.T) {
	for _, kind := range builtinBackends {
		t.Run(kind.String(), func(t *testing.T) {
			store := newStore(t, kind)
			assert.False(t, store.Match(7, "中国"))
			_, ok := store.Get(7, "中国")
			assert.False(t, ok)
			assert.Zero(t, store.Size(7))
			store.Remove(7, "中国")
			assert.Empty(t, store.Partitions(), "reads must not create partitions")
			assert.Equal(t, kind.String(), store.Stats(7).Backend)
		})
	}
}

func TestStoreMissingKey(t *testing.T) {
	for _, kind := range builtinBackends {
		t.Run(kind.String(), func(t *testing.T) {
			store := newStore(t, kind)
			_, err := AddWord(store, 0, "中国人", 1, 0)
			require.NoError(t, err)
			assert.False(t, store.Match(0, "中国"), "a prefix of a key is not a key")
			assert.False(t, store.Match(0, "中国人民"))
			e, ok := store.Get(0, "中国")
			assert.False(t, ok)
			assert.False(t, e.IsValid())
		})
	}
}

func TestStoreCrossPartitionIsolation(t *testing.T) {
	for _, kind := range builtinBackends {
		t.Run(kind.String(), func(t *testing.T) {
			store := newStore(t, kind)
			_, err := AddWord(store, PartitionCore, "k", 1, 0)
			require.NoError(t, err)
			assert.True(t, store.Match(PartitionCore, "k"))
			assert.False(t, store.Match(PartitionStopWords, "k"))

			_, err = AddWord(store, PartitionStopWords, "k", 9, 5)
			require.NoError(t, err)
			core, _ := store.Get(PartitionCore, "k")
			stop, _ := store.Get(PartitionStopWords, "k")
			assert.Equal(t, 1, core.Frequency())
			assert.Equal(t, 9, stop.Frequency())

			store.Remove(PartitionStopWords, "k")
			assert.True(t, store.Match(PartitionCore, "k"))
			assert.Equal(t, []int{PartitionCore, PartitionStopWords}, store.Partitions())
		})
	}
}

func TestStoreSizeAndRemove(t *testing.T) {
	for _, kind := range builtinBackends {
		t.Run(kind.String(), func(t *testing.T) {
			store := newStore(t, kind)
			for _, w := range []string{"教育", "教育學", "總統", "總統大選"} {
				_, err := AddWord(store, 3, w, 1, 0)
				require.NoError(t, err)
			}
			assert.Equal(t, 4, store.Size(3))
			_, err := AddWord(store, 3, "總統", 1, 0)
			require.NoError(t, err)
			assert.Equal(t, 4, store.Size(3), "duplicate keys must not grow a partition")

			store.Remove(3, "總統")
			assert.Equal(t, 3, store.Size(3))
			assert.False(t, store.Match(3, "總統"))
			assert.True(t, store.Match(3, "總統大選"))

			store.Remove(3, "總統") // absent now
			store.Remove(3, "貓")
			assert.Equal(t, 3, store.Size(3))

			for _, w := range []string{"教育", "教育學", "總統大選"} {
				store.Remove(3, w)
			}
			assert.Zero(t, store.Size(3))
			assert.Equal(t, []int{3}, store.Partitions(), "emptied partitions persist")

			e, err := AddWord(store, 3, "總統", 4, 0)
			require.NoError(t, err)
			assert.Equal(t, 4, e.Frequency(), "removed keys do not carry statistics over")
		})
	}
}

func TestStoreRejectsInvalidEntries(t *testing.T) {
	store := newStore(t, HashMap)
	_, err := store.Add(5, Entry{})
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = AddWord(store, 5, "", 10, 1)
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = AddTyped(store, 5, "", 1)
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = AddWord(store, 5, "word", -1, 1)
	assert.ErrorIs(t, err, ErrInvalidFrequency)
	assert.Empty(t, store.Partitions(), "rejected entries must not create partitions")
	assert.Zero(t, store.Size(5))
}

func TestStoreKeysWithNul(t *testing.T) {
	store := newStore(t, Trie)
	_, err := AddWord(store, PartitionCore, "a\x00b", 3, 0)
	assert.ErrorIs(t, err, ErrInvalidKey)
	assert.Empty(t, store.Partitions(), "rejected entries must not create partitions")
	assert.Zero(t, store.Size(PartitionCore))

	// hash tables store any non-empty key
	store = newStore(t, HashMap)
	_, err = AddWord(store, PartitionCore, "a\x00b", 3, 0)
	require.NoError(t, err)
	assert.True(t, store.Match(PartitionCore, "a\x00b"))
	assert.Equal(t, 1, store.Size(PartitionCore))
}

func TestStoreIdentifier(t *testing.T) {
	store := newStore(t, HashMap)
	assert.True(t, strings.HasPrefix(store.Identifier(), "lexicon-"))
	other := newStore(t, HashMap)
	assert.NotEqual(t, store.Identifier(), other.Identifier())
	named := newStore(t, Trie, WithIdentifier("zh-core"))
	assert.Equal(t, "zh-core", named.Identifier())
}

func TestStoreUnresolvedBackend(t *testing.T) {
	_, err := New(WithBackend(BackendType(999)))
	assert.ErrorIs(t, err, ErrUnresolvedBackend)
	store, err := New(WithBackendName("no-such-backend"))
	require.NoError(t, err)
	assert.Equal(t, HashMap, store.Backend())
}

func TestStorePrefixQueries(t *testing.T) {
	store := newStore(t, Trie)
	for _, w := range []string{"中国", "中国人", "中华", "美国"} {
		_, err := AddWord(store, 0, w, 1, 0)
		require.NoError(t, err)
	}
	keys, err := store.PrefixSearch(0, "中")
	require.NoError(t, err)
	assert.Equal(t, []string{"中华", "中国", "中国人"}, keys)

	ok, err := store.HasPrefix(0, "美")
	require.NoError(t, err)
	assert.True(t, ok)
	store.Remove(0, "美国")
	ok, err = store.HasPrefix(0, "美")
	require.NoError(t, err)
	assert.False(t, ok, "removed keys must not count as prefixes")

	ok, err = store.HasPrefix(9, "中")
	require.NoError(t, err)
	assert.False(t, ok)
	keys, err = store.PrefixSearch(9, "中")
	require.NoError(t, err)
	assert.Empty(t, keys)

	stats := store.Stats(0)
	assert.Equal(t, "trie", stats.Backend)
	assert.Equal(t, 3, stats.Entries)
	assert.Equal(t, 1, stats.Tombstones)
}

func TestStorePrefixUnsupported(t *testing.T) {
	store := newStore(t, HashMap)
	_, err := AddWord(store, 0, "中国", 1, 0)
	require.NoError(t, err)
	_, err = store.HasPrefix(0, "中")
	assert.ErrorIs(t, err, ErrPrefixUnsupported)
	_, err = store.PrefixSearch(0, "中")
	assert.ErrorIs(t, err, ErrPrefixUnsupported)
	_, err = store.Walk(0)
	assert.ErrorIs(t, err, ErrPrefixUnsupported)
}

func TestMatchDoesNotAllocate(t *testing.T) {
	if raceEnabled {
		t.Skip("allocation counts are unreliable under the race detector")
	}
	store := newStore(t, HashMap)
	_, err := AddWord(store, 0, "中国", 120, 1, "ns")
	require.NoError(t, err)
	key := "中国"
	allocs := testing.AllocsPerRun(100, func() {
		store.Match(0, key)
		store.Match(0, "missing")
		store.Match(42, key)
	})
	assert.Zero(t, allocs)
}

func TestStoreConcurrentReadersAndWriters(t *testing.T) {
	const writers, readers, words = 4, 8, 200
	for _, kind := range builtinBackends {
		t.Run(kind.String(), func(t *testing.T) {
			store := newStore(t, kind)
			var wg sync.WaitGroup
			errs := make(chan error, writers)
			for w := range writers {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := range words {
						key := fmt.Sprintf("w%d-%d", w%2, i)
						if _, err := AddWord(store, w%2, key, 1, 0); err != nil {
							errs <- err
							return
						}
					}
				}()
			}
			for r := range readers {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := range words {
						key := fmt.Sprintf("w%d-%d", r%2, i)
						if store.Match(r%2, key) {
							if e, ok := store.Get(r%2, key); !ok || e.Frequency() < 1 {
								t.Errorf("matched %q but Get returned %v, %v", key, e, ok)
							}
						}
						_ = store.Size(r % 2)
					}
				}()
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				require.NoError(t, err)
			}
			// two writers per partition, each adding every key once
			for p := range 2 {
				assert.Equal(t, words, store.Size(p))
				e, ok := store.Get(p, fmt.Sprintf("w%d-0", p))
				require.True(t, ok)
				assert.Equal(t, 2, e.Frequency())
			}
		})
	}
}
