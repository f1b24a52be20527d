package lexicon

import (
	"github.com/npillmayer/lexicon/trie"
)

func init() {
	mustRegisterBackend(Trie, "trie", newTrieBackend)
}

// trieBackend stores a partition in a rune trie. Lookups are O(len(key))
// and allocate for rune conversion, but the backend answers prefix queries
// and supports incremental walks.
type trieBackend struct {
	words *trie.Trie[Entry]
}

var _ PrefixBackend = (*trieBackend)(nil)
var _ WalkableBackend = (*trieBackend)(nil)
var _ KeyValidator = (*trieBackend)(nil)

func newTrieBackend() Backend {
	return &trieBackend{words: trie.New[Entry]()}
}

// ValidKey rejects keys containing U+0000, which terminates words in the trie.
func (tb *trieBackend) ValidKey(key string) bool {
	return trie.ValidKey(key)
}

func (tb *trieBackend) Match(key string) bool {
	return tb.words.Contains(key)
}

func (tb *trieBackend) Get(key string) (Entry, bool) {
	return tb.words.Get(key)
}

func (tb *trieBackend) Put(entry Entry) {
	tb.words.Put(entry.key, entry)
}

func (tb *trieBackend) Remove(key string) bool {
	return tb.words.Delete(key)
}

func (tb *trieBackend) Size() int {
	return tb.words.Len()
}

func (tb *trieBackend) HasPrefix(prefix string) bool {
	return tb.words.HasPrefix(prefix)
}

func (tb *trieBackend) PrefixSearch(prefix string) []string {
	return tb.words.PrefixSearch(prefix)
}

func (tb *trieBackend) Iterator() EntryIterator {
	return tb.words.Iterator()
}

func (tb *trieBackend) Stats() BackendStats {
	return BackendStats{
		Backend:    Trie.String(),
		Entries:    tb.words.Len(),
		Tombstones: tb.words.Tombstones(),
	}
}
