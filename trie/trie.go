package trie

import (
	"slices"
	"strings"

	dtrie "github.com/derekparker/trie"
)

// nul terminates a word in the underlying trie; the terminal node is the
// nul-child of a word's last rune and carries the word's slot.
const nul = 0x0

// Tombstones are only compacted once there are at least this many of them.
const compactThreshold = 64

type slot[V any] struct {
	value V
	live  bool
}

// Trie maps non-empty words to values of type V.
//
// A Trie is not safe for concurrent use with writers; callers have to
// serialize Put and Delete against all other calls.
type Trie[V any] struct {
	words *dtrie.Trie
	live  int
	dead  int
}

// New creates an empty trie.
func New[V any]() *Trie[V] {
	return &Trie[V]{words: dtrie.New()}
}

func (t *Trie[V]) lookup(key string) *slot[V] {
	node, ok := t.words.Find(key)
	if !ok {
		return nil
	}
	s, _ := node.Meta().(*slot[V])
	return s
}

// Get returns the value stored for key.
func (t *Trie[V]) Get(key string) (V, bool) {
	if s := t.lookup(key); s != nil && s.live {
		return s.value, true
	}
	var zero V
	return zero, false
}

// Contains reports whether key is stored.
func (t *Trie[V]) Contains(key string) bool {
	s := t.lookup(key)
	return s != nil && s.live
}

// ValidKey reports whether key can be stored: it must be non-empty and must
// not contain U+0000.
func ValidKey(key string) bool {
	return key != "" && !strings.ContainsRune(key, nul)
}

// Put stores v under key, replacing a previous value. It reports false and
// ignores keys failing ValidKey.
func (t *Trie[V]) Put(key string, v V) bool {
	if !ValidKey(key) {
		return false
	}
	if s := t.lookup(key); s != nil {
		if !s.live {
			s.live = true
			t.live++
			t.dead--
		}
		s.value = v
		return true
	}
	t.words.Add(key, &slot[V]{value: v, live: true})
	t.live++
	return true
}

// Delete removes key and reports whether it was present.
func (t *Trie[V]) Delete(key string) bool {
	s := t.lookup(key)
	if s == nil || !s.live {
		return false
	}
	var zero V
	s.value, s.live = zero, false
	t.live--
	t.dead++
	if t.dead >= compactThreshold && t.dead > t.live {
		t.compact()
	}
	return true
}

// compact rebuilds the underlying trie from the live words. Slots are
// carried over, so iterators on the old trie keep seeing consistent values.
func (t *Trie[V]) compact() {
	fresh := dtrie.New()
	for _, key := range t.words.Keys() {
		if s := t.lookup(key); s != nil && s.live {
			fresh.Add(key, s)
		}
	}
	tracer().Debugf("compacted trie: %d live words, %d tombstones dropped", t.live, t.dead)
	t.words = fresh
	t.dead = 0
}

// Len returns the number of stored words.
func (t *Trie[V]) Len() int { return t.live }

// Tombstones returns the number of removed words not yet compacted away.
func (t *Trie[V]) Tombstones() int { return t.dead }

// PrefixSearch returns all stored words starting with prefix, sorted.
func (t *Trie[V]) PrefixSearch(prefix string) []string {
	candidates := t.words.PrefixSearch(prefix)
	words := make([]string, 0, len(candidates))
	for _, key := range candidates {
		if t.Contains(key) {
			words = append(words, key)
		}
	}
	slices.Sort(words)
	return words
}

// HasPrefix reports whether at least one stored word starts with prefix.
func (t *Trie[V]) HasPrefix(prefix string) bool {
	node := t.words.Root()
	for _, r := range prefix {
		child, ok := node.Children()[r]
		if !ok {
			return false
		}
		node = child
	}
	return hasLiveWord[V](node)
}

func hasLiveWord[V any](node *dtrie.Node) bool {
	for r, child := range node.Children() {
		if r == nul {
			if s, _ := child.Meta().(*slot[V]); s != nil && s.live {
				return true
			}
			continue
		}
		if hasLiveWord[V](child) {
			return true
		}
	}
	return false
}

// --- Iterator --------------------------------------------------------------

// Iterator advances through successive prefixes of one query, rune by rune.
type Iterator[V any] struct {
	node *dtrie.Node
}

// Iterator returns an iterator positioned at the empty prefix.
func (t *Trie[V]) Iterator() *Iterator[V] {
	return &Iterator[V]{node: t.words.Root()}
}

// Next extends the prefix by r and returns the value stored for the extended
// prefix, if any. Once the prefix leaves the trie, Next always fails.
func (it *Iterator[V]) Next(r rune) (V, bool) {
	var zero V
	if it.node == nil || r == nul {
		it.node = nil
		return zero, false
	}
	child, ok := it.node.Children()[r]
	if !ok {
		it.node = nil
		return zero, false
	}
	it.node = child
	if term, ok := child.Children()[nul]; ok {
		if s, _ := term.Meta().(*slot[V]); s != nil && s.live {
			return s.value, true
		}
	}
	return zero, false
}

// Alive is false once the prefix consumed so far cannot be continued to any
// word. It may stay true on prefixes of removed words until the next
// compaction.
func (it *Iterator[V]) Alive() bool {
	return it.node != nil
}
