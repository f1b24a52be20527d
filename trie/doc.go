/*
Package trie implements a rune trie mapping words to typed values, built on
top of github.com/derekparker/trie.

In addition to exact lookups and prefix searches, a Trie hands out Iterators
which extend a prefix one rune at a time. This is the access pattern of a
maximum-matching segmenter scanning forward from a character offset: the
walk reports every stored word along the way and stops as soon as no word
can continue the prefix.

Removal is logical: a removed word leaves a tombstone in place, and the
underlying trie is rebuilt from the live words once tombstones outnumber
them.

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package trie

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'lexicon.trie'
func tracer() tracing.Trace {
	return tracing.Select("lexicon.trie")
}
