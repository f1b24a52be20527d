package lexicon

import "fmt"

// Walker extends a prefix rune by rune against one partition, reporting every
// stored entry along the way. It is the lookup pattern of a forward
// maximum-matching segmenter:
//
//	w, _ := store.Walk(lexicon.PartitionCore)
//	for i, r := range text[offset:] {
//	    if e, ok := w.Next(r); ok {
//	        longest, end = e, offset+i+utf8.RuneLen(r)
//	    }
//	    if !w.Alive() {
//	        break
//	    }
//	}
//
// Every step holds the partition's read lock. A walk overlapping writes to
// the partition is safe, but may observe entries from before or after a
// concurrent write. A Walker must not be shared between goroutines.
type Walker struct {
	p  *partition
	it EntryIterator
}

// Walk starts a walk over partition t. It fails with ErrPrefixUnsupported
// unless the store's backend implements WalkableBackend. Walks over unknown
// partitions are valid and find nothing.
func (s *Store) Walk(t int) (*Walker, error) {
	if !s.walk {
		return nil, fmt.Errorf("%w: %s cannot walk", ErrPrefixUnsupported, s.kind)
	}
	p := s.lookup(t)
	if p == nil {
		return &Walker{}, nil
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return &Walker{p: p, it: p.backend.(WalkableBackend).Iterator()}, nil
}

// Next extends the prefix by r and returns the entry stored under the
// extended prefix, if any.
func (w *Walker) Next(r rune) (Entry, bool) {
	if w.it == nil {
		return Entry{}, false
	}
	w.p.mu.RLock()
	defer w.p.mu.RUnlock()
	e, ok := w.it.Next(r)
	if !w.it.Alive() {
		w.it = nil
	}
	return e, ok
}

// Alive is false once no stored key can continue the prefix walked so far.
func (w *Walker) Alive() bool {
	return w.it != nil
}
