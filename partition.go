package lexicon

import "sync"

// partition is one keyed namespace of a store. The lock serializes writers
// against readers; the backend itself is not synchronized.
type partition struct {
	id      int
	mu      sync.RWMutex
	backend Backend
}

func (p *partition) match(key string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.backend.Match(key)
}

func (p *partition) get(key string) (Entry, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.backend.Get(key)
}

func (p *partition) size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.backend.Size()
}

func (p *partition) stats() BackendStats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.backend.Stats()
}

// add inserts e or merges it into the stored entry of the same key and
// returns what is stored afterwards.
func (p *partition) add(e Entry, policy MergePolicy) Entry {
	p.mu.Lock()
	defer p.mu.Unlock()
	if stored, ok := p.backend.Get(e.key); ok {
		e = policy.merge(stored, e)
		tracer().Debugf("partition %d: merged %v (%s)", p.id, e, policy)
	}
	p.backend.Put(e)
	return e
}

func (p *partition) remove(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.backend.Remove(key)
}
