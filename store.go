package lexicon

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Well-known partition ids. These numbers are shared with every component
// talking to a store and must never be renumbered. Any other int is a valid
// partition id as well.
const (
	PartitionCore      = 0 // core vocabulary
	PartitionStopWords = 1 // stop words
	PartitionUnits     = 2 // units and measure words
	PartitionSurnames  = 3 // family names
	PartitionDomain    = 4 // domain-specific word lists
)

// Store is a partitioned lexicon. All partitions of a store use the same
// backend type, chosen at construction.
//
// A Store is safe for concurrent use. Readers of a partition run in
// parallel; Add and Remove exclude readers of the same partition only.
type Store struct {
	id      string
	kind    BackendType
	factory BackendFactory
	policy  MergePolicy
	prefix  bool         // backend implements PrefixBackend
	walk    bool         // backend implements WalkableBackend
	keys    KeyValidator // nil if the backend accepts any non-empty key
	mu      sync.RWMutex // guards parts
	parts   map[int]*partition
}

// New creates an empty store. Without options the store uses the HashMap
// backend and the MergeAccumulate policy.
func New(opts ...Option) (*Store, error) {
	o := options{
		kind:   HashMap,
		policy: MergeAccumulate,
	}
	for _, opt := range opts {
		opt(&o)
	}
	factory, err := o.kind.factory()
	if err != nil {
		tracer().Errorf("cannot create lexicon: %v", err)
		return nil, fmt.Errorf("cannot create lexicon: %w", err)
	}
	if o.id == "" {
		o.id = "lexicon-" + uuid.NewString()
	}
	s := &Store{
		id:      o.id,
		kind:    o.kind,
		factory: factory,
		policy:  o.policy,
		parts:   make(map[int]*partition),
	}
	probe := factory()
	_, s.prefix = probe.(PrefixBackend)
	_, s.walk = probe.(WalkableBackend)
	s.keys, _ = probe.(KeyValidator)
	tracer().Infof("created lexicon %s backend=%s merge=%s", s.id, s.kind, s.policy)
	return s, nil
}

// Identifier returns the store's name as used in tracing output.
func (s *Store) Identifier() string { return s.id }

// Backend returns the backend type of all partitions.
func (s *Store) Backend() BackendType { return s.kind }

// MergePolicy returns the policy applied when adding an existing key.
func (s *Store) MergePolicy() MergePolicy { return s.policy }

// lookup returns partition t or nil if it has never been written to.
func (s *Store) lookup(t int) *partition {
	s.mu.RLock()
	p := s.parts[t]
	s.mu.RUnlock()
	return p
}

// partition returns partition t, creating it if necessary.
func (s *Store) partition(t int) *partition {
	if p := s.lookup(t); p != nil {
		return p
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.parts[t]; ok { // created concurrently
		return p
	}
	p := &partition{id: t, backend: s.factory()}
	s.parts[t] = p
	tracer().Infof("lexicon %s: created partition %d", s.id, t)
	return p
}

// Match reports whether partition t contains key. Unknown partitions are
// empty.
func (s *Store) Match(t int, key string) bool {
	p := s.lookup(t)
	if p == nil {
		return false
	}
	return p.match(key)
}

// Get returns the entry stored under key in partition t. The boolean is
// false if there is none.
func (s *Store) Get(t int, key string) (Entry, bool) {
	p := s.lookup(t)
	if p == nil {
		return Entry{}, false
	}
	return p.get(key)
}

// Add stores e in partition t, creating the partition on first use. If an
// entry with the same key exists, both are merged according to the store's
// MergePolicy. Add returns the entry as stored after merging.
//
// Invalid entries (such as the zero Entry) and keys the backend cannot
// store are rejected with ErrInvalidKey before anything is changed.
func (s *Store) Add(t int, e Entry) (Entry, error) {
	if e.key == "" {
		tracer().Errorf("lexicon %s: rejected entry without key for partition %d", s.id, t)
		return Entry{}, fmt.Errorf("partition %d: %w", t, ErrInvalidKey)
	}
	if s.keys != nil && !s.keys.ValidKey(e.key) {
		tracer().Errorf("lexicon %s: backend %s cannot store key %q", s.id, s.kind, e.key)
		return Entry{}, fmt.Errorf("partition %d, key %q: %w", t, e.key, ErrInvalidKey)
	}
	if e.frequency < 0 {
		return Entry{}, fmt.Errorf("partition %d, key %q: %w", t, e.key, ErrInvalidFrequency)
	}
	return s.partition(t).add(e, s.policy), nil
}

// AddWord builds an entry from its parts and adds it to partition t of s.
func AddWord(s *Store, t int, key string, frequency, typ int, metadata ...string) (Entry, error) {
	e, err := NewEntry(key, frequency, typ, metadata...)
	if err != nil {
		return Entry{}, fmt.Errorf("partition %d: %w", t, err)
	}
	return s.Add(t, e)
}

// AddTyped adds an entry with frequency 0 to partition t of s.
func AddTyped(s *Store, t int, key string, typ int, metadata ...string) (Entry, error) {
	return AddWord(s, t, key, 0, typ, metadata...)
}

// Remove deletes key from partition t. Removing an absent key is a no-op.
// Partitions persist even when emptied.
func (s *Store) Remove(t int, key string) {
	p := s.lookup(t)
	if p == nil {
		return
	}
	if p.remove(key) {
		tracer().Debugf("lexicon %s: removed %q from partition %d", s.id, key, t)
	}
}

// Size returns the number of entries in partition t.
func (s *Store) Size(t int) int {
	p := s.lookup(t)
	if p == nil {
		return 0
	}
	return p.size()
}

// Partitions returns the ids of all partitions created so far, in ascending
// order.
func (s *Store) Partitions() []int {
	s.mu.RLock()
	ids := make([]int, 0, len(s.parts))
	for id := range s.parts {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

// Stats reports occupancy of partition t.
func (s *Store) Stats(t int) BackendStats {
	p := s.lookup(t)
	if p == nil {
		return BackendStats{Backend: s.kind.String()}
	}
	return p.stats()
}

// --- Prefix queries --------------------------------------------------------

// HasPrefix reports whether partition t contains a key starting with prefix.
// It fails with ErrPrefixUnsupported if the store's backend cannot answer
// prefix queries.
func (s *Store) HasPrefix(t int, prefix string) (bool, error) {
	if err := s.requirePrefix(); err != nil {
		return false, err
	}
	p := s.lookup(t)
	if p == nil {
		return false, nil
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.backend.(PrefixBackend).HasPrefix(prefix), nil
}

// PrefixSearch returns the keys of partition t starting with prefix, sorted.
// It fails with ErrPrefixUnsupported if the store's backend cannot answer
// prefix queries.
func (s *Store) PrefixSearch(t int, prefix string) ([]string, error) {
	if err := s.requirePrefix(); err != nil {
		return nil, err
	}
	p := s.lookup(t)
	if p == nil {
		return []string{}, nil
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.backend.(PrefixBackend).PrefixSearch(prefix), nil
}

func (s *Store) requirePrefix() error {
	if !s.prefix {
		return fmt.Errorf("%w: %s", ErrPrefixUnsupported, s.kind)
	}
	return nil
}
