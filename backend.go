package lexicon

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Backend is the storage strategy behind a single partition.
//
// Backends need not be safe for concurrent use; the owning partition
// serializes writers against readers. Put stores an already merged entry,
// replacing whatever is stored under its key.
type Backend interface {
	Match(key string) bool
	Get(key string) (Entry, bool)
	Put(entry Entry)
	Remove(key string) bool // reports whether key was present
	Size() int
	Stats() BackendStats
}

// PrefixBackend is implemented by backends able to answer prefix queries.
type PrefixBackend interface {
	Backend
	HasPrefix(prefix string) bool
	PrefixSearch(prefix string) []string // sorted keys
}

// KeyValidator is implemented by backends which cannot store every
// non-empty string. The store rejects other keys with ErrInvalidKey.
type KeyValidator interface {
	ValidKey(key string) bool
}

// EntryIterator walks the keys of a backend rune by rune.
type EntryIterator interface {
	// Next extends the current prefix by r. It returns the entry stored under
	// the extended prefix, if there is one.
	Next(r rune) (Entry, bool)
	// Alive is false as soon as no stored key starts with the current prefix.
	Alive() bool
}

// WalkableBackend is implemented by backends supporting incremental walks.
type WalkableBackend interface {
	Backend
	Iterator() EntryIterator
}

// BackendStats reports occupancy of a backend.
type BackendStats struct {
	Backend    string
	Entries    int
	Tombstones int // logically removed keys still occupying space
}

// FillRatio is the share of live entries among all occupied slots.
func (s BackendStats) FillRatio() float64 {
	if s.Entries+s.Tombstones == 0 {
		return 0
	}
	return float64(s.Entries) / float64(s.Entries+s.Tombstones)
}

// BackendFactory creates an empty backend for a new partition.
type BackendFactory func() Backend

// BackendType identifies a registered storage strategy. Its integer value is
// part of the external vocabulary of the engine and must stay stable.
type BackendType int

// Built-in backend types.
const (
	HashMap BackendType = 1
	Trie    BackendType = 2
)

type backendInfo struct {
	name    string
	factory BackendFactory
}

var registry = struct {
	sync.RWMutex
	byIndex map[BackendType]backendInfo
	byName  map[string]BackendType
}{
	byIndex: make(map[BackendType]backendInfo),
	byName:  make(map[string]BackendType),
}

// RegisterBackend makes a storage strategy available under an index and a
// (case-insensitive) name. Indices must be positive; neither index nor name
// may be registered twice.
func RegisterBackend(kind BackendType, name string, factory BackendFactory) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if kind <= 0 {
		return fmt.Errorf("cannot register backend %q with index %d: %w", name, kind, ErrUnresolvedBackend)
	}
	if name == "" || factory == nil {
		return fmt.Errorf("backend %d needs a name and a factory", kind)
	}
	registry.Lock()
	defer registry.Unlock()
	if _, exists := registry.byIndex[kind]; exists {
		return fmt.Errorf("%w: index %d", ErrDuplicateBackend, kind)
	}
	if _, exists := registry.byName[name]; exists {
		return fmt.Errorf("%w: name %q", ErrDuplicateBackend, name)
	}
	registry.byIndex[kind] = backendInfo{name: name, factory: factory}
	registry.byName[name] = kind
	tracer().Debugf("registered lexicon backend %q as %d", name, kind)
	return nil
}

func mustRegisterBackend(kind BackendType, name string, factory BackendFactory) {
	err := RegisterBackend(kind, name, factory)
	assertThat(err == nil, fmt.Sprintf("cannot register built-in backend %q: %v", name, err))
}

// BackendTypeFromString finds a backend type by name, ignoring case and
// surrounding whitespace. Empty or unknown names resolve to def.
func BackendTypeFromString(name string, def BackendType) BackendType {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return def
	}
	registry.RLock()
	defer registry.RUnlock()
	if kind, ok := registry.byName[name]; ok {
		return kind
	}
	return def
}

// ParseBackendType finds a backend type by name, defaulting to HashMap.
func ParseBackendType(name string) BackendType {
	return BackendTypeFromString(name, HashMap)
}

// BackendTypeFromIndex resolves a backend type by its index. Unlike name
// resolution this is strict: index 0, negative indices and indices without a
// registered backend are errors.
func BackendTypeFromIndex(index int) (BackendType, error) {
	if index <= 0 {
		return 0, fmt.Errorf("%w: index %d out of range", ErrUnresolvedBackend, index)
	}
	kind := BackendType(index)
	registry.RLock()
	defer registry.RUnlock()
	if _, ok := registry.byIndex[kind]; !ok {
		return 0, fmt.Errorf("%w: no backend with index %d", ErrUnresolvedBackend, index)
	}
	return kind, nil
}

// BackendTypes lists all registered backend types, ordered by index.
func BackendTypes() []BackendType {
	registry.RLock()
	kinds := make([]BackendType, 0, len(registry.byIndex))
	for kind := range registry.byIndex {
		kinds = append(kinds, kind)
	}
	registry.RUnlock()
	slices.Sort(kinds)
	return kinds
}

func (kind BackendType) String() string {
	registry.RLock()
	defer registry.RUnlock()
	if info, ok := registry.byIndex[kind]; ok {
		return info.name
	}
	return fmt.Sprintf("backend(%d)", int(kind))
}

func (kind BackendType) factory() (BackendFactory, error) {
	registry.RLock()
	defer registry.RUnlock()
	info, ok := registry.byIndex[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnresolvedBackend, int(kind))
	}
	return info.factory, nil
}
