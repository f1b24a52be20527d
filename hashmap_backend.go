package lexicon

func init() {
	mustRegisterBackend(HashMap, "hashmap", newHashBackend)
}

// hashBackend stores a partition in a Go map. Lookups of string keys do not
// allocate, which keeps Store.Match allocation-free on the segmenter's hot
// path.
type hashBackend struct {
	entries map[string]Entry
}

func newHashBackend() Backend {
	return &hashBackend{entries: make(map[string]Entry)}
}

func (hb *hashBackend) Match(key string) bool {
	_, ok := hb.entries[key]
	return ok
}

func (hb *hashBackend) Get(key string) (Entry, bool) {
	e, ok := hb.entries[key]
	return e, ok
}

func (hb *hashBackend) Put(entry Entry) {
	hb.entries[entry.key] = entry
}

func (hb *hashBackend) Remove(key string) bool {
	if _, ok := hb.entries[key]; !ok {
		return false
	}
	delete(hb.entries, key)
	return true
}

func (hb *hashBackend) Size() int {
	return len(hb.entries)
}

func (hb *hashBackend) Stats() BackendStats {
	return BackendStats{
		Backend: HashMap.String(),
		Entries: len(hb.entries),
	}
}
