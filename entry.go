package lexicon

import (
	"fmt"
	"slices"
	"strings"
)

// Entry is one lexical item: its key text, a frequency weight, a type tag and
// an ordered list of metadata strings (part-of-speech tags, readings,
// synonyms, …).
//
// Entries are immutable values. The zero Entry is invalid (it has no key) and
// is rejected by Store.Add.
type Entry struct {
	key       string
	frequency int
	typ       int
	metadata  []string // never aliased by callers
}

// NewEntry creates an entry. The key must not be empty and frequency must
// not be negative. Metadata is copied; order is preserved.
func NewEntry(key string, frequency, typ int, metadata ...string) (Entry, error) {
	if key == "" {
		return Entry{}, fmt.Errorf("cannot create entry: %w", ErrInvalidKey)
	}
	if frequency < 0 {
		return Entry{}, fmt.Errorf("cannot create entry %q with frequency %d: %w",
			key, frequency, ErrInvalidFrequency)
	}
	return Entry{
		key:       key,
		frequency: frequency,
		typ:       typ,
		metadata:  slices.Clone(metadata),
	}, nil
}

// NewTypedEntry creates an entry with frequency 0.
func NewTypedEntry(key string, typ int, metadata ...string) (Entry, error) {
	return NewEntry(key, 0, typ, metadata...)
}

// Key returns the entry's text.
func (e Entry) Key() string { return e.key }

// Frequency returns the statistical weight of the entry.
func (e Entry) Frequency() int { return e.frequency }

// Type returns the entry's type tag. The tag is opaque to the store.
func (e Entry) Type() int { return e.typ }

// Metadata returns a copy of the entry's metadata strings.
// It never returns nil.
func (e Entry) Metadata() []string {
	if len(e.metadata) == 0 {
		return []string{}
	}
	return slices.Clone(e.metadata)
}

// MetadataLen returns the number of metadata strings without copying them.
func (e Entry) MetadataLen() int { return len(e.metadata) }

// IsValid is false for the zero Entry.
func (e Entry) IsValid() bool { return e.key != "" && e.frequency >= 0 }

// Equal reports whether e and other carry identical fields.
func (e Entry) Equal(other Entry) bool {
	return e.key == other.key &&
		e.frequency == other.frequency &&
		e.typ == other.typ &&
		slices.Equal(e.metadata, other.metadata)
}

// withFrequency returns a copy of e with frequency f. Metadata is shared,
// which is safe as entries never mutate it.
func (e Entry) withFrequency(f int) Entry {
	e.frequency = f
	return e
}

func (e Entry) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q/%d/%d", e.key, e.typ, e.frequency)
	if len(e.metadata) > 0 {
		b.WriteString("[")
		b.WriteString(strings.Join(e.metadata, ","))
		b.WriteString("]")
	}
	return b.String()
}
