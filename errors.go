package lexicon

import "errors"

// Sentinel errors. Callers should test with errors.Is, as most errors are
// returned wrapped with context.
//
// A missing key is never an error: Get, Match and Remove report absence
// through their return values.
var (
	// ErrInvalidKey is returned for empty keys, before any state changes.
	ErrInvalidKey = errors.New("invalid lexicon key")
	// ErrInvalidFrequency is returned for negative frequencies.
	ErrInvalidFrequency = errors.New("invalid lexicon frequency")
	// ErrUnresolvedBackend is returned when a backend index cannot be resolved.
	ErrUnresolvedBackend = errors.New("unresolved lexicon backend")
	// ErrDuplicateBackend is returned when registering an index or name twice.
	ErrDuplicateBackend = errors.New("duplicate lexicon backend")
	// ErrPrefixUnsupported is returned for prefix queries against a backend
	// without prefix capabilities.
	ErrPrefixUnsupported = errors.New("backend does not support prefix queries")
)
