package lexicon

import (
	"math"
	"strings"
)

// MergePolicy decides what happens when an entry is added under a key which
// is already present in a partition. A Store's policy is fixed at
// construction.
type MergePolicy uint8

const (
	// MergeAccumulate adds the new frequency to the stored one and replaces
	// type and metadata with the new entry's values. This is the default.
	MergeAccumulate MergePolicy = iota
	// MergeOverwrite replaces the stored entry completely.
	MergeOverwrite
)

func (p MergePolicy) String() string {
	switch p {
	case MergeAccumulate:
		return "accumulate"
	case MergeOverwrite:
		return "overwrite"
	}
	return "<unknown>"
}

// ParseMergePolicy finds a merge policy by name, ignoring case.
// Unrecognized names yield MergeAccumulate.
func ParseMergePolicy(name string) MergePolicy {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "overwrite", "replace":
		return MergeOverwrite
	}
	return MergeAccumulate
}

// merge computes the entry to store when incoming meets stored.
func (p MergePolicy) merge(stored, incoming Entry) Entry {
	if p == MergeOverwrite {
		return incoming
	}
	return incoming.withFrequency(saturatingAdd(stored.frequency, incoming.frequency))
}

// saturatingAdd adds two non-negative ints, clamping at math.MaxInt.
func saturatingAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}
