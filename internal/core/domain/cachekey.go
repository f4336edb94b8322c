package domain

import (
	"bytes"
	"encoding/json"

	"go.trai.ch/zerr"
)

// CacheKey is the JSON-serializable nested sequence spec.md §3 describes:
// a deterministic summary of everything that can change a task's result.
// Elements are typically []string (a command vector, or hash records
// converted with HashRecordStrings) or [][]string (a rule's recipe).
type CacheKey []any

// Canonical returns the canonical string form of the key, compared across
// runs to decide cache hits. json.Marshal is deterministic here because
// every element is an ordered slice (never a map), matching the JSON object
// key-ordering caveat that would otherwise break determinism.
func (k CacheKey) Canonical() (string, error) {
	b, err := json.Marshal(k)
	if err != nil {
		return "", zerr.Wrap(err, "failed to serialize cache key")
	}
	return string(b), nil
}

// RawCanonical marshals k to its raw JSON bytes, for direct persistence.
func (k CacheKey) RawCanonical() (json.RawMessage, error) {
	b, err := json.Marshal(k)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to serialize cache key")
	}
	return json.RawMessage(b), nil
}

// Equal reports whether k and other have the same canonical serialization.
// other is typically a json.RawMessage freshly read from the persisted
// cache file; comparison is byte-for-byte after both sides round-trip
// through json.Marshal so that whitespace differences from hand-edited
// cache files don't cause spurious misses.
func (k CacheKey) Equal(other json.RawMessage) (bool, error) {
	mine, err := k.RawCanonical()
	if err != nil {
		return false, err
	}
	if other == nil {
		return false, nil
	}
	var theirsNormalized, mineNormalized any
	if err := json.Unmarshal(other, &theirsNormalized); err != nil {
		return false, nil //nolint:nilerr // malformed persisted entries are treated as a miss, not fatal
	}
	if err := json.Unmarshal(mine, &mineNormalized); err != nil {
		return false, err
	}
	theirs, err := json.Marshal(theirsNormalized)
	if err != nil {
		return false, nil //nolint:nilerr // unreachable for already-valid JSON but defensive
	}
	mineBytes, err := json.Marshal(mineNormalized)
	if err != nil {
		return false, err
	}
	return bytes.Equal(theirs, mineBytes), nil
}

// StringSlices converts a slice of string vectors (e.g. a recipe's command
// list) into a CacheKey element.
func StringSlices(vectors [][]string) []any {
	out := make([]any, len(vectors))
	for i, v := range vectors {
		out[i] = v
	}
	return out
}

// HashRecordStrings converts hash records to plain strings for inclusion in
// a CacheKey element.
func HashRecordStrings(records []HashRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = string(r)
	}
	return out
}
