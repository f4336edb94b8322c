package domain

import "unique"

// InternedString wraps a unique.Handle[string]. Target names and file paths
// repeat across every prerequisite edge in the dependency graph, so interning
// them keeps the registry's memory footprint flat.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString interns s.
func NewInternedString(s string) InternedString {
	return InternedString{h: unique.Make(s)}
}

// String returns the underlying string value.
func (is InternedString) String() string {
	var zero unique.Handle[string]
	if is.h == zero {
		return ""
	}
	return is.h.Value()
}

// MarshalText implements encoding.TextMarshaler.
func (is InternedString) MarshalText() ([]byte, error) {
	return []byte(is.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (is *InternedString) UnmarshalText(text []byte) error {
	is.h = unique.Make(string(text))
	return nil
}

// InternAll interns every string in ss, preserving order.
func InternAll(ss []string) []InternedString {
	if len(ss) == 0 {
		return nil
	}
	out := make([]InternedString, len(ss))
	for i, s := range ss {
		out[i] = NewInternedString(s)
	}
	return out
}

// Strings converts a slice of InternedString back to plain strings.
func Strings(is []InternedString) []string {
	if len(is) == 0 {
		return nil
	}
	out := make([]string, len(is))
	for i, s := range is {
		out[i] = s.String()
	}
	return out
}
