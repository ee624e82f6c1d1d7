package domain

import "unique"

// InternedString is a value object that wraps a unique.Handle[string].
// Task names, paths and plugin ids repeat across a build, so they are interned.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString creates a new InternedString from a string.
func NewInternedString(s string) InternedString {
	return InternedString{
		h: unique.Make(s),
	}
}

// NewInternedStrings interns every string in s.
func NewInternedStrings(s []string) []InternedString {
	if len(s) == 0 {
		return nil
	}
	res := make([]InternedString, len(s))
	for i, v := range s {
		res[i] = NewInternedString(v)
	}
	return res
}

// Strings converts interned values back to plain strings.
func Strings(is []InternedString) []string {
	res := make([]string, len(is))
	for i, v := range is {
		res[i] = v.String()
	}
	return res
}

// String returns the underlying string value. The zero value is "".
func (is InternedString) String() string {
	var zero unique.Handle[string]
	if is.h == zero {
		return ""
	}
	return is.h.Value()
}

// IsZero reports whether the value was never set.
func (is InternedString) IsZero() bool {
	var zero unique.Handle[string]
	return is.h == zero
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
