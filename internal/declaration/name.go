// Package declaration holds the indexed symbol data model shared by the
// workspace indexer, the local indexer, the symbol resolver and the
// completion engine: declarations, their visibility rules, and the
// case-insensitive name wrapper used to key lookups.
package declaration

import "strings"

// Name is a case-insensitive identifier wrapper. Equality and map keys fold
// to lower-case ASCII; the original casing is retained for display via
// String. Folding is restricted to ASCII A-Z, never locale rules, so the
// same source text maps to the same key on every platform.
type Name struct {
	original string
	folded   string
}

// NewName wraps s, pre-computing its folded form.
func NewName(s string) Name {
	return Name{original: s, folded: foldASCII(s)}
}

// String returns the original, display-preserving casing.
func (n Name) String() string { return n.original }

// Key returns the case-folded form used for map lookups and equality.
func (n Name) Key() string { return n.folded }

// Equal reports whether n and other name the same identifier, ignoring case.
func (n Name) Equal(other Name) bool { return n.folded == other.folded }

// EqualString reports whether n names s, ignoring case.
func (n Name) EqualString(s string) bool { return n.folded == foldASCII(s) }

func foldASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// HasPrefixIgnoreCase reports whether s begins with prefix, folding ASCII
// case on both sides. Used by the completion engine's prefix filter.
func HasPrefixIgnoreCase(s, prefix string) bool {
	if len(prefix) > len(s) {
		return false
	}
	return foldASCII(s[:len(prefix)]) == foldASCII(prefix)
}
