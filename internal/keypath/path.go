// internal/keypath/path.go
package keypath

import (
	"slices"
	"strings"
)

// String serializes the Path into its canonical dotted representation.
func (p Path) String() string {
	return strings.Join(p.Segments, ".")
}

// Equal checks two paths segment by segment.
func (p Path) Equal(other Path) bool {
	return slices.Equal(p.Segments, other.Segments)
}

// HasPrefix reports whether p starts with every segment of prefix.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix.Segments) > len(p.Segments) {
		return false
	}
	return slices.Equal(p.Segments[:len(prefix.Segments)], prefix.Segments)
}

// Join builds the canonical dotted key from raw segments.
func Join(segments ...string) string {
	return strings.Join(segments, ".")
}
