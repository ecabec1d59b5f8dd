// internal/keypath/types.go
package keypath

// Path is the structured representation of a configuration key.
// It is modeled as an ordered list of non-empty segments.
type Path struct {
	Segments []string
}

// New builds a Path from already-split segments without validating them.
func New(segments ...string) Path {
	return Path{Segments: append([]string(nil), segments...)}
}

// Len returns the number of segments in the path.
func (p Path) Len() int {
	return len(p.Segments)
}

// Child returns a new Path with the given segments appended.
func (p Path) Child(segments ...string) Path {
	out := make([]string, 0, len(p.Segments)+len(segments))
	out = append(out, p.Segments...)
	out = append(out, segments...)
	return Path{Segments: out}
}
