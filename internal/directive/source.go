package directive

import "fmt"

// MemorySource is the identifier given to in-memory sources without a name.
const MemorySource = "<memory>"

// Source is either a file path or an in-memory list of lines.
type Source struct {
	path  string
	name  string
	lines []string
	text  bool
}

// File returns a source read from path. Relative paths are resolved against
// the loader's working directory.
func File(path string) Source {
	return Source{path: path}
}

// Text returns an in-memory source. In-memory sources are never resolved on
// disk, but imports inside them are.
func Text(lines ...string) Source {
	return Source{name: MemorySource, lines: lines, text: true}
}

// NamedText is Text with an explicit identifier used in diagnostics.
func NamedText(name string, lines ...string) Source {
	return Source{name: name, lines: lines, text: true}
}

// IsText reports whether the source is held in memory.
func (s Source) IsText() bool {
	return s.text
}

func (s Source) String() string {
	if s.text {
		return s.name
	}
	return s.path
}

// Line is one directive in the flattened stream. Source and Number always
// point at the physical line the directive came from, even through imports.
type Line struct {
	Source  string
	Number  int
	Keyword string
	Text    string
}

func (l Line) String() string {
	return fmt.Sprintf("%s:%d: %s %s", l.Source, l.Number, l.Keyword, l.Text)
}

// Stream is the result of loading a root source.
type Stream struct {
	Lines []Line
	// Sources lists every source opened, in the order they were opened.
	Sources []string
}
