package directive

import (
	"fmt"
	"strings"
)

// ImportCycleError is returned when a source imports itself, directly or
// through other imports.
type ImportCycleError struct {
	Source       string   // identifier that was opened a second time
	Opened       []string // sources already opened by this load, in order
	ImportSource string   // file holding the import that closed the cycle
	Line         int
}

func (e *ImportCycleError) Error() string {
	msg := fmt.Sprintf("a micro file (in this case, %s) cannot be recursively imported", e.Source)
	if e.ImportSource != "" {
		msg += fmt.Sprintf(", file=%s, line=%d", e.ImportSource, e.Line)
	}
	return msg + fmt.Sprintf(" (opened: %s)", strings.Join(e.Opened, ", "))
}

// ImportResolutionError is returned when an import reference cannot be
// turned into a readable file.
type ImportResolutionError struct {
	Ref    string // reference as written after `import`
	Source string // file containing the import, empty for the root
	Line   int
	Err    error
}

func (e *ImportResolutionError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("unable to load %q: %v", e.Ref, e.Err)
	}
	return fmt.Sprintf("unable to import %q, file=%s, line=%d: %v", e.Ref, e.Source, e.Line, e.Err)
}

func (e *ImportResolutionError) Unwrap() error { return e.Err }

// TokenizationError is returned for a line that cannot be split into a
// keyword and its argument text.
type TokenizationError struct {
	Source string
	Line   int
	Text   string
}

func (e *TokenizationError) Error() string {
	return fmt.Sprintf("too few tokens, file=%s, line=%d: %q", e.Source, e.Line, e.Text)
}

// ArgumentError is returned when a directive's arguments do not match its
// parameter list.
type ArgumentError struct {
	Directive string
	Message   string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", strings.ToUpper(e.Directive), e.Message)
}
