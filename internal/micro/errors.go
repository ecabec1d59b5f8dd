package micro

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/microconf/internal/grammar"
	"github.com/specialistvlad/microconf/internal/settings"
)

// UnknownDirectiveError is returned when a directive is not legal in the
// grammar state it appears in, including keywords the grammar does not know.
type UnknownDirectiveError struct {
	Directive string
	Source    string
	Line      int
	State     grammar.State
	Expected  []string
}

func (e *UnknownDirectiveError) Error() string {
	return fmt.Sprintf("Unexpected directive '%s', file=%s, line=%d (in %s, expected one of: %s)",
		e.Directive, e.Source, e.Line, e.State, strings.Join(e.Expected, ", "))
}

// DuplicateNameError is returned when an entity reuses a name, key or port
// that must be unique.
type DuplicateNameError struct {
	Kind string // e.g. "SERVER port", "CONNECTION name"
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate %s: %s", e.Kind, e.Name)
}

// MissingBindingError is returned for a HEADER with neither a default nor a
// config binding.
type MissingBindingError struct {
	Header string
}

func (e *MissingBindingError) Error() string {
	return fmt.Sprintf("header must have a default or config setting: %s", e.Header)
}

// InvalidValidatorNameError is returned when a CONFIG directive names a
// validator that does not exist.
type InvalidValidatorNameError struct {
	Name string
}

func (e *InvalidValidatorNameError) Error() string {
	names := settings.ValidatorNames()
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	return fmt.Sprintf("validate must be one of %s (got %q)", strings.Join(quoted, ", "), e.Name)
}

// LineError attributes a builder error to the directive that triggered it.
type LineError struct {
	Source string
	Line   int
	Err    error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%v, file=%s, line=%d", e.Err, e.Source, e.Line)
}

func (e *LineError) Unwrap() error { return e.Err }
