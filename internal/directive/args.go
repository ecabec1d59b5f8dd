package directive

import (
	"fmt"
	"slices"
	"strings"
)

// Args is the tokenized argument text of one directive.
type Args struct {
	Positional []string
	Keyword    map[string]string
}

// Tokenize splits text on whitespace. A token containing '=' is a keyword
// argument split at its first '='; every other token is positional. There is
// no quoting, so values cannot contain whitespace.
func Tokenize(text string) Args {
	args := Args{Keyword: map[string]string{}}
	for _, tok := range strings.Fields(text) {
		if name, value, ok := strings.Cut(tok, "="); ok {
			args.Keyword[name] = value
			continue
		}
		args.Positional = append(args.Positional, tok)
	}
	return args
}

// Param is one named parameter of a directive.
type Param struct {
	Name     string
	Required bool
}

// Required declares a parameter that must be bound.
func Required(name string) Param { return Param{Name: name, Required: true} }

// Optional declares a parameter that may be left unbound.
func Optional(name string) Param { return Param{Name: name} }

// Bound holds the values bound to a parameter list. Unbound optional
// parameters are absent.
type Bound map[string]string

// Get returns the value bound to name.
func (b Bound) Get(name string) (string, bool) {
	v, ok := b[name]
	return v, ok
}

// Ptr returns the bound value as a pointer, nil when unbound.
func (b Bound) Ptr(name string) *string {
	if v, ok := b[name]; ok {
		return &v
	}
	return nil
}

// Bind assigns positional arguments to params in order, then keyword
// arguments by name. It rejects surplus positionals, unknown keywords, a
// parameter bound twice and an unbound required parameter.
func (a Args) Bind(directive string, params ...Param) (Bound, error) {
	if len(a.Positional) > len(params) {
		return nil, &ArgumentError{
			Directive: directive,
			Message:   fmt.Sprintf("takes at most %d positional arguments (%d given)", len(params), len(a.Positional)),
		}
	}

	bound := make(Bound, len(params))
	known := make(map[string]bool, len(params))
	for i, p := range params {
		known[p.Name] = true
		if i < len(a.Positional) {
			bound[p.Name] = a.Positional[i]
		}
	}

	names := make([]string, 0, len(a.Keyword))
	for name := range a.Keyword {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		value := a.Keyword[name]
		if !known[name] {
			return nil, &ArgumentError{Directive: directive, Message: fmt.Sprintf("unexpected keyword argument %q", name)}
		}
		if _, dup := bound[name]; dup {
			return nil, &ArgumentError{Directive: directive, Message: fmt.Sprintf("got multiple values for argument %q", name)}
		}
		bound[name] = value
	}

	for _, p := range params {
		if _, ok := bound[p.Name]; p.Required && !ok {
			return nil, &ArgumentError{Directive: directive, Message: fmt.Sprintf("missing required argument %q", p.Name)}
		}
	}
	return bound, nil
}
