// Package restmapper maps request paths to handler targets by regular
// expression, the way a server's routes are consulted at request time.
//
// Patterns are tried in the order they were added and the first pattern that
// matches the start of the path and has a target for the request's verb
// wins. Capture groups in the pattern are returned with the match.
package restmapper

import (
	"fmt"
	"regexp"
	"strings"
)

// Match is the result of a successful lookup.
type Match struct {
	Pattern string
	Target  string
	Groups  []string
}

type mapping struct {
	pattern string
	re      *regexp.Regexp
	verbs   map[string]string
}

// Mapper is an ordered list of pattern mappings.
type Mapper struct {
	mappings []mapping
}

// New creates an empty Mapper.
func New() *Mapper {
	return &Mapper{}
}

// Add appends a mapping from pattern to a verb -> target table. Verbs are
// matched case-insensitively. The pattern is anchored at the start of the path.
func (m *Mapper) Add(pattern string, verbs map[string]string) error {
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return fmt.Errorf("invalid route pattern %q: %w", pattern, err)
	}
	table := make(map[string]string, len(verbs))
	for verb, target := range verbs {
		table[strings.ToLower(verb)] = target
	}
	m.mappings = append(m.mappings, mapping{pattern: pattern, re: re, verbs: table})
	return nil
}

// Match finds the first mapping whose pattern matches path and which has a
// target for method.
func (m *Mapper) Match(method, path string) (Match, bool) {
	verb := strings.ToLower(method)
	for _, mp := range m.mappings {
		groups := mp.re.FindStringSubmatch(path)
		if groups == nil {
			continue
		}
		target, ok := mp.verbs[verb]
		if !ok {
			continue
		}
		return Match{Pattern: mp.pattern, Target: target, Groups: groups[1:]}, true
	}
	return Match{}, false
}

// Patterns returns the added patterns in order.
func (m *Mapper) Patterns() []string {
	out := make([]string, 0, len(m.mappings))
	for _, mp := range m.mappings {
		out = append(out, mp.pattern)
	}
	return out
}

// Len returns the number of mappings.
func (m *Mapper) Len() int {
	return len(m.mappings)
}
