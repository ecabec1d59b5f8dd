// internal/keypath/parser.go
package keypath

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentRegex matches a single key segment, e.g. `is_debug` or `X-Api-Key`.
var segmentRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-]+$`)

// isValidSegmentName checks for undesirable but technically valid names.
func isValidSegmentName(name string) bool {
	return name != "-"
}

// Parse creates a new Path by parsing its canonical string representation.
func Parse(rawKey string) (Path, error) {
	if rawKey == "" {
		return Path{}, fmt.Errorf("key cannot be empty")
	}

	var p Path
	for _, segment := range strings.Split(rawKey, ".") {
		if segment == "" {
			return Path{}, fmt.Errorf("key %q contains an empty segment", rawKey)
		}
		if !segmentRegex.MatchString(segment) {
			return Path{}, fmt.Errorf("key %q has an invalid segment: %q", rawKey, segment)
		}
		if !isValidSegmentName(segment) {
			return Path{}, fmt.Errorf("key %q has an invalid segment name: %q", rawKey, segment)
		}
		p.Segments = append(p.Segments, segment)
	}

	return p, nil
}

// MustParse is like Parse but panics on malformed input. It is meant for
// keys built from constants.
func MustParse(rawKey string) Path {
	p, err := Parse(rawKey)
	if err != nil {
		panic(err)
	}
	return p
}
