package settings

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Validator converts a raw textual value into a typed cty.Value, rejecting
// values that do not conform.
type Validator struct {
	Name  string
	Type  cty.Type
	Parse func(raw string) (cty.Value, error)
}

var (
	// Int accepts base-10 integers.
	Int = &Validator{Name: "int", Type: cty.Number, Parse: parseInt}
	// Bool accepts true/false, 1/0, t/f, yes/no and on/off, case-insensitively.
	Bool = &Validator{Name: "bool", Type: cty.Bool, Parse: parseBool}
	// Float accepts any decimal number.
	Float = &Validator{Name: "float", Type: cty.Number, Parse: parseFloat}
	// File accepts the path of an existing regular file.
	File = &Validator{Name: "file", Type: cty.String, Parse: parseFile}
)

// named holds the validators that may be referenced by name from a CONFIG
// directive. Float is reserved for built-in keys.
var named = map[string]*Validator{
	Int.Name:  Int,
	Bool.Name: Bool,
	File.Name: File,
}

// ValidatorByName returns the validator a CONFIG directive may refer to.
func ValidatorByName(name string) (*Validator, bool) {
	v, ok := named[name]
	return v, ok
}

// ValidatorNames returns the names accepted by ValidatorByName in a stable order.
func ValidatorNames() []string {
	return []string{Int.Name, Bool.Name, File.Name}
}

func parseInt(raw string) (cty.Value, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return cty.NilVal, fmt.Errorf("not an integer: %q", raw)
	}
	return cty.NumberIntVal(int64(n)), nil
}

// ParseBool is the boolean parser shared by the Bool validator and the
// micro builder's literal arguments (is_json=, is_debug=).
func ParseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "yes", "y", "on":
		return true, nil
	case "0", "f", "false", "no", "n", "off":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", raw)
}

func parseBool(raw string) (cty.Value, error) {
	b, err := ParseBool(raw)
	if err != nil {
		return cty.NilVal, err
	}
	return cty.BoolVal(b), nil
}

func parseFloat(raw string) (cty.Value, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return cty.NilVal, fmt.Errorf("not a number: %q", raw)
	}
	return cty.NumberFloatVal(f), nil
}

func parseFile(raw string) (cty.Value, error) {
	info, err := os.Stat(raw)
	if err != nil {
		return cty.NilVal, fmt.Errorf("file %q: %w", raw, err)
	}
	if info.IsDir() {
		return cty.NilVal, fmt.Errorf("file %q is a directory", raw)
	}
	return cty.StringVal(raw), nil
}
