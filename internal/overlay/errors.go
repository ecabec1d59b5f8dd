package overlay

import (
	"fmt"

	"github.com/specialistvlad/microconf/internal/model"
)

// ConfigResolutionError is returned when an entity's settings cannot be
// turned into a usable configuration.
type ConfigResolutionError struct {
	Entity string // "connection" or "server"
	Name   string
	Op     string // what failed: "parse", "resolve", "read", "route"
	Value  string
	Origin model.Origin
	Err    error
}

func (e *ConfigResolutionError) Error() string {
	return fmt.Sprintf("unable to %s '%s' in %s '%s' (%s): %v",
		e.Op, e.Value, e.Entity, e.Name, e.Origin, e.Err)
}

func (e *ConfigResolutionError) Unwrap() error { return e.Err }
