package settings

import (
	"errors"
	"fmt"
	"sync"

	"github.com/specialistvlad/microconf/internal/keypath"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

var (
	// ErrUndefined is returned when reading or writing a key that was never defined.
	ErrUndefined = errors.New("undefined configuration key")
	// ErrDuplicate is returned when a key is defined twice.
	ErrDuplicate = errors.New("duplicate configuration key")
	// ErrInvalidValue is returned when a value is rejected by a key's validator.
	ErrInvalidValue = errors.New("invalid configuration value")
)

// Definition describes one configuration key.
type Definition struct {
	Name      string
	Default   cty.Value
	Validator *Validator
	Env       string
}

// Type returns the cty type values of this key are held as.
func (d *Definition) Type() cty.Type {
	if d.Validator != nil {
		return d.Validator.Type
	}
	return cty.String
}

// Option customizes a Definition.
type Option func(*Definition)

// WithDefault sets the value returned by Get until the key is overridden.
// A string default for a typed key goes through the validator's parser, as
// an override would; other values are converted to the key's type.
func WithDefault(v cty.Value) Option {
	return func(d *Definition) { d.Default = v }
}

// WithValidator attaches a validator; a nil validator means "any string".
func WithValidator(v *Validator) Option {
	return func(d *Definition) { d.Validator = v }
}

// WithEnv binds the key to an environment variable consulted by ApplyEnv.
func WithEnv(name string) Option {
	return func(d *Definition) { d.Env = name }
}

// Store is a flat, ordered set of defined keys and their overrides.
type Store struct {
	mu      sync.RWMutex
	defs    map[string]*Definition
	order   []string
	values  map[string]cty.Value
	origins map[string]string
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		defs:    make(map[string]*Definition),
		values:  make(map[string]cty.Value),
		origins: make(map[string]string),
	}
}

// Define registers a key. Defining the same name twice is an error.
func (s *Store) Define(name string, opts ...Option) error {
	if _, err := keypath.Parse(name); err != nil {
		return fmt.Errorf("define %q: %w", name, err)
	}

	def := &Definition{Name: name}
	for _, opt := range opts {
		opt(def)
	}

	typ := def.Type()
	if def.Default == cty.NilVal || def.Default.IsNull() {
		def.Default = cty.NullVal(typ)
	} else if v := def.Validator; v != nil && v.Type != cty.String && def.Default.Type() == cty.String {
		parsed, err := v.Parse(def.Default.AsString())
		if err != nil {
			return fmt.Errorf("%w: default for %q: %v", ErrInvalidValue, name, err)
		}
		def.Default = parsed
	} else {
		converted, err := convert.Convert(def.Default, typ)
		if err != nil {
			return fmt.Errorf("%w: default for %q: %v", ErrInvalidValue, name, err)
		}
		def.Default = converted
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.defs[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	s.defs[name] = def
	s.order = append(s.order, name)
	return nil
}

// Definition returns a copy of the definition of name.
func (s *Store) Definition(name string) (Definition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	def, ok := s.defs[name]
	if !ok {
		return Definition{}, false
	}
	return *def, true
}

// Defined reports whether name has been defined.
func (s *Store) Defined(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.defs[name]
	return ok
}

// Keys returns every defined key in definition order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

// Set validates raw against the key's validator and stores the result.
// origin is a free-form description of where the value came from.
func (s *Store) Set(name, raw, origin string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	def, ok := s.defs[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUndefined, name)
	}

	val := cty.StringVal(raw)
	if def.Validator != nil {
		parsed, err := def.Validator.Parse(raw)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, name, err)
		}
		val = parsed
	}
	s.values[name] = val
	s.origins[name] = origin
	return nil
}

// SetValue stores an already-typed value. Non-string values are rendered to
// text first so they pass through the same validator as textual overrides.
func (s *Store) SetValue(name string, v cty.Value, origin string) error {
	raw, err := Format(v)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidValue, name, err)
	}
	return s.Set(name, raw, origin)
}

// Get returns the override for name if one was set, else its default. An
// unset key without a default yields a typed null value.
func (s *Store) Get(name string) (cty.Value, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.defs[name]
	if !ok {
		return cty.NilVal, fmt.Errorf("%w: %s", ErrUndefined, name)
	}
	if v, ok := s.values[name]; ok {
		return v, nil
	}
	return def.Default, nil
}

// Lookup is Get for callers that treat "undefined" and "null" alike.
func (s *Store) Lookup(name string) (cty.Value, bool) {
	v, err := s.Get(name)
	if err != nil || v.IsNull() {
		return cty.NilVal, false
	}
	return v, true
}

// Origin reports where the current value of name came from: "default" or
// the origin passed to Set.
func (s *Store) Origin(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if o, ok := s.origins[name]; ok {
		return o
	}
	return "default"
}

// ApplyEnv sets every key bound with WithEnv whose variable is present
// according to lookup. It returns the number of keys overridden.
func (s *Store) ApplyEnv(lookup func(string) (string, bool)) (int, error) {
	s.mu.RLock()
	type binding struct{ key, env string }
	var bindings []binding
	for _, name := range s.order {
		if env := s.defs[name].Env; env != "" {
			bindings = append(bindings, binding{key: name, env: env})
		}
	}
	s.mu.RUnlock()

	applied := 0
	for _, b := range bindings {
		raw, ok := lookup(b.env)
		if !ok {
			continue
		}
		if err := s.Set(b.key, raw, "env:"+b.env); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}
