package overlay

import (
	"fmt"

	"github.com/specialistvlad/microconf/internal/settings"
)

// reader reads typed values out of a store, keeping the first failure so a
// run of reads can be checked once.
type reader struct {
	store *settings.Store
	err   error
	key   string
}

func (r *reader) fail(key string, err error) {
	if r.err == nil {
		r.err, r.key = err, key
	}
}

func (r *reader) String(key, fallback string) string {
	v, ok := r.store.Lookup(key)
	if !ok {
		return fallback
	}
	s, ok := settings.AsString(v)
	if !ok {
		r.fail(key, fmt.Errorf("%s: expected a string", key))
		return fallback
	}
	return s
}

func (r *reader) Bool(key string, fallback bool) bool {
	v, ok := r.store.Lookup(key)
	if !ok {
		return fallback
	}
	b, ok := settings.AsBool(v)
	if !ok {
		r.fail(key, fmt.Errorf("%s: expected a boolean", key))
		return fallback
	}
	return b
}

func (r *reader) Int(key string, fallback int) int {
	v, ok := r.store.Lookup(key)
	if !ok {
		return fallback
	}
	i, ok := settings.AsInt(v)
	if !ok {
		r.fail(key, fmt.Errorf("%s: expected an integer", key))
		return fallback
	}
	return i
}

func (r *reader) Float(key string, fallback float64) float64 {
	v, ok := r.store.Lookup(key)
	if !ok {
		return fallback
	}
	f, ok := settings.AsFloat(v)
	if !ok {
		r.fail(key, fmt.Errorf("%s: expected a number", key))
		return fallback
	}
	return f
}

func deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
