package micro

import (
	"fmt"

	"github.com/specialistvlad/microconf/internal/keypath"
	"github.com/specialistvlad/microconf/internal/model"
	"github.com/specialistvlad/microconf/internal/settings"
	"github.com/zclconf/go-cty/cty"
)

// ServerKey returns the configuration key of a server field, e.g.
// ServerKey("web", "ssl", "keyfile") is "server.web.ssl.keyfile".
func ServerKey(server string, field ...string) string {
	return keypath.Join(append([]string{"server", server}, field...)...)
}

// ConnectionKey returns the configuration key of a connection field.
func ConnectionKey(connection string, field ...string) string {
	return keypath.Join(append([]string{"connection", connection}, field...)...)
}

// ResourceKey returns the configuration key of a resource field.
func ResourceKey(connection, resource string, field ...string) string {
	return ConnectionKey(connection, append([]string{"resource", resource}, field...)...)
}

// HeaderKey returns the configuration key a header binding registers.
func HeaderKey(connection, binding string) string {
	return ConnectionKey(connection, "header", binding)
}

type keyDef struct {
	name string
	opts []settings.Option
}

func defineAll(store *settings.Store, defs []keyDef) error {
	for _, d := range defs {
		if err := store.Define(d.name, d.opts...); err != nil {
			return fmt.Errorf("register %s: %w", d.name, err)
		}
	}
	return nil
}

// RegisterServerKeys defines the five keys every server owns: port,
// is_active, ssl.is_active, ssl.keyfile and ssl.certfile.
func RegisterServerKeys(store *settings.Store, s *model.Server) error {
	return defineAll(store, []keyDef{
		{ServerKey(s.Name, "port"), []settings.Option{
			settings.WithDefault(cty.NumberIntVal(int64(s.Port))), settings.WithValidator(settings.Int)}},
		{ServerKey(s.Name, "is_active"), []settings.Option{
			settings.WithDefault(cty.True), settings.WithValidator(settings.Bool)}},
		{ServerKey(s.Name, "ssl", "is_active"), []settings.Option{
			settings.WithDefault(cty.False), settings.WithValidator(settings.Bool)}},
		{ServerKey(s.Name, "ssl", "keyfile"), []settings.Option{settings.WithValidator(settings.File)}},
		{ServerKey(s.Name, "ssl", "certfile"), []settings.Option{settings.WithValidator(settings.File)}},
	})
}

// RegisterConnectionKeys defines url, is_active, is_debug and timeout for c.
func RegisterConnectionKeys(store *settings.Store, c *model.Connection) error {
	return defineAll(store, []keyDef{
		{ConnectionKey(c.Name, "url"), []settings.Option{settings.WithDefault(cty.StringVal(c.URL))}},
		{ConnectionKey(c.Name, "is_active"), []settings.Option{
			settings.WithDefault(cty.True), settings.WithValidator(settings.Bool)}},
		{ConnectionKey(c.Name, "is_debug"), []settings.Option{
			settings.WithDefault(cty.BoolVal(c.IsDebug)), settings.WithValidator(settings.Bool)}},
		{ConnectionKey(c.Name, "timeout"), []settings.Option{
			settings.WithDefault(cty.NumberFloatVal(c.Timeout)), settings.WithValidator(settings.Float)}},
	})
}

// RegisterHeaderKey defines the key a header is bound to, defaulting to the
// header's default. Headers without a config binding register nothing.
func RegisterHeaderKey(store *settings.Store, c *model.Connection, h *model.Header) error {
	if h.Config == nil {
		return nil
	}
	def := cty.NullVal(cty.String)
	if h.Default != nil {
		def = cty.StringVal(*h.Default)
	}
	return defineAll(store, []keyDef{
		{HeaderKey(c.Name, *h.Config), []settings.Option{settings.WithDefault(def)}},
	})
}

// RegisterResourceKeys defines is_debug for r, defaulting to the resource's
// own is_debug or unset.
func RegisterResourceKeys(store *settings.Store, c *model.Connection, r *model.Resource) error {
	def := cty.NullVal(cty.Bool)
	if r.IsDebug != nil {
		def = cty.BoolVal(*r.IsDebug)
	}
	return defineAll(store, []keyDef{
		{ResourceKey(c.Name, r.Name, "is_debug"), []settings.Option{
			settings.WithDefault(def), settings.WithValidator(settings.Bool)}},
	})
}
