// Package overlay computes the effective settings of a compiled graph.
//
// Every attribute is resolved with the same cascade: a value set in the
// settings store wins, then the value compiled from the micro file, then
// (for resources) the owning connection's effective value. Active connections
// additionally have their URL parsed and their hostname resolved. Inactive
// servers are left unmaterialized.
package overlay

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/specialistvlad/microconf/internal/ctxlog"
	"github.com/specialistvlad/microconf/internal/micro"
	"github.com/specialistvlad/microconf/internal/model"
	"github.com/specialistvlad/microconf/internal/restmapper"
	"github.com/specialistvlad/microconf/internal/settings"
)

// HostResolver looks up the addresses of a hostname. *net.Resolver
// satisfies it.
type HostResolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// Resolver attaches effective settings to every entity of a graph.
type Resolver struct {
	hosts HostResolver
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithHostResolver replaces the DNS resolver.
func WithHostResolver(h HostResolver) Option {
	return func(r *Resolver) { r.hosts = h }
}

// New creates a Resolver using net.DefaultResolver unless told otherwise.
func New(opts ...Option) *Resolver {
	r := &Resolver{hosts: net.DefaultResolver}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Resolve resolves every connection, its resources and then every server.
// The first failure aborts the pass.
func (r *Resolver) Resolve(ctx context.Context, g *model.Graph, store *settings.Store) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Overlay resolution started.", "servers", len(g.Servers), "connections", len(g.Connections))

	for _, c := range g.Connections {
		if err := r.resolveConnection(ctx, c, store); err != nil {
			return err
		}
		for _, res := range c.Resources {
			if err := resolveResource(c, res, store); err != nil {
				return err
			}
		}
	}
	for _, s := range g.Servers {
		if err := resolveServer(ctx, s, store); err != nil {
			return err
		}
	}

	logger.Debug("Overlay resolution complete.")
	return nil
}

func (r *Resolver) resolveConnection(ctx context.Context, c *model.Connection, store *settings.Store) error {
	logger := ctxlog.FromContext(ctx)
	rd := &reader{store: store}
	key := func(field string) string { return micro.ConnectionKey(c.Name, field) }

	eff := &model.ConnectionSettings{
		URL:     rd.String(key("url"), c.URL),
		Active:  rd.Bool(key("is_active"), true),
		IsJSON:  rd.Bool(key("is_json"), c.IsJSON),
		IsDebug: rd.Bool(key("is_debug"), c.IsDebug),
		Timeout: rd.Float(key("timeout"), c.Timeout),
		Handler: rd.String(key("handler"), deref(c.Handler, "")),
		Wrapper: rd.String(key("wrapper"), deref(c.Wrapper, "")),
		Headers: map[string]string{},
	}
	for _, h := range c.Headers {
		value, ok := "", false
		if h.Default != nil {
			value, ok = *h.Default, true
		}
		if h.Config != nil {
			if v, set := store.Lookup(micro.HeaderKey(c.Name, *h.Config)); set {
				value, ok = settings.AsString(v)
			}
		}
		if ok {
			eff.Headers[h.Key] = value
		}
	}
	if rd.err != nil {
		return &ConfigResolutionError{Entity: "connection", Name: c.Name, Op: "read", Value: rd.key, Origin: c.Origin, Err: rd.err}
	}
	c.Settings = eff

	if !eff.Active {
		logger.Info("Connection is not active, skipping network setup.", "connection", c.Name)
		return nil
	}

	u, err := url.Parse(eff.URL)
	if err == nil && u.Hostname() == "" {
		err = errors.New("missing host")
	}
	if err != nil {
		return &ConfigResolutionError{Entity: "connection", Name: c.Name, Op: "parse", Value: eff.URL, Origin: c.Origin, Err: err}
	}

	addrs, err := r.hosts.LookupHost(ctx, u.Hostname())
	if err == nil && len(addrs) == 0 {
		err = errors.New("no addresses")
	}
	if err != nil {
		return &ConfigResolutionError{Entity: "connection", Name: c.Name, Op: "resolve", Value: u.Hostname(), Origin: c.Origin, Err: err}
	}

	eff.Host = addrs[0]
	eff.Hostname = u.Hostname()
	eff.Path = u.Path
	eff.IsSSL = u.Scheme == "https"
	eff.Port = defaultPort(u.Scheme)
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return &ConfigResolutionError{Entity: "connection", Name: c.Name, Op: "parse", Value: eff.URL, Origin: c.Origin, Err: err}
		}
		eff.Port = port
	}

	logger.Debug("Connection resolved.", "connection", c.Name, "host", eff.Host, "port", eff.Port, "ssl", eff.IsSSL)
	return nil
}

func defaultPort(scheme string) int {
	switch scheme {
	case "http":
		return 80
	case "https":
		return 443
	}
	return 0
}

func resolveResource(c *model.Connection, res *model.Resource, store *settings.Store) error {
	parent := c.Settings
	rd := &reader{store: store}
	key := func(field string) string { return micro.ResourceKey(c.Name, res.Name, field) }

	res.Settings = &model.ResourceSettings{
		IsJSON:  rd.Bool(key("is_json"), deref(res.IsJSON, parent.IsJSON)),
		IsDebug: rd.Bool(key("is_debug"), deref(res.IsDebug, parent.IsDebug)),
		Timeout: rd.Float(key("timeout"), deref(res.Timeout, parent.Timeout)),
		Handler: rd.String(key("handler"), deref(res.Handler, parent.Handler)),
		Wrapper: rd.String(key("wrapper"), deref(res.Wrapper, parent.Wrapper)),
	}
	if rd.err != nil {
		return &ConfigResolutionError{
			Entity: "connection", Name: c.Name, Op: "read", Value: rd.key, Origin: res.Origin, Err: rd.err,
		}
	}
	return nil
}

func resolveServer(ctx context.Context, s *model.Server, store *settings.Store) error {
	logger := ctxlog.FromContext(ctx)
	rd := &reader{store: store}
	key := func(field ...string) string { return micro.ServerKey(s.Name, field...) }

	eff := &model.ServerSettings{
		Active: rd.Bool(key("is_active"), true),
		Port:   rd.Int(key("port"), s.Port),
		SSL: model.SSLSettings{
			Active:   rd.Bool(key("ssl", "is_active"), false),
			KeyFile:  rd.String(key("ssl", "keyfile"), ""),
			CertFile: rd.String(key("ssl", "certfile"), ""),
		},
	}
	if rd.err != nil {
		return &ConfigResolutionError{Entity: "server", Name: s.Name, Op: "read", Value: rd.key, Origin: s.Origin, Err: rd.err}
	}
	s.Settings = eff

	if !eff.Active {
		logger.Warn("Server is not active and will not be materialized.", "server", s.Name)
		return nil
	}

	mapper := restmapper.New()
	for _, route := range s.Routes {
		if err := mapper.Add(route.Pattern, route.Methods); err != nil {
			return &ConfigResolutionError{Entity: "server", Name: s.Name, Op: "route", Value: route.Pattern, Origin: route.Origin, Err: err}
		}
	}
	eff.Mapper = mapper

	logger.Warn("Server not started.", "server", s.Name, "port", eff.Port, "ssl", eff.SSL.Active, "routes", mapper.Len())
	return nil
}

// Summary renders the effective settings of a resolved graph, one entity per
// line. Entities that were not resolved are skipped.
func Summary(g *model.Graph) []string {
	var out []string
	for _, c := range g.Connections {
		if c.Settings == nil {
			continue
		}
		cs := c.Settings
		if !cs.Active {
			out = append(out, fmt.Sprintf("connection %s inactive", c.Name))
			continue
		}
		out = append(out, fmt.Sprintf("connection %s %s -> %s:%d ssl=%t timeout=%g",
			c.Name, cs.URL, cs.Host, cs.Port, cs.IsSSL, cs.Timeout))
	}
	for _, s := range g.Servers {
		if s.Settings == nil {
			continue
		}
		if !s.Settings.Active {
			out = append(out, fmt.Sprintf("server %s inactive", s.Name))
			continue
		}
		out = append(out, fmt.Sprintf("server %s port=%d ssl=%t routes=%d",
			s.Name, s.Settings.Port, s.Settings.SSL.Active, s.Settings.Mapper.Len()))
	}
	return out
}
