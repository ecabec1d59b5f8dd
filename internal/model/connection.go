// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file models the outbound side of a micro file: connections, their
// headers and their resources.
//
// Why keep headers and resources as ordered slices?
//
// Keys and names must be unique within a connection, which a map would give
// for free. But the graph must also print and compare deterministically, and
// the declaration order is what a user expects to see in a dump. The lookup
// methods below give map-like access while the slices preserve order.
package model

// Connection is an outbound service definition. Name is unique across a Graph.
type Connection struct {
	Name      string
	URL       string
	IsJSON    bool
	IsDebug   bool
	Timeout   float64
	Handler   *string
	Wrapper   *string
	Headers   []*Header
	Resources []*Resource
	Origin    Origin

	// Settings is filled by the overlay resolver.
	Settings *ConnectionSettings
}

// Compiled defaults of a CONNECTION directive.
const (
	DefaultIsJSON  = true
	DefaultIsDebug = false
	DefaultTimeout = 5.0
)

// NewConnection creates a Connection with the compiled defaults.
func NewConnection(name, url string, origin Origin) *Connection {
	return &Connection{
		Name:      name,
		URL:       url,
		IsJSON:    DefaultIsJSON,
		IsDebug:   DefaultIsDebug,
		Timeout:   DefaultTimeout,
		Headers:   []*Header{},
		Resources: []*Resource{},
		Origin:    origin,
	}
}

// Header returns the header with the given key.
func (c *Connection) Header(key string) (*Header, bool) {
	for _, h := range c.Headers {
		if h.Key == key {
			return h, true
		}
	}
	return nil, false
}

// AddHeader appends h. Callers check for duplicates first.
func (c *Connection) AddHeader(h *Header) {
	c.Headers = append(c.Headers, h)
}

// Resource returns the resource with the given name.
func (c *Connection) Resource(name string) (*Resource, bool) {
	for _, r := range c.Resources {
		if r.Name == name {
			return r, true
		}
	}
	return nil, false
}

// AddResource appends r. Callers check for duplicates first.
func (c *Connection) AddResource(r *Resource) {
	c.Resources = append(c.Resources, r)
}

// Header is a request header sent on every call through a connection. It
// carries a default, a configuration binding, or both.
type Header struct {
	Key     string
	Default *string
	Config  *string
	Origin  Origin
}

// Resource is one endpoint of a connection. Nil attributes fall back to the
// connection's value during overlay resolution.
type Resource struct {
	Name     string
	Path     string
	Method   string
	IsJSON   *bool
	IsDebug  *bool
	Timeout  *float64
	Handler  *string
	Wrapper  *string
	Required []string
	Optional []*OptionalParam
	Origin   Origin

	// Settings is filled by the overlay resolver.
	Settings *ResourceSettings
}

// DefaultResourceMethod is used when a RESOURCE directive names no method.
const DefaultResourceMethod = "GET"

// NewResource creates a Resource with no parameters.
func NewResource(name, path string, origin Origin) *Resource {
	return &Resource{
		Name:     name,
		Path:     path,
		Method:   DefaultResourceMethod,
		Required: []string{},
		Optional: []*OptionalParam{},
		Origin:   origin,
	}
}

// AddRequired appends a required parameter name.
func (r *Resource) AddRequired(name string) {
	r.Required = append(r.Required, name)
}

// OptionalParam returns the optional parameter with the given name.
func (r *Resource) OptionalParam(name string) (*OptionalParam, bool) {
	for _, p := range r.Optional {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// AddOptional appends p.
func (r *Resource) AddOptional(p *OptionalParam) {
	r.Optional = append(r.Optional, p)
}

// OptionalParam is a parameter a resource call may omit.
type OptionalParam struct {
	Name    string
	Default *string
}
