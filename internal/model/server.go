// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file models the inbound side of a micro file: servers, their routes and
// the verb-to-path table of each route.
package model

import "strings"

// Server is a listener definition. Port is unique across a Graph.
type Server struct {
	Name   string
	Port   int
	Routes []*Route
	Origin Origin

	// Settings is filled by the overlay resolver.
	Settings *ServerSettings
}

// NewServer creates a Server with no routes.
func NewServer(name string, port int, origin Origin) *Server {
	return &Server{Name: name, Port: port, Routes: []*Route{}, Origin: origin}
}

// AddRoute appends a route.
func (s *Server) AddRoute(r *Route) {
	s.Routes = append(s.Routes, r)
}

// Route is a URL pattern with a table of HTTP verb -> handler path.
type Route struct {
	Pattern string
	Methods map[string]string
	Origin  Origin
}

// NewRoute creates a Route with an empty verb table.
func NewRoute(pattern string, origin Origin) *Route {
	return &Route{Pattern: pattern, Methods: map[string]string{}, Origin: origin}
}

// SetMethod records m in the verb table. A verb that is already present is
// overwritten; replaced reports whether that happened.
func (r *Route) SetMethod(m Method) (replaced bool) {
	_, replaced = r.Methods[m.Verb]
	r.Methods[m.Verb] = m.Path
	return replaced
}

// Method is a single verb directive. It only exists until it is recorded in
// a Route.
type Method struct {
	Verb string
	Path string
}

// NewMethod lower-cases the verb.
func NewMethod(verb, path string) Method {
	return Method{Verb: strings.ToLower(verb), Path: path}
}
