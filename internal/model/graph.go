// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Graph structure, which is the root container for all
// entities compiled from a micro file and its imports.
//
// Why have a Graph?
//
// A micro file is split across imported files, yet servers and connections are
// unique across the whole import closure. The Graph is the single place that
// sees every entity, so uniqueness can be checked against it and every later
// stage (overlay, reporting, watch-mode diffing) can walk it in creation order.
package model

// Graph holds every compiled Server and Connection in creation order.
type Graph struct {
	Servers     []*Server
	Connections []*Connection
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		Servers:     []*Server{},
		Connections: []*Connection{},
	}
}

// AddServer appends s. Callers check for a duplicate port first.
func (g *Graph) AddServer(s *Server) {
	g.Servers = append(g.Servers, s)
}

// AddConnection appends c. Callers check for a duplicate name first.
func (g *Graph) AddConnection(c *Connection) {
	g.Connections = append(g.Connections, c)
}

// ServerByPort returns the server listening on port.
func (g *Graph) ServerByPort(port int) (*Server, bool) {
	for _, s := range g.Servers {
		if s.Port == port {
			return s, true
		}
	}
	return nil, false
}

// Server returns the first server with the given name.
func (g *Graph) Server(name string) (*Server, bool) {
	for _, s := range g.Servers {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// Connection returns the connection with the given name.
func (g *Graph) Connection(name string) (*Connection, bool) {
	for _, c := range g.Connections {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}
