// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_Lookups(t *testing.T) {
	g := NewGraph()
	web := NewServer("web", 8080, Origin{Source: "a.micro", Line: 1})
	admin := NewServer("admin", 9090, Origin{Source: "a.micro", Line: 5})
	g.AddServer(web)
	g.AddServer(admin)
	g.AddConnection(NewConnection("users", "http://users.local", Origin{Source: "b.micro", Line: 2}))

	s, ok := g.ServerByPort(9090)
	require.True(t, ok)
	assert.Same(t, admin, s)

	s, ok = g.Server("web")
	require.True(t, ok)
	assert.Same(t, web, s)

	_, ok = g.ServerByPort(1)
	assert.False(t, ok)

	c, ok := g.Connection("users")
	require.True(t, ok)
	assert.Equal(t, "http://users.local", c.URL)
	assert.Equal(t, DefaultTimeout, c.Timeout)
	assert.True(t, c.IsJSON)

	_, ok = g.Connection("missing")
	assert.False(t, ok)
}

func TestRoute_SetMethodOverwrites(t *testing.T) {
	r := NewRoute(`/users/(\d+)`, Origin{})

	assert.False(t, r.SetMethod(NewMethod("GET", "users.get")))
	assert.True(t, r.SetMethod(NewMethod("get", "users.get_v2")))
	assert.False(t, r.SetMethod(NewMethod("Delete", "users.delete")))

	assert.Equal(t, map[string]string{"get": "users.get_v2", "delete": "users.delete"}, r.Methods)
}

func TestConnection_HeadersAndResources(t *testing.T) {
	c := NewConnection("svc", "http://svc", Origin{})
	def := "json"
	c.AddHeader(&Header{Key: "Accept", Default: &def})
	res := NewResource("ping", "/ping", Origin{})
	res.AddRequired("id")
	res.AddOptional(&OptionalParam{Name: "limit"})
	c.AddResource(res)

	h, ok := c.Header("Accept")
	require.True(t, ok)
	assert.Equal(t, "json", *h.Default)
	_, ok = c.Header("accept")
	assert.False(t, ok, "header keys are case-sensitive")

	r, ok := c.Resource("ping")
	require.True(t, ok)
	assert.Equal(t, DefaultResourceMethod, r.Method)
	assert.Equal(t, []string{"id"}, r.Required)
	_, ok = r.OptionalParam("limit")
	assert.True(t, ok)
}

func TestOrigin_String(t *testing.T) {
	assert.Equal(t, "a.micro:3", Origin{Source: "a.micro", Line: 3}.String())
	assert.Equal(t, "unknown", Origin{}.String())
}
