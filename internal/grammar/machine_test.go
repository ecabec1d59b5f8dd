package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder binds every action to a function that appends its name.
func recorder() (Actions, *[]string) {
	var calls []string
	actions := Actions{}
	for id := range actionNames {
		id := id
		actions[id] = func() { calls = append(calls, id.String()) }
	}
	return actions, &calls
}

func TestMachine_ServerRouteMethods(t *testing.T) {
	actions, calls := recorder()
	m := New(actions)
	require.Equal(t, Init, m.State())

	for _, ev := range []string{"server", "route", "get", "post", "route", "delete"} {
		require.True(t, m.Handle(ev), ev)
	}
	assert.Equal(t, Route, m.State())
	assert.Equal(t, []string{
		"add_server", "add_route", "add_method", "add_method", "add_route", "add_method",
	}, *calls)
}

func TestMachine_ConnectionResource(t *testing.T) {
	actions, calls := recorder()
	m := New(actions)

	for _, ev := range []string{"connection", "header", "resource", "required", "optional", "resource", "header", "connection"} {
		require.True(t, m.Handle(ev), ev)
	}
	assert.Equal(t, Connection, m.State())
	assert.Equal(t, []string{
		"add_connection", "add_header", "add_resource", "add_required", "add_optional",
		"add_resource", "add_header", "add_connection",
	}, *calls)
}

func TestMachine_Rejections(t *testing.T) {
	testCases := []struct {
		name     string
		prefix   []string
		rejected string
	}{
		{name: "route before server", rejected: "route"},
		{name: "verb before route", prefix: []string{"server"}, rejected: "get"},
		{name: "verb at init", rejected: "get"},
		{name: "header outside connection", prefix: []string{"server"}, rejected: "header"},
		{name: "resource at init", rejected: "resource"},
		{name: "required without resource", prefix: []string{"connection"}, rejected: "required"},
		{name: "optional without resource", prefix: []string{"connection"}, rejected: "optional"},
		{name: "route inside connection", prefix: []string{"connection"}, rejected: "route"},
		{name: "verb after leaving route", prefix: []string{"server", "route", "connection"}, rejected: "get"},
		{name: "unknown keyword", prefix: []string{"server"}, rejected: "listen"},
		{name: "upper case is not normalized here", rejected: "SERVER"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actions, calls := recorder()
			m := New(actions)
			for _, ev := range tc.prefix {
				require.True(t, m.Handle(ev), ev)
			}
			before := m.State()
			callsBefore := len(*calls)

			assert.False(t, m.Handle(tc.rejected))
			assert.Equal(t, before, m.State(), "rejection must not change state")
			assert.Len(t, *calls, callsBefore, "rejection must not run actions")
		})
	}
}

func TestMachine_ConfigLegalEverywhere(t *testing.T) {
	paths := [][]string{
		{},
		{"server"},
		{"server", "route"},
		{"connection"},
		{"connection", "resource"},
	}
	for _, prefix := range paths {
		actions, _ := recorder()
		m := New(actions)
		for _, ev := range prefix {
			require.True(t, m.Handle(ev))
		}
		state := m.State()
		assert.True(t, m.Handle("config"), "config in %s", state)
		assert.Equal(t, state, m.State(), "config must not change state")
		assert.Contains(t, m.Expected(), "config")
	}
}

func TestMachine_Reset(t *testing.T) {
	actions, _ := recorder()
	m := New(actions)
	require.True(t, m.Handle("server"))
	m.Reset()
	assert.Equal(t, Init, m.State())
	assert.Equal(t, []string{"config", "connection", "server"}, m.Expected())
}

func TestNew_PanicsOnMissingBinding(t *testing.T) {
	actions, _ := recorder()
	delete(actions, AddOptional)
	assert.PanicsWithValue(t, "grammar: no binding for action add_optional", func() { New(actions) })
}

func TestRules_EveryVerbIsARouteEvent(t *testing.T) {
	events := map[string]bool{}
	for _, r := range Rules() {
		if r.State == Route {
			events[r.Event] = true
		}
	}
	for _, v := range Verbs {
		assert.True(t, events[v], v)
	}
}
