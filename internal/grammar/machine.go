package grammar

import (
	"fmt"
	"sort"
)

// Actions binds every ActionID used by the table to a function.
type Actions map[ActionID]func()

type transition struct {
	actions []func()
	next    State
}

type node struct {
	enter  func()
	events map[string]transition
}

// Machine is a grammar instance bound to one set of actions. It is not safe
// for concurrent use.
type Machine struct {
	nodes   map[State]*node
	current State
}

// New builds a machine in the Init state. It panics if the table refers to
// an action that has no binding, since that is a wiring mistake rather than
// bad input.
func New(actions Actions) *Machine {
	bind := func(id ActionID) func() {
		fn, ok := actions[id]
		if !ok || fn == nil {
			panic(fmt.Sprintf("grammar: no binding for action %s", id))
		}
		return fn
	}

	m := &Machine{nodes: make(map[State]*node), current: Init}
	for _, s := range []State{Init, Server, Route, Connection, Resource} {
		n := &node{events: make(map[string]transition)}
		if id, ok := enterActions[s]; ok {
			n.enter = bind(id)
		}
		m.nodes[s] = n
	}
	for _, r := range rules {
		t := transition{next: r.Next}
		for _, id := range r.Actions {
			t.actions = append(t.actions, bind(id))
		}
		m.nodes[r.State].events[r.Event] = t
	}
	return m
}

// Handle feeds one event to the machine. It returns false, leaving the state
// unchanged, when the event is not legal in the current state.
func (m *Machine) Handle(event string) bool {
	t, ok := m.nodes[m.current].events[event]
	if !ok {
		return false
	}
	for _, fn := range t.actions {
		fn()
	}
	if t.next != "" {
		m.current = t.next
		if enter := m.nodes[t.next].enter; enter != nil {
			enter()
		}
	}
	return true
}

// State returns the current state.
func (m *Machine) State() State {
	return m.current
}

// Reset returns the machine to Init without running any action.
func (m *Machine) Reset() {
	m.current = Init
}

// Expected lists the events legal in the current state, sorted.
func (m *Machine) Expected() []string {
	events := make([]string, 0, len(m.nodes[m.current].events))
	for e := range m.nodes[m.current].events {
		events = append(events, e)
	}
	sort.Strings(events)
	return events
}
