// Package grammar is the finite-state machine that decides which micro
// directives are legal where.
//
// The machine has five states: init, server, route, connection and resource.
// Each state lists the events (lower-cased directive keywords) it accepts.
// An accepted event either runs its actions in place, or moves the machine to
// another state and runs that state's enter action. An event a state does not
// list is rejected and Handle returns false; the caller turns that into a
// parse error.
//
// The machine knows nothing about servers or connections. It is constructed
// with a table of ActionID -> func() bindings, so it can be exercised with
// recording stubs in tests and with the real builder in package micro.
package grammar
