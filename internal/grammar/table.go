package grammar

// State is a node of the grammar machine.
type State string

const (
	Init       State = "init"
	Server     State = "server"
	Route      State = "route"
	Connection State = "connection"
	Resource   State = "resource"
)

// ActionID names a builder action the machine may invoke.
type ActionID int

const (
	AddConfig ActionID = iota
	AddConnection
	AddHeader
	AddMethod
	AddOptional
	AddRequired
	AddResource
	AddRoute
	AddServer
)

var actionNames = map[ActionID]string{
	AddConfig:     "add_config",
	AddConnection: "add_connection",
	AddHeader:     "add_header",
	AddMethod:     "add_method",
	AddOptional:   "add_optional",
	AddRequired:   "add_required",
	AddResource:   "add_resource",
	AddRoute:      "add_route",
	AddServer:     "add_server",
}

func (a ActionID) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Verbs are the HTTP-verb directives accepted inside a route.
var Verbs = []string{"get", "put", "post", "delete", "patch"}

// Rule is one row of the transition table. An empty Next keeps the current state.
type Rule struct {
	State   State
	Event   string
	Actions []ActionID
	Next    State
}

// enterActions run when the machine moves into a state.
var enterActions = map[State]ActionID{
	Server:     AddServer,
	Route:      AddRoute,
	Connection: AddConnection,
	Resource:   AddResource,
}

// rules is the complete grammar. CONFIG is legal everywhere; SERVER and
// CONNECTION always open a new scope; a state's own keyword re-runs the
// state's add action in place.
var rules = []Rule{
	{State: Init, Event: "config", Actions: []ActionID{AddConfig}},
	{State: Init, Event: "server", Next: Server},
	{State: Init, Event: "connection", Next: Connection},

	{State: Server, Event: "config", Actions: []ActionID{AddConfig}},
	{State: Server, Event: "server", Actions: []ActionID{AddServer}},
	{State: Server, Event: "route", Next: Route},
	{State: Server, Event: "connection", Next: Connection},

	{State: Route, Event: "config", Actions: []ActionID{AddConfig}},
	{State: Route, Event: "route", Actions: []ActionID{AddRoute}},
	{State: Route, Event: "get", Actions: []ActionID{AddMethod}},
	{State: Route, Event: "put", Actions: []ActionID{AddMethod}},
	{State: Route, Event: "post", Actions: []ActionID{AddMethod}},
	{State: Route, Event: "delete", Actions: []ActionID{AddMethod}},
	{State: Route, Event: "patch", Actions: []ActionID{AddMethod}},
	{State: Route, Event: "server", Next: Server},
	{State: Route, Event: "connection", Next: Connection},

	{State: Connection, Event: "config", Actions: []ActionID{AddConfig}},
	{State: Connection, Event: "connection", Actions: []ActionID{AddConnection}},
	{State: Connection, Event: "header", Actions: []ActionID{AddHeader}},
	{State: Connection, Event: "resource", Next: Resource},
	{State: Connection, Event: "server", Next: Server},

	{State: Resource, Event: "config", Actions: []ActionID{AddConfig}},
	{State: Resource, Event: "resource", Actions: []ActionID{AddResource}},
	{State: Resource, Event: "header", Actions: []ActionID{AddHeader}},
	{State: Resource, Event: "required", Actions: []ActionID{AddRequired}},
	{State: Resource, Event: "optional", Actions: []ActionID{AddOptional}},
	{State: Resource, Event: "connection", Next: Connection},
	{State: Resource, Event: "server", Next: Server},
}

// Rules returns a copy of the transition table.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}
