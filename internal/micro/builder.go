package micro

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/specialistvlad/microconf/internal/ctxlog"
	"github.com/specialistvlad/microconf/internal/directive"
	"github.com/specialistvlad/microconf/internal/grammar"
	"github.com/specialistvlad/microconf/internal/model"
	"github.com/specialistvlad/microconf/internal/settings"
	"github.com/zclconf/go-cty/cty"
)

// cursor holds the entities whose scope is open. The grammar guarantees that
// the field an action needs is set before the action runs.
type cursor struct {
	server     *model.Server
	route      *model.Route
	connection *model.Connection
	resource   *model.Resource
}

// builder turns accepted directives into entities. It is driven by a single
// grammar.Machine and is not reentrant.
type builder struct {
	ctx   context.Context
	graph *model.Graph
	store *settings.Store
	cur   cursor

	line  directive.Line
	event string
	args  directive.Args

	// err is set by an action and checked by the dispatcher after every
	// accepted directive.
	err error
}

func newBuilder(ctx context.Context, store *settings.Store) *builder {
	return &builder{ctx: ctx, graph: model.NewGraph(), store: store}
}

func (b *builder) actions() grammar.Actions {
	return grammar.Actions{
		grammar.AddConfig:     b.addConfig,
		grammar.AddConnection: b.addConnection,
		grammar.AddHeader:     b.addHeader,
		grammar.AddMethod:     b.addMethod,
		grammar.AddOptional:   b.addOptional,
		grammar.AddRequired:   b.addRequired,
		grammar.AddResource:   b.addResource,
		grammar.AddRoute:      b.addRoute,
		grammar.AddServer:     b.addServer,
	}
}

func (b *builder) origin() model.Origin {
	return model.Origin{Source: b.line.Source, Line: b.line.Number}
}

func (b *builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *builder) bind(params ...directive.Param) (directive.Bound, bool) {
	bound, err := b.args.Bind(b.event, params...)
	if err != nil {
		b.fail(err)
		return nil, false
	}
	return bound, true
}

func (b *builder) argError(format string, a ...any) {
	b.fail(&directive.ArgumentError{Directive: b.event, Message: fmt.Sprintf(format, a...)})
}

func (b *builder) parseBool(bound directive.Bound, name string) (*bool, bool) {
	raw, ok := bound.Get(name)
	if !ok {
		return nil, true
	}
	v, err := settings.ParseBool(raw)
	if err != nil {
		b.argError("%s: %v", name, err)
		return nil, false
	}
	return &v, true
}

func (b *builder) parseFloat(bound directive.Bound, name string) (*float64, bool) {
	raw, ok := bound.Get(name)
	if !ok {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		b.argError("%s: not a number: %q", name, raw)
		return nil, false
	}
	return &v, true
}

func (b *builder) addConfig() {
	bound, ok := b.bind(
		directive.Required("name"),
		directive.Optional("default"),
		directive.Optional("validate"),
		directive.Optional("env"),
	)
	if !ok {
		return
	}

	var opts []settings.Option
	if name, ok := bound.Get("validate"); ok {
		v, known := settings.ValidatorByName(name)
		if !known {
			b.fail(&InvalidValidatorNameError{Name: name})
			return
		}
		opts = append(opts, settings.WithValidator(v))
	}
	if def, ok := bound.Get("default"); ok {
		opts = append(opts, settings.WithDefault(cty.StringVal(def)))
	}
	if env, ok := bound.Get("env"); ok {
		opts = append(opts, settings.WithEnv(env))
	}

	if err := b.store.Define(bound["name"], opts...); err != nil {
		b.fail(err)
	}
}

func (b *builder) addServer() {
	bound, ok := b.bind(directive.Required("name"), directive.Required("port"))
	if !ok {
		return
	}
	port, err := strconv.Atoi(bound["port"])
	if err != nil {
		b.argError("port must be an integer: %q", bound["port"])
		return
	}
	if port < 1 || port > 65535 {
		b.argError("port must be between 1 and 65535: %d", port)
		return
	}
	if _, dup := b.graph.Server(bound["name"]); dup {
		b.fail(&DuplicateNameError{Kind: "SERVER name", Name: bound["name"]})
		return
	}
	if _, dup := b.graph.ServerByPort(port); dup {
		b.fail(&DuplicateNameError{Kind: "SERVER port", Name: strconv.Itoa(port)})
		return
	}

	server := model.NewServer(bound["name"], port, b.origin())
	if err := RegisterServerKeys(b.store, server); err != nil {
		b.fail(err)
		return
	}
	b.graph.AddServer(server)
	b.cur.server = server
	b.cur.route = nil
	ctxlog.FromContext(b.ctx).Debug("Server added.", "name", server.Name, "port", port, "origin", server.Origin)
}

func (b *builder) addRoute() {
	bound, ok := b.bind(directive.Required("pattern"))
	if !ok {
		return
	}
	route := model.NewRoute(bound["pattern"], b.origin())
	b.cur.server.AddRoute(route)
	b.cur.route = route
}

func (b *builder) addMethod() {
	bound, ok := b.bind(directive.Required("path"))
	if !ok {
		return
	}
	method := model.NewMethod(b.event, bound["path"])
	if replaced := b.cur.route.SetMethod(method); replaced {
		ctxlog.FromContext(b.ctx).Warn("Verb redefined on route, previous path replaced.",
			"verb", method.Verb, "pattern", b.cur.route.Pattern, "origin", b.origin())
	}
}

func (b *builder) addConnection() {
	bound, ok := b.bind(
		directive.Required("name"),
		directive.Required("url"),
		directive.Optional("is_json"),
		directive.Optional("is_debug"),
		directive.Optional("timeout"),
		directive.Optional("handler"),
		directive.Optional("wrapper"),
	)
	if !ok {
		return
	}

	conn := model.NewConnection(bound["name"], bound["url"], b.origin())
	isJSON, ok := b.parseBool(bound, "is_json")
	if !ok {
		return
	}
	isDebug, ok := b.parseBool(bound, "is_debug")
	if !ok {
		return
	}
	timeout, ok := b.parseFloat(bound, "timeout")
	if !ok {
		return
	}
	if isJSON != nil {
		conn.IsJSON = *isJSON
	}
	if isDebug != nil {
		conn.IsDebug = *isDebug
	}
	if timeout != nil {
		conn.Timeout = *timeout
	}
	conn.Handler = bound.Ptr("handler")
	conn.Wrapper = bound.Ptr("wrapper")

	if _, dup := b.graph.Connection(conn.Name); dup {
		b.fail(&DuplicateNameError{Kind: "CONNECTION name", Name: conn.Name})
		return
	}
	if err := RegisterConnectionKeys(b.store, conn); err != nil {
		b.fail(err)
		return
	}
	b.graph.AddConnection(conn)
	b.cur.connection = conn
	b.cur.resource = nil
	ctxlog.FromContext(b.ctx).Debug("Connection added.", "name", conn.Name, "url", conn.URL, "origin", conn.Origin)
}

func (b *builder) addHeader() {
	bound, ok := b.bind(directive.Required("key"), directive.Optional("default"), directive.Optional("config"))
	if !ok {
		return
	}
	header := &model.Header{
		Key:     bound["key"],
		Default: bound.Ptr("default"),
		Config:  bound.Ptr("config"),
		Origin:  b.origin(),
	}

	conn := b.cur.connection
	if _, dup := conn.Header(header.Key); dup {
		b.fail(&DuplicateNameError{Kind: "connection header", Name: header.Key})
		return
	}
	if header.Default == nil && header.Config == nil {
		b.fail(&MissingBindingError{Header: header.Key})
		return
	}
	if err := RegisterHeaderKey(b.store, conn, header); err != nil {
		b.fail(err)
		return
	}
	conn.AddHeader(header)
}

func (b *builder) addResource() {
	bound, ok := b.bind(
		directive.Required("name"),
		directive.Required("path"),
		directive.Optional("method"),
		directive.Optional("is_json"),
		directive.Optional("is_debug"),
		directive.Optional("timeout"),
		directive.Optional("handler"),
		directive.Optional("wrapper"),
	)
	if !ok {
		return
	}

	res := model.NewResource(bound["name"], bound["path"], b.origin())
	if method, ok := bound.Get("method"); ok {
		res.Method = strings.ToUpper(method)
	}
	if res.IsJSON, ok = b.parseBool(bound, "is_json"); !ok {
		return
	}
	if res.IsDebug, ok = b.parseBool(bound, "is_debug"); !ok {
		return
	}
	if res.Timeout, ok = b.parseFloat(bound, "timeout"); !ok {
		return
	}
	res.Handler = bound.Ptr("handler")
	res.Wrapper = bound.Ptr("wrapper")

	conn := b.cur.connection
	if _, dup := conn.Resource(res.Name); dup {
		b.fail(&DuplicateNameError{Kind: "connection resource", Name: res.Name})
		return
	}
	if err := RegisterResourceKeys(b.store, conn, res); err != nil {
		b.fail(err)
		return
	}
	conn.AddResource(res)
	b.cur.resource = res
}

func (b *builder) addRequired() {
	bound, ok := b.bind(directive.Required("name"))
	if !ok {
		return
	}
	b.cur.resource.AddRequired(bound["name"])
}

func (b *builder) addOptional() {
	bound, ok := b.bind(directive.Required("name"), directive.Optional("default"))
	if !ok {
		return
	}
	name := bound["name"]
	if _, dup := b.cur.resource.OptionalParam(name); dup {
		b.fail(&DuplicateNameError{Kind: "resource optional parameter", Name: name})
		return
	}
	b.cur.resource.AddOptional(&model.OptionalParam{Name: name, Default: bound.Ptr("default")})
}
