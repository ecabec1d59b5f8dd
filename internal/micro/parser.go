package micro

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/microconf/internal/ctxlog"
	"github.com/specialistvlad/microconf/internal/directive"
	"github.com/specialistvlad/microconf/internal/grammar"
	"github.com/specialistvlad/microconf/internal/model"
	"github.com/specialistvlad/microconf/internal/settings"
)

// Result is a successfully compiled micro file.
type Result struct {
	Graph *model.Graph
	Store *settings.Store
	// Sources lists every file opened while loading, root first.
	Sources []string
}

type options struct {
	loader *directive.Loader
	store  *settings.Store
}

// Option customizes Parse.
type Option func(*options)

// WithLoader sets the loader used to read the root source and its imports.
func WithLoader(l *directive.Loader) Option {
	return func(o *options) { o.loader = l }
}

// WithStore registers keys into an existing store instead of a new one.
func WithStore(s *settings.Store) Option {
	return func(o *options) { o.store = s }
}

// Parse loads src with its imports and compiles it.
func Parse(ctx context.Context, src directive.Source, opts ...Option) (*Result, error) {
	o := newOptions(opts)
	stream, err := o.loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return compile(ctx, stream, o)
}

// ParseStream compiles an already loaded stream.
func ParseStream(ctx context.Context, stream *directive.Stream, opts ...Option) (*Result, error) {
	return compile(ctx, stream, newOptions(opts))
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.loader == nil {
		o.loader = directive.NewLoader()
	}
	if o.store == nil {
		o.store = settings.New()
	}
	return o
}

func compile(ctx context.Context, stream *directive.Stream, o *options) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Compiling directive stream.", "lines", len(stream.Lines), "sources", len(stream.Sources))

	b := newBuilder(ctx, o.store)
	machine := grammar.New(b.actions())

	for _, line := range stream.Lines {
		b.line = line
		b.event = strings.ToLower(line.Keyword)
		b.args = directive.Tokenize(line.Text)

		state := machine.State()
		if !machine.Handle(b.event) {
			return nil, &UnknownDirectiveError{
				Directive: line.Keyword,
				Source:    line.Source,
				Line:      line.Number,
				State:     state,
				Expected:  machine.Expected(),
			}
		}
		if b.err != nil {
			return nil, &LineError{Source: line.Source, Line: line.Number, Err: b.err}
		}
		if state != machine.State() {
			logger.Debug("Grammar state changed.", "from", state, "to", machine.State(), "line", line.String())
		}
	}

	logger.Debug("Compiled micro file.",
		"servers", len(b.graph.Servers),
		"connections", len(b.graph.Connections),
		"keys", len(o.store.Keys()),
	)
	return &Result{Graph: b.graph, Store: o.store, Sources: stream.Sources}, nil
}

// Describe writes a human-readable outline of g, one entity per line.
func Describe(g *model.Graph) string {
	var sb strings.Builder
	for _, s := range g.Servers {
		fmt.Fprintf(&sb, "server %s port=%d (%s)\n", s.Name, s.Port, s.Origin)
		for _, r := range s.Routes {
			fmt.Fprintf(&sb, "  route %s", r.Pattern)
			for _, verb := range grammar.Verbs {
				if path, ok := r.Methods[verb]; ok {
					fmt.Fprintf(&sb, " %s=%s", verb, path)
				}
			}
			sb.WriteString("\n")
		}
	}
	for _, c := range g.Connections {
		fmt.Fprintf(&sb, "connection %s url=%s (%s)\n", c.Name, c.URL, c.Origin)
		for _, h := range c.Headers {
			fmt.Fprintf(&sb, "  header %s", h.Key)
			if h.Default != nil {
				fmt.Fprintf(&sb, " default=%s", *h.Default)
			}
			if h.Config != nil {
				fmt.Fprintf(&sb, " config=%s", *h.Config)
			}
			sb.WriteString("\n")
		}
		for _, r := range c.Resources {
			fmt.Fprintf(&sb, "  resource %s %s %s", r.Name, r.Method, r.Path)
			if len(r.Required) > 0 {
				fmt.Fprintf(&sb, " required=%s", strings.Join(r.Required, ","))
			}
			if len(r.Optional) > 0 {
				names := make([]string, len(r.Optional))
				for i, p := range r.Optional {
					names[i] = p.Name
				}
				fmt.Fprintf(&sb, " optional=%s", strings.Join(names, ","))
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
