// Package micro compiles micro files into an entity graph.
//
// Parse loads a root source with its imports, then feeds each directive to a
// grammar.Machine whose actions build servers, routes, connections, headers
// and resources into a model.Graph. Every entity registers its default
// configuration keys in a settings.Store as it is created, so that after a
// successful parse the store can be populated from settings files and the
// environment and handed to the overlay resolver.
//
// Parsing is fail-fast. The first illegal directive, duplicate name or
// malformed argument aborts the parse, and the error names the source and
// line of the directive that caused it.
package micro
