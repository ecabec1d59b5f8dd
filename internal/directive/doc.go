// Package directive turns one or more micro sources into a single ordered
// stream of directive lines.
//
// A micro file holds one directive per physical line: a keyword followed by
// whitespace-separated arguments, with '#' starting a trailing comment. The
// `import <ref>` directive splices another file in place, depth first, so the
// stream a Loader returns is the import closure of its root source in the
// order the builder must see it.
//
// The package also owns argument tokenizing (Tokenize) and binding arguments
// to named parameters (Args.Bind), since both are defined purely in terms of
// the directive text.
package directive
