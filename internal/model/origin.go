// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Origin struct, which records where an entity was
// declared.
//
// Why store the origin?
//
// A micro file is usually split across several imported files. When the
// builder rejects a duplicate, or the resolver cannot resolve a connection's
// host, the user needs to know which physical line declared the entity, not
// just its name.
package model

import "fmt"

// Origin is the source identifier and 1-based line of a directive.
type Origin struct {
	Source string
	Line   int
}

func (o Origin) String() string {
	if o.Source == "" {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", o.Source, o.Line)
}
