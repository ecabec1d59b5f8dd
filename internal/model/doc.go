// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the Go struct representation of a compiled micro
// file. Its core purpose is to hold the entity graph produced by the builder
// in package micro, and the effective settings later attached to it by the
// overlay resolver.
//
// # Core Concepts
//
// The model is built around a few key structures:
//
//   - Graph: The root container. It holds every Server and Connection in the
//     order the directives created them.
//
//   - Server: A listener definition with a unique port and an ordered list of
//     Routes. Each Route maps HTTP verbs to handler paths.
//
//   - Connection: An outbound service definition. It owns its Headers and
//     Resources, each unique by key or name within the connection.
//
//   - Resource: One callable endpoint of a Connection. Its attributes may be
//     left unset, in which case they fall back to the owning Connection.
//
//   - Origin: The source and line of the directive that created an entity.
//     Every diagnostic about an entity points back to it.
//
// Why a separate model package?
//
// The builder, the overlay resolver and the reporting code in package app all
// operate on the same entities, but none of them should depend on each other.
// Keeping the entities here means the graph can be compared, printed and
// resolved without dragging the parser along.
//
// Entities are mutated by the builder while their scope is open and by the
// overlay resolver, which only writes the Settings fields. Everything else
// treats a Graph as read-only.
package model
