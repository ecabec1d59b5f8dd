// internal/keypath/doc.go

/*
Package keypath provides a structured representation for configuration key
names, based on the canonical dotted format `segment.segment.segment`.

Keys mirror the entity hierarchy of a compiled micro file, for example
`server.web.ssl.keyfile` or `connection.api.resource.users.is_debug`.

This package enforces the key schema and centralizes all formatting and
parsing logic, so the settings store, the builder and the settings file
loaders agree on what a valid key looks like.
*/
package keypath
