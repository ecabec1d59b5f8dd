// Package settings implements the layered key/value configuration store that
// a compiled micro file registers its default keys into.
//
// Keys are dotted names (see package keypath) that are defined once, with an
// optional default value, an optional validator and an optional environment
// variable binding. Values are held as cty.Value so that a key validated as an
// int or a bool keeps that type all the way to the overlay step.
//
// A store is populated in three layers, lowest first:
//
//   - defaults supplied to Define (usually by the micro builder),
//   - settings files (HCL, YAML or plain key=value text) via LoadFile,
//   - environment variables bound with WithEnv, via ApplyEnv.
//
// Every write goes through the key's validator, so an invalid override is
// rejected where it is read rather than where it is used.
package settings
