// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the effective settings the overlay resolver attaches to
// each entity once the configuration store has been populated.
//
// Why separate compiled and effective values?
//
// The compiled values are what the micro file says. The effective values are
// what the deployment says after settings files and the environment have been
// applied. Keeping both lets a config dump show where a value came from, and
// lets the same compiled graph be resolved again when settings change.
package model

import "github.com/specialistvlad/microconf/internal/restmapper"

// ServerSettings is the resolved configuration of a Server.
type ServerSettings struct {
	Active bool
	Port   int
	SSL    SSLSettings

	// Mapper holds the server's routes. It is nil when the server is inactive.
	Mapper *restmapper.Mapper
}

// SSLSettings is the resolved TLS configuration of a Server.
type SSLSettings struct {
	Active   bool
	KeyFile  string
	CertFile string
}

// ConnectionSettings is the resolved configuration of a Connection. The
// network fields are only set when the connection is active.
type ConnectionSettings struct {
	Active  bool
	URL     string
	IsJSON  bool
	IsDebug bool
	Timeout float64
	Handler string
	Wrapper string

	// Headers maps header key to value for every header that has one.
	Headers map[string]string

	Host     string // first resolved address of Hostname
	Hostname string
	Port     int
	Path     string
	IsSSL    bool
}

// ResourceSettings is the resolved configuration of a Resource.
type ResourceSettings struct {
	IsJSON  bool
	IsDebug bool
	Timeout float64
	Handler string
	Wrapper string
}
