// Package server wires the registry, launcher, orchestrator, and API
// surfaces into a running HTTP server.
package server
