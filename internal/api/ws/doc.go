// Package ws streams registry and process lifecycle events to connected
// clients over WebSocket.
package ws
