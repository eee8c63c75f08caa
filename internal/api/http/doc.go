// Package http exposes the registry and launcher over a gin REST surface
// and publishes lifecycle events to the WebSocket hub.
package http
