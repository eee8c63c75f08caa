// Command server runs the LaunchDock backend: a registry of launchable
// application definitions with an HTTP and WebSocket control surface.
package main
