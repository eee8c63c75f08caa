// Package types provides shared data structures for the LaunchDock backend.
//
// This package defines core types used across all backend components,
// ensuring type safety and consistent data structures.
//
// Core Types:
//   - AppDefinition: Persisted description of a launchable program
//   - AppFields: Mutable fields of a definition (everything but the ID)
//   - AppConfig: Ordered collection of definitions, the persisted record
//   - RegistryStats: Registry statistics for health reporting
//
// Event Types:
//   - Event: Lifecycle notification pushed to connected UI clients
//
// Example Usage:
//
//	def := fields.Definition(uuid.New().String())
//	cfg := types.AppConfig{RegisteredApps: []types.AppDefinition{def}}
package types
