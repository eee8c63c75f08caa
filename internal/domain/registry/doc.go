// Package registry is the synchronization point for all lifecycle state.
//
// It serializes reads and writes to the ordered definition list and to the
// running-process map, and exposes atomic compound operations so no caller
// observes a torn state. Definitions persist through the config store after
// every mutation; on a failed write the in-memory mutation is rolled back so
// memory and disk never diverge.
//
// Process-map entries are keyed by definition id for PID-tracked apps, or by
// id:name for name-tracked apps (duplicate prevention). An entry is inserted
// the moment a launch is confirmed and removed the moment a stop claims it.
package registry
