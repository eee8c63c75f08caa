// Package monitoring provides Prometheus metrics for the backend.
//
// Metrics cover the HTTP command surface (request counts, durations), the
// process lifecycle (launch/stop attempts by result), registry sizes, and
// startup orchestration outcomes. The /metrics endpoint exposes them in
// Prometheus exposition format.
package monitoring
