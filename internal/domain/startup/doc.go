// Package startup runs the boot-time launch sequence over enabled
// definitions, applying per-app delays and duplicate preemption.
package startup
