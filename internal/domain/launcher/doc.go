// Package launcher starts and stops the OS processes behind definitions.
//
// Platform variance is isolated in the Controller interface: PowerShell
// start/stop commands on Windows, direct os/exec spawning elsewhere. The
// launcher decides the tracking strategy (PID vs name) from the
// definition's duplicate-prevention flag and records exactly one registry
// entry per successful launch.
package launcher
