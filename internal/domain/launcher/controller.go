package launcher

import "runtime"

// Controller abstracts platform-specific process start/stop commands.
//
// Two families exist: a privileged start-command family that can either
// return the fresh process identifier or suppress it (PowerShell on
// Windows), and a direct-spawn fallback that always captures the
// identifier. Name-based termination is only meaningful where the platform
// supports it; callers must consult SupportsNameStop before relying on it.
type Controller interface {
	// Start launches the executable at path with the given argv tokens.
	// When capturePID is true the returned pid identifies the new process;
	// when false the pid is meaningless and the start is fire-and-forget.
	Start(path string, args []string, capturePID bool) (pid int, err error)

	// StopPID terminates the process with the given identifier.
	StopPID(pid int) error

	// StopName terminates all processes matching the given name.
	StopName(name string) error

	// SupportsNameStop reports whether StopName can work on this platform.
	SupportsNameStop() bool
}

// NewController returns the controller for the current platform.
func NewController() Controller {
	if runtime.GOOS == "windows" {
		return NewPowerShellController()
	}
	return NewSpawnController()
}
