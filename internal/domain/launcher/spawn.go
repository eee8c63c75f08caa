package launcher

import (
	"fmt"
	"os"
	"os/exec"
)

// SpawnController starts processes directly through os/exec.
//
// This is the fallback family for platforms without a privileged start
// command: it always spawns the executable itself and always captures the
// identifier. Name-based termination is not supported here.
type SpawnController struct{}

// NewSpawnController creates a direct-spawn controller.
func NewSpawnController() *SpawnController {
	return &SpawnController{}
}

// Start spawns the executable. The identifier is always captured; the
// capturePID flag only controls whether the caller wants it.
func (c *SpawnController) Start(path string, args []string, capturePID bool) (int, error) {
	cmd := exec.Command(path, args...)
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to launch application: %w", err)
	}

	pid := cmd.Process.Pid

	// Reap the child when it exits so it never lingers as a zombie.
	go cmd.Wait()

	return pid, nil
}

// StopPID terminates a process by identifier.
func (c *SpawnController) StopPID(pid int) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process %d: %w", pid, err)
	}
	if err := proc.Kill(); err != nil {
		return fmt.Errorf("failed to stop process %d: %w", pid, err)
	}
	return nil
}

// StopName is not supported on this platform family.
func (c *SpawnController) StopName(name string) error {
	return ErrUnsupportedOperation
}

// SupportsNameStop reports that name-based termination is unavailable.
func (c *SpawnController) SupportsNameStop() bool {
	return false
}
