package launcher

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// PowerShellController starts and stops processes through PowerShell.
//
// Start-Process detaches the child from the server the way a user launch
// would, resolves shortcuts, and can either report the fresh PID
// (-PassThru) or suppress it entirely. Stop-Process supports termination
// by id and by name, which is what makes duplicate prevention workable on
// this platform.
type PowerShellController struct {
	// run executes a PowerShell command and returns its stdout.
	// Overridable for tests.
	run func(command string) (string, error)
}

// NewPowerShellController creates a controller backed by powershell.exe.
func NewPowerShellController() *PowerShellController {
	return &PowerShellController{run: runPowerShell}
}

func runPowerShell(command string) (string, error) {
	out, err := exec.Command("powershell", "-WindowStyle", "Hidden", "-Command", command).Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("%s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return string(out), nil
}

// quote wraps a value in PowerShell single quotes, doubling embedded quotes.
func quote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

// Start issues a Start-Process command. With capturePID the command runs
// with -PassThru and echoes the fresh process id; without it the start is
// deliberately fire-and-forget to minimize race windows with short-lived
// relaunch sequences.
func (c *PowerShellController) Start(path string, args []string, capturePID bool) (int, error) {
	var sb strings.Builder

	if capturePID {
		sb.WriteString("$process = ")
	}
	sb.WriteString("Start-Process -FilePath ")
	sb.WriteString(quote(path))
	if len(args) > 0 {
		sb.WriteString(" -ArgumentList ")
		sb.WriteString(quote(strings.Join(args, " ")))
	}
	if capturePID {
		sb.WriteString(" -PassThru; Write-Output $process.Id")
	}

	out, err := c.run(sb.String())
	if err != nil {
		return 0, fmt.Errorf("Start-Process failed: %w", err)
	}

	if !capturePID {
		return 0, nil
	}

	pid, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, fmt.Errorf("failed to parse process id %q: %w", strings.TrimSpace(out), err)
	}
	return pid, nil
}

// StopPID terminates a process by identifier.
func (c *PowerShellController) StopPID(pid int) error {
	_, err := c.run(fmt.Sprintf("Stop-Process -Id %d -Force", pid))
	if err != nil {
		return fmt.Errorf("Stop-Process failed: %w", err)
	}
	return nil
}

// StopName terminates all processes matching the given name.
func (c *PowerShellController) StopName(name string) error {
	_, err := c.run(fmt.Sprintf("Stop-Process -Name %s -Force", quote(name)))
	if err != nil {
		return fmt.Errorf("Stop-Process failed: %w", err)
	}
	return nil
}

// SupportsNameStop reports that name-based termination is available.
func (c *PowerShellController) SupportsNameStop() bool {
	return true
}
