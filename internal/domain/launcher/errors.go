package launcher

import (
	"errors"
	"fmt"
)

// ErrNotRunning reports a stop request for an app with no tracked entry.
var ErrNotRunning = errors.New("application not running")

// ErrUnsupportedOperation reports that name-based termination was requested
// on a platform that cannot support it.
var ErrUnsupportedOperation = errors.New("process name based termination not supported on this platform")

// LaunchError reports that the OS refused or failed to start a process, or
// that its reported identifier could not be parsed.
type LaunchError struct {
	AppID string
	Err   error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.AppID, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// StopError reports that the OS refused or failed to terminate a tracked
// process. The registry entry has already been removed when this is
// returned.
type StopError struct {
	AppID string
	Err   error
}

func (e *StopError) Error() string {
	return fmt.Sprintf("failed to stop %s: %v", e.AppID, e.Err)
}

func (e *StopError) Unwrap() error {
	return e.Err
}
