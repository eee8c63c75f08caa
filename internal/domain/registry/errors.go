package registry

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that a referenced definition id does not exist.
var ErrNotFound = errors.New("application not found")

// PersistenceError reports that the durable store could not be written.
// The in-memory mutation that triggered the write has been rolled back.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist config: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
