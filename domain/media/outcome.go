package media

import (
	"errors"
	"fmt"
)

// ErrLaunchFailure matches any error returned when the external tool could not be started
var ErrLaunchFailure = errors.New("media tool could not be launched")

// LaunchError reports that the executable was never started
// (not found, not executable, permission denied, spawn failure)
type LaunchError struct {
	Executable string
	Err        error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch %q: %v", e.Executable, e.Err)
}

// Unwrap returns the underlying OS error
func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Is reports LaunchError as ErrLaunchFailure
func (e *LaunchError) Is(target error) bool {
	return target == ErrLaunchFailure
}

// Completion is the outcome of a process that launched and ran to exit
type Completion struct {
	ExitCode int
}

// Success returns true if the process exited with status 0
func (c Completion) Success() bool {
	return c.ExitCode == 0
}

// IsLaunchFailure returns true if err signals that the tool never started
func IsLaunchFailure(err error) bool {
	return errors.Is(err, ErrLaunchFailure)
}
