package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound   = errors.New("not found")
	ErrAmbiguous  = errors.New("ambiguous job reference")
	ErrInvalidJob = errors.New("invalid job")
	ErrRunFailed  = errors.New("run failed")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidJob
}

// RunError reports an rclone run that exited non-zero or never started
type RunError struct {
	JobID    string
	JobName  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *RunError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("run %s: %v", e.JobName, e.Err)
	}
	if e.Stderr != "" {
		return fmt.Sprintf("run %s: exit code %d: %s", e.JobName, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("run %s: exit code %d", e.JobName, e.ExitCode)
}

func (e *RunError) Is(target error) bool {
	return target == ErrRunFailed
}

func (e *RunError) Unwrap() error {
	return e.Err
}
