package ports

import "context"

// ExecResult is what a finished rclone process reported
type ExecResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// ProcessRunner launches rclone with an argument vector and waits for it.
// A non-zero exit code is reported in ExecResult, not as an error; the
// error is reserved for processes that could not be started or were
// cancelled.
type ProcessRunner interface {
	Execute(ctx context.Context, args []string) (ExecResult, error)
}
