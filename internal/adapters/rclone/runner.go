package rclone

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"rcjobs/internal/ports"
)

// waitDelay bounds how long Wait blocks on output pipes held open by
// rclone's children after rclone itself was killed
const waitDelay = 2 * time.Second

// Runner implements ports.ProcessRunner by launching the rclone binary
type Runner struct {
	executable string
	configPath string
	env        []string
}

// Ensure Runner implements ProcessRunner
var _ ports.ProcessRunner = (*Runner)(nil)

// Option configures the Runner
type Option func(*Runner)

// WithExecutable sets the rclone binary to launch
func WithExecutable(path string) Option {
	return func(r *Runner) {
		if path != "" {
			r.executable = path
		}
	}
}

// WithConfigPath makes every invocation use the given rclone config file.
// Jobs never carry --config themselves.
func WithConfigPath(path string) Option {
	return func(r *Runner) {
		r.configPath = path
	}
}

// WithEnv adds KEY=VALUE pairs to the child environment
func WithEnv(env ...string) Option {
	return func(r *Runner) {
		r.env = append(r.env, env...)
	}
}

// NewRunner creates a new rclone runner
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		executable: "rclone",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Command builds the exec.Cmd for an argument vector without starting it
func (r *Runner) Command(ctx context.Context, args []string) *exec.Cmd {
	full := make([]string, 0, len(args)+2)
	if r.configPath != "" {
		full = append(full, "--config", r.configPath)
	}
	full = append(full, args...)

	cmd := exec.CommandContext(ctx, r.executable, full...)
	cmd.WaitDelay = waitDelay
	if len(r.env) > 0 {
		cmd.Env = append(cmd.Environ(), r.env...)
	}
	return cmd
}

// Execute runs rclone and waits for it. A process that ran and exited
// non-zero is not an error; its exit code and stderr are in the result.
func (r *Runner) Execute(ctx context.Context, args []string) (ports.ExecResult, error) {
	var stdout, stderr bytes.Buffer
	cmd := r.Command(ctx, args)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := ports.ExecResult{
		Stdout: stdout.String(),
		Stderr: strings.TrimSpace(stderr.String()),
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return result, nil
	}
	if err != nil {
		result.ExitCode = -1
		return result, fmt.Errorf("failed to start %s: %w", r.executable, err)
	}
	return result, nil
}

// Version returns the first line of "rclone version"
func (r *Runner) Version(ctx context.Context) (string, error) {
	res, err := r.Execute(ctx, []string{"version"})
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf("rclone version exited with code %d: %s", res.ExitCode, res.Stderr)
	}
	line, _, _ := strings.Cut(res.Stdout, "\n")
	return strings.TrimSpace(line), nil
}
