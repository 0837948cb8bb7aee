package commands

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rcjobs/internal/application"
	"rcjobs/internal/domain"
	"rcjobs/internal/logging"
	"rcjobs/internal/ports"
)

// RunJobResult contains the outcome of running one job
type RunJobResult struct {
	Job    domain.Job
	Args   []string
	Output ports.ExecResult
}

// RunJobCommand runs a stored job through rclone and records the outcome
type RunJobCommand struct {
	store  ports.JobStore
	runner ports.ProcessRunner
	now    func() time.Time
	Ref    string
}

// NewRunJobCommand creates a new RunJobCommand
func NewRunJobCommand(store ports.JobStore, runner ports.ProcessRunner, ref string) *RunJobCommand {
	return &RunJobCommand{
		store:  store,
		runner: runner,
		now:    time.Now,
		Ref:    ref,
	}
}

// Execute runs the job. A job that ran but failed returns both the result
// and a *application.RunError.
func (c *RunJobCommand) Execute(ctx context.Context) (*RunJobResult, error) {
	job, err := resolveJob(ctx, c.store, c.Ref)
	if err != nil {
		return nil, err
	}
	return runJob(ctx, c.store, c.runner, c.now, *job)
}

func runJob(ctx context.Context, store ports.JobStore, runner ports.ProcessRunner, now func() time.Time, job domain.Job) (*RunJobResult, error) {
	if err := application.ValidateRunnable(job); err != nil {
		return nil, fmt.Errorf("cannot run %s: %w", job.Name, err)
	}

	ctx = logging.WithJob(ctx, job.ID, job.Name)
	log := logging.WithContext(ctx)

	args := domain.BuildArgs(job)
	log.Info("running job", zap.Strings("args", args))

	running := job
	running.LastStatus = domain.StatusRunning
	if err := store.Save(ctx, running); err != nil {
		return nil, fmt.Errorf("failed to mark %s running: %w", job.Name, err)
	}

	started := now()
	out, execErr := runner.Execute(ctx, args)
	job.LastRun = &started

	var runErr error
	switch {
	case execErr != nil && ctx.Err() != nil:
		job.LastStatus = domain.StatusCancelled
		job.LastError = ctx.Err().Error()
		runErr = &application.RunError{JobID: job.ID, JobName: job.Name, ExitCode: out.ExitCode, Err: execErr}
	case execErr != nil:
		job.LastStatus = domain.StatusFailed
		job.LastError = execErr.Error()
		runErr = &application.RunError{JobID: job.ID, JobName: job.Name, ExitCode: out.ExitCode, Err: execErr}
	case out.ExitCode != 0:
		job.LastStatus = domain.StatusFailed
		job.LastError = out.Stderr
		runErr = &application.RunError{JobID: job.ID, JobName: job.Name, ExitCode: out.ExitCode, Stderr: out.Stderr}
	default:
		job.LastStatus = domain.StatusSuccess
		job.LastError = ""
	}

	log.Info("job finished",
		zap.Stringer("status", job.LastStatus),
		zap.Int("exit_code", out.ExitCode),
		zap.Duration("elapsed", now().Sub(started)),
	)

	// the outcome is recorded even when the run was cancelled
	if err := store.Save(context.WithoutCancel(ctx), job); err != nil {
		return nil, fmt.Errorf("failed to record run of %s: %w", job.Name, err)
	}

	return &RunJobResult{Job: job, Args: args, Output: out}, runErr
}

// RunOutcome is one job's entry in a RunAllResult
type RunOutcome struct {
	Job    domain.Job
	Output ports.ExecResult
	Err    error
}

// RunAllResult contains the outcome of running every stored job
type RunAllResult struct {
	Outcomes  []RunOutcome
	Succeeded int
	Failed    int
}

// RunAllCommand runs every stored job, up to Parallel at a time. A failing
// job does not stop the others.
type RunAllCommand struct {
	store    ports.JobStore
	runner   ports.ProcessRunner
	now      func() time.Time
	Parallel int
}

// NewRunAllCommand creates a new RunAllCommand
func NewRunAllCommand(store ports.JobStore, runner ports.ProcessRunner, parallel int) *RunAllCommand {
	return &RunAllCommand{
		store:    store,
		runner:   runner,
		now:      time.Now,
		Parallel: parallel,
	}
}

// Validate checks if the run operation is valid
func (c *RunAllCommand) Validate() error {
	if c.Parallel < 1 {
		return &application.ValidationError{
			Field:   "parallel",
			Message: fmt.Sprintf("parallel must be at least 1, got %d", c.Parallel),
		}
	}
	return nil
}

// Execute runs the jobs. Outcomes are reported in list order.
func (c *RunAllCommand) Execute(ctx context.Context) (*RunAllResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	jobs, err := c.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	outcomes := make([]RunOutcome, len(jobs))
	var g errgroup.Group
	g.SetLimit(c.Parallel)
	for i, job := range jobs {
		g.Go(func() error {
			res, err := runJob(ctx, c.store, c.runner, c.now, job)
			outcomes[i] = RunOutcome{Job: job, Err: err}
			if res != nil {
				outcomes[i].Job = res.Job
				outcomes[i].Output = res.Output
			}
			// errgroup.Group has no context here, so an error does not stop
			// the remaining runs
			return err
		})
	}
	firstErr := g.Wait()

	result := &RunAllResult{Outcomes: outcomes}
	for _, o := range outcomes {
		if o.Err != nil {
			result.Failed++
		} else {
			result.Succeeded++
		}
	}

	if result.Failed > 0 {
		return result, fmt.Errorf("%w: %d of %d jobs failed, first: %w", application.ErrRunFailed, result.Failed, len(jobs), firstErr)
	}
	return result, nil
}
