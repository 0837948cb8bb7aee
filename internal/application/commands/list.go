package commands

import (
	"context"
	"fmt"

	"rcjobs/internal/domain"
	"rcjobs/internal/ports"
)

// ListJobsCommand lists stored jobs in insertion order
type ListJobsCommand struct {
	store ports.JobStore
}

// NewListJobsCommand creates a new ListJobsCommand
func NewListJobsCommand(store ports.JobStore) *ListJobsCommand {
	return &ListJobsCommand{store: store}
}

// Execute runs the list command
func (c *ListJobsCommand) Execute(ctx context.Context) ([]domain.Job, error) {
	jobs, err := c.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// ShowJobResult contains a job and the rclone invocation it maps to
type ShowJobResult struct {
	Job         domain.Job
	Args        []string
	CommandLine string
}

// ShowJobCommand looks up a single job by ID or name
type ShowJobCommand struct {
	store ports.JobStore
	Ref   string
}

// NewShowJobCommand creates a new ShowJobCommand
func NewShowJobCommand(store ports.JobStore, ref string) *ShowJobCommand {
	return &ShowJobCommand{store: store, Ref: ref}
}

// Execute runs the show command
func (c *ShowJobCommand) Execute(ctx context.Context) (*ShowJobResult, error) {
	job, err := resolveJob(ctx, c.store, c.Ref)
	if err != nil {
		return nil, err
	}
	return &ShowJobResult{
		Job:         *job,
		Args:        domain.BuildArgs(*job),
		CommandLine: domain.CommandLine(*job),
	}, nil
}
