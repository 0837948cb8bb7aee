package commands

import (
	"context"
	"fmt"

	"rcjobs/internal/logging"
	"rcjobs/internal/ports"
)

// DeleteResult contains the result of a delete operation
type DeleteResult struct {
	DeletedID string
	Message   string
}

// DeleteCommand removes a stored job. It never touches files on disk or
// in a remote.
type DeleteCommand struct {
	store ports.JobStore
	Ref   string
}

// NewDeleteCommand creates a new DeleteCommand
func NewDeleteCommand(store ports.JobStore, ref string) *DeleteCommand {
	return &DeleteCommand{
		store: store,
		Ref:   ref,
	}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	job, err := resolveJob(ctx, c.store, c.Ref)
	if err != nil {
		return nil, err
	}

	if err := c.store.Delete(ctx, job.ID); err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", job.Name, err)
	}

	logging.WithContext(logging.WithJob(ctx, job.ID, job.Name)).Info("job deleted")

	return &DeleteResult{
		DeletedID: job.ID,
		Message:   fmt.Sprintf("Deleted %s", job.Name),
	}, nil
}
