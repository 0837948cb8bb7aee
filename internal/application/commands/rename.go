package commands

import (
	"context"
	"fmt"
	"strings"

	"rcjobs/internal/application"
	"rcjobs/internal/ports"
)

// RenameResult contains the result of a rename operation
type RenameResult struct {
	ID      string
	OldName string
	NewName string
	Message string
}

// RenameCommand changes the display name of a job
type RenameCommand struct {
	store   ports.JobStore
	Ref     string
	NewName string
}

// NewRenameCommand creates a new RenameCommand
func NewRenameCommand(store ports.JobStore, ref, newName string) *RenameCommand {
	return &RenameCommand{
		store:   store,
		Ref:     ref,
		NewName: newName,
	}
}

// Validate checks if the rename operation is valid
func (c *RenameCommand) Validate() error {
	if err := application.ValidateRequired("jobRef", c.Ref); err != nil {
		return err
	}
	return application.ValidateRequired("name", c.NewName)
}

// Execute runs the rename command
func (c *RenameCommand) Execute(ctx context.Context) (*RenameResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	newName := strings.TrimSpace(c.NewName)

	job, err := resolveJob(ctx, c.store, c.Ref)
	if err != nil {
		return nil, err
	}

	jobs, err := c.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	if nameInUse(jobs, newName, job.ID) {
		return nil, &application.ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("a job named %q already exists", newName),
		}
	}

	oldName := job.Name
	job.Name = newName
	if err := c.store.Save(ctx, *job); err != nil {
		return nil, fmt.Errorf("failed to rename %s: %w", oldName, err)
	}

	return &RenameResult{
		ID:      job.ID,
		OldName: oldName,
		NewName: newName,
		Message: fmt.Sprintf("Renamed %s to %s", oldName, newName),
	}, nil
}
