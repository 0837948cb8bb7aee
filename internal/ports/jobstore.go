package ports

import (
	"context"

	"rcjobs/internal/domain"
)

// JobStore persists the job list. Jobs keep the order in which they were
// first saved.
type JobStore interface {
	// List returns every job in insertion order
	List(ctx context.Context) ([]domain.Job, error)

	// Get returns the job with the given ID, or nil if there is none
	Get(ctx context.Context, id string) (*domain.Job, error)

	// Save inserts or replaces a job by ID
	Save(ctx context.Context, job domain.Job) error

	// SaveAll saves several jobs atomically
	SaveAll(ctx context.Context, jobs []domain.Job) error

	// Delete removes a job; deleting a missing job is not an error
	Delete(ctx context.Context, id string) error

	Close() error
}
