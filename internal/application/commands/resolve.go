package commands

import (
	"context"
	"fmt"

	"rcjobs/internal/application"
	"rcjobs/internal/domain"
	"rcjobs/internal/ports"
)

// resolveJob finds a job by ID, falling back to an exact name match
func resolveJob(ctx context.Context, store ports.JobStore, ref string) (*domain.Job, error) {
	if err := application.ValidateRequired("jobRef", ref); err != nil {
		return nil, err
	}

	job, err := store.Get(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}
	if job != nil {
		return job, nil
	}

	jobs, err := store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	var found *domain.Job
	for i := range jobs {
		if jobs[i].Name != ref {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%w: %d jobs are named %q, use the job ID", application.ErrAmbiguous, countNamed(jobs, ref), ref)
		}
		found = &jobs[i]
	}
	if found == nil {
		return nil, fmt.Errorf("job %q: %w", ref, application.ErrNotFound)
	}
	return found, nil
}

func countNamed(jobs []domain.Job, name string) int {
	n := 0
	for _, j := range jobs {
		if j.Name == name {
			n++
		}
	}
	return n
}

// nameInUse reports whether a job other than exceptID already has name
func nameInUse(jobs []domain.Job, name, exceptID string) bool {
	for _, j := range jobs {
		if j.Name == name && j.ID != exceptID {
			return true
		}
	}
	return false
}

// uniqueName returns name, or "name (n)" with the smallest n >= 2 that no
// job uses
func uniqueName(jobs []domain.Job, name string) string {
	if !nameInUse(jobs, name, "") {
		return name
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", name, n)
		if !nameInUse(jobs, candidate, "") {
			return candidate
		}
	}
}
