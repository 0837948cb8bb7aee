package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"rcjobs/internal/application"
	"rcjobs/internal/domain"
	"rcjobs/internal/logging"
	"rcjobs/internal/ports"
)

// AddJobResult contains the result of adding a job
type AddJobResult struct {
	Job      domain.Job
	Warnings []string
	Message  string
}

// AddJobCommand parses a command line and stores it as a new job
type AddJobCommand struct {
	store      ports.JobStore
	translator *domain.Translator
	Line       string
	Name       string
	LogDir     string
}

// NewAddJobCommand creates a new AddJobCommand
func NewAddJobCommand(store ports.JobStore, translator *domain.Translator, line, name, logDir string) *AddJobCommand {
	return &AddJobCommand{
		store:      store,
		translator: translator,
		Line:       line,
		Name:       name,
		LogDir:     logDir,
	}
}

// Validate checks if the add operation is valid
func (c *AddJobCommand) Validate() error {
	return application.ValidateRequired("line", c.Line)
}

// Execute runs the add command
func (c *AddJobCommand) Execute(ctx context.Context) (*AddJobResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	parsed, err := NewParseLineCommand(c.translator, c.Line).Execute(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := c.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	job := parsed.Job
	job.ID = domain.NewJobID()
	job.Name = c.Name
	if job.Name == "" {
		job.Name = nextDefaultName(existing)
	} else if nameInUse(existing, job.Name, "") {
		return nil, &application.ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("a job named %q already exists", job.Name),
		}
	}

	if c.LogDir != "" && job.LogFilePath == "" {
		job.CreateLogFile = true
		job.LogFilePath = filepath.Join(c.LogDir, job.Name+".log")
	}

	if err := c.store.Save(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to save job: %w", err)
	}

	logging.WithContext(logging.WithJob(ctx, job.ID, job.Name)).Info("job added",
		zap.String("operation", job.Operation.Keyword()))

	return &AddJobResult{
		Job:      job,
		Warnings: parsed.Warnings,
		Message:  fmt.Sprintf("Added %s: %s", job.Name, domain.CommandLine(job)),
	}, nil
}

// nextDefaultName returns the first "Job N" not used by any existing job
func nextDefaultName(jobs []domain.Job) string {
	for n := len(jobs) + 1; ; n++ {
		name := fmt.Sprintf("Job %d", n)
		if !nameInUse(jobs, name, "") {
			return name
		}
	}
}
