package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"rcjobs/internal/application"
	"rcjobs/internal/domain"
	"rcjobs/internal/logging"
	"rcjobs/internal/ports"
)

// maxLineSize bounds a single batch file line
const maxLineSize = 1 << 20

// ImportBatchResult contains the result of importing a batch file
type ImportBatchResult struct {
	domain.BatchImportResult
	Saved   bool
	Message string
}

// ImportBatchCommand reads a batch or shell script and turns every rclone
// invocation in it into a stored job
type ImportBatchCommand struct {
	store      ports.JobStore
	translator *domain.Translator
	FilePath   string
	DryRun     bool
}

// NewImportBatchCommand creates a new ImportBatchCommand
func NewImportBatchCommand(store ports.JobStore, translator *domain.Translator, filePath string, dryRun bool) *ImportBatchCommand {
	return &ImportBatchCommand{
		store:      store,
		translator: translator,
		FilePath:   filePath,
		DryRun:     dryRun,
	}
}

// Validate checks if the import is valid
func (c *ImportBatchCommand) Validate() error {
	return application.ValidateRequired("path", c.FilePath)
}

// Execute runs the import command
func (c *ImportBatchCommand) Execute(ctx context.Context) (*ImportBatchResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	lines, err := readLines(c.FilePath)
	if err != nil {
		return nil, err
	}

	base := filepath.Base(c.FilePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	existing, err := c.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	imported := c.translator.ImportLines(base, lines)
	for i := range imported.Jobs {
		job := &imported.Jobs[i]
		job.ID = domain.NewJobID()
		if name := uniqueName(existing, job.Name); name != job.Name {
			imported.Warnings = append(imported.Warnings,
				fmt.Sprintf("%s: a job with this name exists, imported as %q", job.Name, name))
			job.Name = name
		}
		existing = append(existing, *job)
	}

	log := logging.WithContext(ctx).With(zap.String("file", c.FilePath))
	for _, line := range imported.SkippedLines {
		log.Debug("skipped line without rclone invocation", zap.String("line", line))
	}
	for _, w := range imported.Warnings {
		log.Warn(w)
	}

	result := &ImportBatchResult{BatchImportResult: imported}
	if !c.DryRun && len(imported.Jobs) > 0 {
		if err := c.store.SaveAll(ctx, imported.Jobs); err != nil {
			return nil, fmt.Errorf("failed to save imported jobs: %w", err)
		}
		result.Saved = true
	}

	log.Info("batch imported",
		zap.Int("jobs", len(imported.Jobs)),
		zap.Int("skipped", len(imported.SkippedLines)),
		zap.Bool("dry_run", c.DryRun),
	)

	verb := "Imported"
	if !result.Saved {
		verb = "Parsed"
	}
	result.Message = fmt.Sprintf("%s %d job(s) from %s, skipped %d line(s)",
		verb, len(imported.Jobs), filepath.Base(c.FilePath), len(imported.SkippedLines))

	return result, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	return lines, nil
}
