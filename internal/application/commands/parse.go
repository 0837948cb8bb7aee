package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"rcjobs/internal/application"
	"rcjobs/internal/domain"
	"rcjobs/internal/logging"
)

// ParseLineResult contains a parsed job and the argument vector it runs with
type ParseLineResult struct {
	Job         domain.Job
	Args        []string
	CommandLine string
	Warnings    []string
}

// ParseLineCommand parses a single rclone command line without storing it
type ParseLineCommand struct {
	translator *domain.Translator
	Line       string
}

// NewParseLineCommand creates a new ParseLineCommand
func NewParseLineCommand(translator *domain.Translator, line string) *ParseLineCommand {
	return &ParseLineCommand{
		translator: translator,
		Line:       line,
	}
}

// Validate checks if the line can be parsed
func (c *ParseLineCommand) Validate() error {
	return application.ValidateRequired("line", c.Line)
}

// Execute runs the parse command
func (c *ParseLineCommand) Execute(ctx context.Context) (*ParseLineResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	tr, ok := c.translator.ParseLine(c.Line)
	if !ok {
		return nil, &application.ValidationError{
			Field:   "line",
			Message: "no rclone copy, sync, move or delete invocation found",
		}
	}

	result := &ParseLineResult{
		Job:         tr.Job,
		Args:        domain.BuildArgs(tr.Job),
		CommandLine: domain.CommandLine(tr.Job),
	}
	for _, cfg := range tr.DroppedConfig {
		w := fmt.Sprintf("ignored --config %q, the configured rclone config is used instead", cfg)
		result.Warnings = append(result.Warnings, w)
		logging.WithContext(ctx).Warn("dropped config flag", zap.String("config", cfg))
	}

	return result, nil
}
