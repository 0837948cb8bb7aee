package application

import (
	"fmt"
	"strings"

	"rcjobs/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "jobRef" -> "job reference")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"jobRef":      "job reference",
		"name":        "name",
		"source":      "source path",
		"destination": "destination path",
		"transfers":   "transfers",
		"line":        "command line",
		"path":        "file path",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateRunnable checks that a job has everything rclone needs to run it.
// Imported jobs may be incomplete; they are stored as parsed and rejected
// here when run.
func ValidateRunnable(job domain.Job) error {
	if err := ValidateRequired("name", job.Name); err != nil {
		return err
	}
	if err := validateRef("source", job.Source); err != nil {
		return err
	}
	if !job.Operation.IsBinary() {
		return nil
	}
	if err := validateRef("destination", job.Destination); err != nil {
		return err
	}
	if job.Transfers <= 0 {
		return &ValidationError{
			Field:   "transfers",
			Message: fmt.Sprintf("transfers must be positive, got %d", job.Transfers),
		}
	}
	return nil
}

func validateRef(fieldName string, ref domain.PathRef) error {
	switch r := ref.(type) {
	case nil:
		return ValidateRequired(fieldName, "")
	case domain.RemotePath:
		if !domain.IsRemoteName(r.Remote) {
			return &ValidationError{
				Field:   fieldName,
				Message: fmt.Sprintf("invalid remote name: %q", r.Remote),
			}
		}
	case domain.LocalPath:
		return ValidateRequired(fieldName, r.Path)
	}
	return nil
}
