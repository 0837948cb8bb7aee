package domain

import (
	"fmt"
	"strings"
)

// Translator turns rclone command lines into jobs. It holds no mutable
// state and is safe for concurrent use.
type Translator struct {
	paths PathResolver
}

// TranslatorOption configures a Translator
type TranslatorOption func(*Translator)

// WithDriveLetters controls whether "X:" prefixes are treated as Windows
// drive letters rather than remote names
func WithDriveLetters(enabled bool) TranslatorOption {
	return func(t *Translator) {
		t.paths.DriveLetters = enabled
	}
}

// NewTranslator creates a translator; drive letters are honored by default
func NewTranslator(opts ...TranslatorOption) *Translator {
	t := &Translator{paths: DefaultPathResolver}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translation is a parsed job plus what was discarded while parsing it
type Translation struct {
	Job           Job
	DroppedConfig []string
}

// ParseLine parses a line containing an rclone invocation. It reports false
// when no "rclone <operation>" pair is found.
func (t *Translator) ParseLine(line string) (Translation, bool) {
	tokens := Tokenize(line)
	op, idx, ok := Recognize(tokens)
	if !ok {
		return Translation{}, false
	}
	return t.translate(op, Classify(tokens[idx+1:])), true
}

// ParseArgs parses an argument vector without the executable, as produced by
// BuildArgs. Flags may precede the operation keyword.
func (t *Translator) ParseArgs(args []string) (Translation, bool) {
	op, idx, ok := recognizeArgs(args)
	if !ok {
		return Translation{}, false
	}
	c := newClassified()
	c.classify(args[:idx])
	c.classify(args[idx+1:])
	return t.translate(op, c), true
}

func (t *Translator) translate(op Operation, c Classified) Translation {
	return Translation{
		Job:           Assemble(op, c, t.paths),
		DroppedConfig: c.DroppedConfig,
	}
}

// BatchImportResult is the outcome of importing one batch file
type BatchImportResult struct {
	Jobs         []Job
	SkippedLines []string
	Warnings     []string
}

// ImportLines parses every line of a batch file. Blank lines are ignored;
// other lines without an rclone invocation are kept verbatim in SkippedLines.
// Jobs are named after baseName: the first gets baseName itself and the
// n-th gets "baseName-n".
func (t *Translator) ImportLines(baseName string, lines []string) BatchImportResult {
	var result BatchImportResult

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		tr, ok := t.ParseLine(trimmed)
		if !ok {
			result.SkippedLines = append(result.SkippedLines, line)
			continue
		}

		n := len(result.Jobs) + 1
		tr.Job.Name = batchJobName(baseName, n)
		for _, cfg := range tr.DroppedConfig {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: ignored --config %q, the configured rclone config is used instead", tr.Job.Name, cfg))
		}
		result.Jobs = append(result.Jobs, tr.Job)
	}

	return result
}

func batchJobName(baseName string, n int) string {
	if n == 1 {
		return baseName
	}
	return fmt.Sprintf("%s-%d", baseName, n)
}

// ParseLine parses a line with the default translator
func ParseLine(line string) (Translation, bool) {
	return defaultTranslator.ParseLine(line)
}

var defaultTranslator = NewTranslator()
