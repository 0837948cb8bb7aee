package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Operation is the rclone operation a job runs
type Operation int

const (
	OpCopy   Operation = iota // Copy files from source to dest, skipping identical files
	OpSync                    // Make destination identical to source (one way)
	OpMove                    // Move files from source to dest
	OpDelete                  // Delete files under a single target
)

var operationNames = []string{"Copy", "Sync", "Move", "Delete"}

func (o Operation) String() string {
	if o < 0 || int(o) >= len(operationNames) {
		return fmt.Sprintf("Operation(%d)", int(o))
	}
	return operationNames[o]
}

// Keyword returns the lower-cased rclone subcommand for the operation
func (o Operation) Keyword() string {
	return strings.ToLower(o.String())
}

// IsBinary reports whether the operation takes a source and a destination.
// Delete is the only unary operation.
func (o Operation) IsBinary() bool {
	return o != OpDelete
}

// ParseOperation matches an operation keyword case-insensitively
func ParseOperation(s string) (Operation, bool) {
	for i, name := range operationNames {
		if strings.EqualFold(s, name) {
			return Operation(i), true
		}
	}
	return OpCopy, false
}

// Verbosity is the log level passed to rclone
type Verbosity int

const (
	VerbosityQuiet       Verbosity = iota // -q
	VerbosityNormal                       // no flag
	VerbosityVerbose                      // -v
	VerbosityVeryVerbose                  // -vv
)

var verbosityNames = []string{"Quiet", "Normal", "Verbose", "VeryVerbose"}

func (v Verbosity) String() string {
	if v < 0 || int(v) >= len(verbosityNames) {
		return fmt.Sprintf("Verbosity(%d)", int(v))
	}
	return verbosityNames[v]
}

// ParseVerbosity matches a verbosity name case-insensitively
func ParseVerbosity(s string) (Verbosity, bool) {
	for i, name := range verbosityNames {
		if strings.EqualFold(s, name) {
			return Verbosity(i), true
		}
	}
	return VerbosityNormal, false
}

// JobStatus is the outcome of the most recent run of a job
type JobStatus int

const (
	StatusNotRun JobStatus = iota
	StatusRunning
	StatusSuccess
	StatusFailed
	StatusCancelled
)

var statusNames = []string{"NotRun", "Running", "Success", "Failed", "Cancelled"}

func (s JobStatus) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("JobStatus(%d)", int(s))
	}
	return statusNames[s]
}

// ParseJobStatus matches a status name case-insensitively
func ParseJobStatus(s string) (JobStatus, bool) {
	for i, name := range statusNames {
		if strings.EqualFold(s, name) {
			return JobStatus(i), true
		}
	}
	return StatusNotRun, false
}

// DefaultTransfers is the rclone --transfers value used when none is given
const DefaultTransfers = 4

// Job is a stored rclone invocation.
//
// Destination is nil for Delete jobs and for binary jobs whose destination
// was never given. Source is nil when no target was given.
type Job struct {
	ID        string
	Name      string
	Operation Operation

	Source      PathRef
	Destination PathRef

	Transfers     int
	CreateLogFile bool
	LogFilePath   string
	Verbosity     Verbosity

	IncludePatterns []string
	ExcludePatterns []string
	MinAge          string
	ExtraFlags      []string

	// Carried and persisted, never acted on
	IsScheduled  bool
	ScheduleCron string

	LastRun    *time.Time
	LastStatus JobStatus
	LastError  string
}

// NewJob returns a job with the defaults of an empty rclone invocation.
// ID and Name are left empty for the caller to assign.
func NewJob(op Operation) Job {
	return Job{
		Operation:  op,
		Transfers:  DefaultTransfers,
		Verbosity:  VerbosityNormal,
		LastStatus: StatusNotRun,
	}
}

// NewJobID returns a fresh job identifier
func NewJobID() string {
	return uuid.NewString()
}

// ExtraFlagsText joins the extra flags with single spaces
func (j Job) ExtraFlagsText() string {
	return strings.Join(j.ExtraFlags, " ")
}

// SetExtraFlagsText replaces the extra flags with the whitespace-separated
// fields of text
func (j *Job) SetExtraFlagsText(text string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		j.ExtraFlags = nil
		return
	}
	j.ExtraFlags = fields
}

// Clone returns a deep copy of the job
func (j Job) Clone() Job {
	c := j
	c.IncludePatterns = cloneStrings(j.IncludePatterns)
	c.ExcludePatterns = cloneStrings(j.ExcludePatterns)
	c.ExtraFlags = cloneStrings(j.ExtraFlags)
	if j.LastRun != nil {
		t := *j.LastRun
		c.LastRun = &t
	}
	return c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
