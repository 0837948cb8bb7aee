// Package jobrecord is the on-disk JSON shape of a job, shared by the
// SQLite and bbolt stores.
package jobrecord

import (
	"encoding/json"
	"fmt"
	"time"

	"rcjobs/internal/domain"
)

const (
	kindLocal  = "local"
	kindRemote = "remote"
)

// Ref is a serialized path reference
type Ref struct {
	Kind   string `json:"kind"`
	Remote string `json:"remote,omitempty"`
	Path   string `json:"path"`
}

// Record is a serialized job
type Record struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Operation       string     `json:"operation"`
	Source          *Ref       `json:"source,omitempty"`
	Destination     *Ref       `json:"destination,omitempty"`
	Transfers       int        `json:"transfers"`
	CreateLogFile   bool       `json:"createLogFile"`
	LogFilePath     string     `json:"logFilePath,omitempty"`
	Verbosity       string     `json:"verbosity"`
	IncludePatterns []string   `json:"includePatterns,omitempty"`
	ExcludePatterns []string   `json:"excludePatterns,omitempty"`
	MinAge          string     `json:"minAge,omitempty"`
	ExtraFlags      []string   `json:"extraFlags,omitempty"`
	IsScheduled     bool       `json:"isScheduled,omitempty"`
	ScheduleCron    string     `json:"scheduleCron,omitempty"`
	LastRun         *time.Time `json:"lastRun,omitempty"`
	LastStatus      string     `json:"lastStatus"`
	LastError       string     `json:"lastError,omitempty"`
}

// FromJob converts a job into its record form
func FromJob(job domain.Job) Record {
	job = job.Clone()
	return Record{
		ID:              job.ID,
		Name:            job.Name,
		Operation:       job.Operation.Keyword(),
		Source:          fromRef(job.Source),
		Destination:     fromRef(job.Destination),
		Transfers:       job.Transfers,
		CreateLogFile:   job.CreateLogFile,
		LogFilePath:     job.LogFilePath,
		Verbosity:       job.Verbosity.String(),
		IncludePatterns: job.IncludePatterns,
		ExcludePatterns: job.ExcludePatterns,
		MinAge:          job.MinAge,
		ExtraFlags:      job.ExtraFlags,
		IsScheduled:     job.IsScheduled,
		ScheduleCron:    job.ScheduleCron,
		LastRun:         job.LastRun,
		LastStatus:      job.LastStatus.String(),
		LastError:       job.LastError,
	}
}

// ToJob converts a record back into a job
func (r Record) ToJob() (domain.Job, error) {
	op, ok := domain.ParseOperation(r.Operation)
	if !ok {
		return domain.Job{}, fmt.Errorf("job %s: unknown operation %q", r.ID, r.Operation)
	}
	verbosity, ok := domain.ParseVerbosity(r.Verbosity)
	if !ok {
		return domain.Job{}, fmt.Errorf("job %s: unknown verbosity %q", r.ID, r.Verbosity)
	}
	status, ok := domain.ParseJobStatus(r.LastStatus)
	if !ok {
		return domain.Job{}, fmt.Errorf("job %s: unknown status %q", r.ID, r.LastStatus)
	}
	src, err := r.Source.toRef()
	if err != nil {
		return domain.Job{}, fmt.Errorf("job %s source: %w", r.ID, err)
	}
	dst, err := r.Destination.toRef()
	if err != nil {
		return domain.Job{}, fmt.Errorf("job %s destination: %w", r.ID, err)
	}

	job := domain.Job{
		ID:              r.ID,
		Name:            r.Name,
		Operation:       op,
		Source:          src,
		Destination:     dst,
		Transfers:       r.Transfers,
		CreateLogFile:   r.CreateLogFile,
		LogFilePath:     r.LogFilePath,
		Verbosity:       verbosity,
		IncludePatterns: r.IncludePatterns,
		ExcludePatterns: r.ExcludePatterns,
		MinAge:          r.MinAge,
		ExtraFlags:      r.ExtraFlags,
		IsScheduled:     r.IsScheduled,
		ScheduleCron:    r.ScheduleCron,
		LastRun:         r.LastRun,
		LastStatus:      status,
		LastError:       r.LastError,
	}
	return job.Clone(), nil
}

func fromRef(ref domain.PathRef) *Ref {
	switch r := ref.(type) {
	case domain.LocalPath:
		return &Ref{Kind: kindLocal, Path: r.Path}
	case domain.RemotePath:
		return &Ref{Kind: kindRemote, Remote: r.Remote, Path: r.Path}
	}
	return nil
}

func (r *Ref) toRef() (domain.PathRef, error) {
	if r == nil {
		return nil, nil
	}
	switch r.Kind {
	case kindLocal:
		return domain.LocalPath{Path: r.Path}, nil
	case kindRemote:
		return domain.RemotePath{Remote: r.Remote, Path: r.Path}, nil
	}
	return nil, fmt.Errorf("unknown path kind %q", r.Kind)
}

// Marshal encodes a job as JSON
func Marshal(job domain.Job) ([]byte, error) {
	return json.Marshal(FromJob(job))
}

// Unmarshal decodes a job from JSON
func Unmarshal(data []byte) (domain.Job, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return domain.Job{}, fmt.Errorf("failed to decode job: %w", err)
	}
	return r.ToJob()
}
