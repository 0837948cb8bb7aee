package application

import "rcjobs/internal/domain"

// Re-export domain types for use by adapters
type (
	Job               = domain.Job
	Operation         = domain.Operation
	Verbosity         = domain.Verbosity
	JobStatus         = domain.JobStatus
	PathRef           = domain.PathRef
	BatchImportResult = domain.BatchImportResult
)

// DescribeJob renders a one-line summary: name, operation and paths
func DescribeJob(job Job) string {
	if !job.Operation.IsBinary() {
		return job.Name + " [" + job.Operation.String() + "] " + domain.RenderRef(job.Source)
	}
	return job.Name + " [" + job.Operation.String() + "] " +
		domain.RenderRef(job.Source) + " -> " + domain.RenderRef(job.Destination)
}
