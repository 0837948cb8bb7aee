package domain

// Assemble builds a job from the classified arguments of one invocation.
// Missing positional arguments leave the matching path unset; the result
// has no ID or Name.
func Assemble(op Operation, c Classified, paths PathResolver) Job {
	job := NewJob(op)
	job.Verbosity = c.Verbosity
	job.CreateLogFile = c.CreateLogFile
	job.LogFilePath = c.LogFilePath
	job.MinAge = c.MinAge
	job.IncludePatterns = cloneStrings(c.Include)
	job.ExcludePatterns = cloneStrings(c.Exclude)
	job.ExtraFlags = cloneStrings(c.ExtraFlags)

	if len(c.Positional) >= 1 {
		job.Source = paths.Resolve(c.Positional[0])
	}
	if !op.IsBinary() {
		return job
	}

	job.Transfers = c.Transfers
	if len(c.Positional) >= 2 {
		job.Destination = paths.Resolve(c.Positional[1])
	}
	return job
}
