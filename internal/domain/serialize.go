package domain

import "strconv"

// BuildArgs renders a job as the rclone argument vector that runs it, in a
// fixed order: operation, source, destination, --transfers, --min-age,
// --log-file, verbosity, includes, excludes, extra flags. Destination and
// --transfers are omitted for Delete.
//
// Missing paths are omitted so the vector parses back to the same job. A
// missing source followed by a destination is rendered as "" to keep the
// destination in second position.
func BuildArgs(job Job) []string {
	args := []string{job.Operation.Keyword()}

	if job.Source != nil || (job.Operation.IsBinary() && job.Destination != nil) {
		args = append(args, RenderRef(job.Source))
	}
	if job.Operation.IsBinary() {
		if job.Destination != nil {
			args = append(args, RenderRef(job.Destination))
		}
		args = append(args, "--transfers", strconv.Itoa(job.Transfers))
	}

	if job.MinAge != "" {
		args = append(args, "--min-age", job.MinAge)
	}

	if job.CreateLogFile && job.LogFilePath != "" {
		args = append(args, "--log-file", job.LogFilePath)
	}

	if flag, ok := verbosityArg[job.Verbosity]; ok {
		args = append(args, flag)
	}

	for _, p := range job.IncludePatterns {
		args = append(args, "--include", p)
	}
	for _, p := range job.ExcludePatterns {
		args = append(args, "--exclude", p)
	}

	return append(args, job.ExtraFlags...)
}

// Normal verbosity emits no flag
var verbosityArg = map[Verbosity]string{
	VerbosityQuiet:       "-q",
	VerbosityVerbose:     "-v",
	VerbosityVeryVerbose: "-vv",
}

// CommandLine renders the full invocation, executable included
func CommandLine(job Job) string {
	return ToolName + " " + FormatCommandLine(BuildArgs(job))
}
