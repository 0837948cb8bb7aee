package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestBuildArgs_Order(t *testing.T) {
	job := NewJob(OpCopy)
	job.Source = LocalPath{Path: `C:\src`}
	job.Destination = RemotePath{Remote: "gdrive", Path: "backup"}
	job.Transfers = 8
	job.CreateLogFile = true
	job.LogFilePath = `C:\logs\job.log`
	job.Verbosity = VerbosityVeryVerbose
	job.IncludePatterns = []string{"a", "b"}
	job.ExcludePatterns = []string{"c"}
	job.MinAge = "7d"
	job.ExtraFlags = []string{"--fast-list", "--bwlimit=10M"}

	want := []string{
		"copy", `C:\src`, "gdrive:backup",
		"--transfers", "8",
		"--min-age", "7d",
		"--log-file", `C:\logs\job.log`,
		"-vv",
		"--include", "a", "--include", "b",
		"--exclude", "c",
		"--fast-list", "--bwlimit=10M",
	}
	if diff := cmp.Diff(want, BuildArgs(job)); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildArgs_Verbosity(t *testing.T) {
	tests := []struct {
		verbosity Verbosity
		want      []string
	}{
		{VerbosityQuiet, []string{"sync", "a", "b", "--transfers", "4", "-q"}},
		{VerbosityNormal, []string{"sync", "a", "b", "--transfers", "4"}},
		{VerbosityVerbose, []string{"sync", "a", "b", "--transfers", "4", "-v"}},
		{VerbosityVeryVerbose, []string{"sync", "a", "b", "--transfers", "4", "-vv"}},
	}

	for _, tt := range tests {
		t.Run(tt.verbosity.String(), func(t *testing.T) {
			job := NewJob(OpSync)
			job.Source = LocalPath{Path: "a"}
			job.Destination = LocalPath{Path: "b"}
			job.Verbosity = tt.verbosity

			if diff := cmp.Diff(tt.want, BuildArgs(job)); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildArgs_LogFileNeedsToggleAndPath(t *testing.T) {
	job := NewJob(OpMove)
	job.Source = LocalPath{Path: "a"}
	job.Destination = LocalPath{Path: "b"}

	job.LogFilePath = "/tmp/move.log"
	job.CreateLogFile = false
	if contains(BuildArgs(job), "--log-file") {
		t.Error("log file emitted while disabled")
	}

	job.LogFilePath = ""
	job.CreateLogFile = true
	if contains(BuildArgs(job), "--log-file") {
		t.Error("log file emitted without a path")
	}
}

func TestBuildArgs_MissingPaths(t *testing.T) {
	onlySource := NewJob(OpSync)
	onlySource.Source = LocalPath{Path: "a"}

	onlyDestination := NewJob(OpMove)
	onlyDestination.Destination = RemotePath{Remote: "r", Path: "b"}

	tests := []struct {
		name string
		job  Job
		want []string
	}{
		{"copy without paths", NewJob(OpCopy), []string{"copy", "--transfers", "4"}},
		{"delete without target", NewJob(OpDelete), []string{"delete"}},
		{"missing destination", onlySource, []string{"sync", "a", "--transfers", "4"}},
		{"missing source keeps position", onlyDestination, []string{"move", "", "r:b", "--transfers", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, BuildArgs(tt.job)); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCommandLine(t *testing.T) {
	job := NewJob(OpDelete)
	job.Source = RemotePath{Remote: "remote", Path: "old logs"}

	if got, want := CommandLine(job), `rclone delete "remote:old logs"`; got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func roundTripJobs() map[string]Job {
	copyJob := NewJob(OpCopy)
	copyJob.Source = RemotePath{Remote: "myremote", Path: "photos/2024"}
	copyJob.Destination = LocalPath{Path: `D:\Back Up\photos`}
	copyJob.Transfers = 8
	copyJob.Verbosity = VerbosityVerbose
	copyJob.IncludePatterns = []string{"*.jpg", "*.my pics", "*.jpg"}

	syncJob := NewJob(OpSync)
	syncJob.Source = LocalPath{Path: "/srv/data"}
	syncJob.Destination = RemotePath{Remote: "s3-backup", Path: "bucket/data"}
	syncJob.Transfers = 32
	syncJob.Verbosity = VerbosityQuiet
	syncJob.CreateLogFile = true
	syncJob.LogFilePath = "/var/log/rclone/sync.log"
	syncJob.ExcludePatterns = []string{"*.tmp", ".cache/**"}

	moveJob := NewJob(OpMove)
	moveJob.Source = LocalPath{Path: `C:\inbox`}
	moveJob.Destination = LocalPath{Path: `E:\archive`}
	moveJob.Verbosity = VerbosityVeryVerbose
	moveJob.MinAge = "1w"
	moveJob.IncludePatterns = []string{"*.pdf"}
	moveJob.ExcludePatterns = []string{"draft*"}

	deleteJob := NewJob(OpDelete)
	deleteJob.Source = RemotePath{Remote: "oldremote", Path: "old logs"}
	deleteJob.MinAge = "30d"

	halfSync := NewJob(OpSync)
	halfSync.Source = RemotePath{Remote: "gdrive", Path: "inbox"}
	halfSync.Verbosity = VerbosityVerbose

	return map[string]Job{
		"copy":                  copyJob,
		"sync":                  syncJob,
		"move":                  moveJob,
		"delete":                deleteJob,
		"copy without paths":    NewJob(OpCopy),
		"delete without paths":  NewJob(OpDelete),
		"sync with source only": halfSync,
	}
}

func TestRoundTrip(t *testing.T) {
	tr := NewTranslator()

	for name, job := range roundTripJobs() {
		t.Run(name, func(t *testing.T) {
			line := FormatCommandLine(BuildArgs(job))

			viaArgs, ok := tr.ParseArgs(Tokenize(line))
			if !ok {
				t.Fatalf("serialized args not recognized: %s", line)
			}
			if diff := cmp.Diff(job, viaArgs.Job, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("ParseArgs round trip mismatch (-want +got):\n%s", diff)
			}

			viaLine, ok := tr.ParseLine(CommandLine(job))
			if !ok {
				t.Fatalf("command line not recognized: %s", CommandLine(job))
			}
			if diff := cmp.Diff(job, viaLine.Job, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("ParseLine round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRoundTrip_ExtraFlagsSurvive(t *testing.T) {
	job := NewJob(OpSync)
	job.Source = LocalPath{Path: "a"}
	job.Destination = LocalPath{Path: "b"}
	job.ExtraFlags = []string{"--fast-list", "--bwlimit=10M"}

	got, ok := NewTranslator().ParseArgs(BuildArgs(job))
	if !ok {
		t.Fatal("expected args to be recognized")
	}
	if diff := cmp.Diff(job.ExtraFlags, got.Job.ExtraFlags); diff != "" {
		t.Errorf("extra flags mismatch (-want +got):\n%s", diff)
	}
}

func contains(args []string, s string) bool {
	for _, a := range args {
		if a == s {
			return true
		}
	}
	return false
}
