package domain

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParseArgs_DriveLettersStayLocal(t *testing.T) {
	tr, ok := NewTranslator().ParseArgs(Tokenize(`--transfers 8 copy C:\src D:\dst`))
	if !ok {
		t.Fatal("expected the arguments to be recognized")
	}

	want := NewJob(OpCopy)
	want.Source = LocalPath{Path: `C:\src`}
	want.Destination = LocalPath{Path: `D:\dst`}
	want.Transfers = 8

	if diff := cmp.Diff(want, tr.Job, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("job mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLine_SyncRemoteToLocal(t *testing.T) {
	tr, ok := ParseLine(`rclone sync myremote:backups/ /data/restore -v --include *.jpg --exclude *.tmp`)
	if !ok {
		t.Fatal("expected the line to be recognized")
	}

	want := NewJob(OpSync)
	want.Source = RemotePath{Remote: "myremote", Path: "backups/"}
	want.Destination = LocalPath{Path: "/data/restore"}
	want.Verbosity = VerbosityVerbose
	want.IncludePatterns = []string{"*.jpg"}
	want.ExcludePatterns = []string{"*.tmp"}

	if diff := cmp.Diff(want, tr.Job, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("job mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLine_DeleteHasNoDestinationOrTransfers(t *testing.T) {
	tr, ok := ParseLine(`rclone delete oldremote:logs --min-age 30d`)
	if !ok {
		t.Fatal("expected the line to be recognized")
	}

	job := tr.Job
	if job.Operation != OpDelete {
		t.Errorf("expected Delete, got %s", job.Operation)
	}
	if diff := cmp.Diff(PathRef(RemotePath{Remote: "oldremote", Path: "logs"}), job.Source); diff != "" {
		t.Errorf("source mismatch (-want +got):\n%s", diff)
	}
	if job.Destination != nil {
		t.Errorf("expected no destination, got %#v", job.Destination)
	}
	if job.MinAge != "30d" {
		t.Errorf("expected min-age 30d, got %q", job.MinAge)
	}

	args := BuildArgs(job)
	if diff := cmp.Diff([]string{"delete", "oldremote:logs", "--min-age", "30d"}, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
	for _, a := range args {
		if a == "--transfers" {
			t.Errorf("delete args must not contain --transfers: %v", args)
		}
	}
}

func TestParseLine_DeleteIgnoresTransfersAndExtraPositionals(t *testing.T) {
	tr, ok := ParseLine(`rclone delete remote:a remote:b --transfers 12`)
	if !ok {
		t.Fatal("expected the line to be recognized")
	}
	if tr.Job.Transfers != DefaultTransfers {
		t.Errorf("expected default transfers for delete, got %d", tr.Job.Transfers)
	}
	if tr.Job.Destination != nil {
		t.Errorf("expected no destination, got %#v", tr.Job.Destination)
	}
}

func TestParseLine_ConfigFlagDropped(t *testing.T) {
	tr, ok := ParseLine(`rclone copy src remote:dst --config="C:\secrets\rclone.conf"`)
	if !ok {
		t.Fatal("expected the line to be recognized")
	}

	if len(tr.Job.ExtraFlags) != 0 {
		t.Errorf("expected no extra flags, got %v", tr.Job.ExtraFlags)
	}
	if diff := cmp.Diff([]string{`C:\secrets\rclone.conf`}, tr.DroppedConfig); diff != "" {
		t.Errorf("dropped config mismatch (-want +got):\n%s", diff)
	}
	for _, a := range BuildArgs(tr.Job) {
		if strings.Contains(a, "config") {
			t.Errorf("config leaked into args: %v", BuildArgs(tr.Job))
		}
	}
}

func TestParseLine_UnknownFlagPreserved(t *testing.T) {
	tr, ok := ParseLine(`rclone copy src dst --fast-list`)
	if !ok {
		t.Fatal("expected the line to be recognized")
	}

	if diff := cmp.Diff([]string{"--fast-list"}, tr.Job.ExtraFlags); diff != "" {
		t.Errorf("extra flags mismatch (-want +got):\n%s", diff)
	}

	want := []string{"copy", "src", "dst", "--transfers", "4", "--fast-list"}
	if diff := cmp.Diff(want, BuildArgs(tr.Job)); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLine_MissingPositionals(t *testing.T) {
	tr, ok := ParseLine(`rclone move`)
	if !ok {
		t.Fatal("expected the line to be recognized")
	}
	if tr.Job.Source != nil || tr.Job.Destination != nil {
		t.Errorf("expected empty paths, got %#v and %#v", tr.Job.Source, tr.Job.Destination)
	}

	tr, ok = ParseLine(`rclone copy only-source`)
	if !ok {
		t.Fatal("expected the line to be recognized")
	}
	if diff := cmp.Diff(PathRef(LocalPath{Path: "only-source"}), tr.Job.Source); diff != "" {
		t.Errorf("source mismatch (-want +got):\n%s", diff)
	}
	if tr.Job.Destination != nil {
		t.Errorf("expected no destination, got %#v", tr.Job.Destination)
	}
}

func TestParseLine_Unrecognized(t *testing.T) {
	for _, line := range []string{"echo hello", "", "rclone", "rclone lsd remote:", "copy a b"} {
		if _, ok := ParseLine(line); ok {
			t.Errorf("expected %q not to be recognized", line)
		}
	}
}

func TestParseLine_LeavesRunHistoryUnset(t *testing.T) {
	tr, _ := ParseLine(`rclone sync a b`)
	if tr.Job.ID != "" || tr.Job.Name != "" {
		t.Errorf("expected no id or name, got %q / %q", tr.Job.ID, tr.Job.Name)
	}
	if tr.Job.LastRun != nil || tr.Job.LastStatus != StatusNotRun || tr.Job.LastError != "" {
		t.Errorf("expected default run history, got %v %s %q", tr.Job.LastRun, tr.Job.LastStatus, tr.Job.LastError)
	}
}

func TestTranslator_WithoutDriveLetters(t *testing.T) {
	tr, ok := NewTranslator(WithDriveLetters(false)).ParseLine(`rclone copy C:\src /dst`)
	if !ok {
		t.Fatal("expected the line to be recognized")
	}
	if diff := cmp.Diff(PathRef(RemotePath{Remote: "C", Path: `\src`}), tr.Job.Source); diff != "" {
		t.Errorf("source mismatch (-want +got):\n%s", diff)
	}
}

func TestImportLines(t *testing.T) {
	lines := []string{
		"@echo off",
		"",
		"rclone copy src1 dst1",
		`"C:\Program Files\rclone\rclone.exe" sync src remote:dst --config="C:\x\rclone.conf"`,
		"   ",
		"rem nothing to see",
		"rclone delete remote:old\r",
	}

	result := NewTranslator().ImportLines("nightly", lines)

	var names []string
	for _, j := range result.Jobs {
		names = append(names, j.Name)
	}
	if diff := cmp.Diff([]string{"nightly", "nightly-2", "nightly-3"}, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"@echo off", "rem nothing to see"}, result.SkippedLines); diff != "" {
		t.Errorf("skipped lines mismatch (-want +got):\n%s", diff)
	}

	if len(result.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", result.Warnings)
	}
	if !strings.Contains(result.Warnings[0], "nightly-2") || !strings.Contains(result.Warnings[0], `C:\x\rclone.conf`) {
		t.Errorf("unexpected warning %q", result.Warnings[0])
	}

	if got := result.Jobs[2].Source; got != (RemotePath{Remote: "remote", Path: "old"}) {
		t.Errorf("expected trailing carriage return to be trimmed, got %#v", got)
	}
}

func TestImportLines_UnrecognizedLineKeptVerbatim(t *testing.T) {
	result := NewTranslator().ImportLines("batch", []string{"echo hello"})

	if len(result.Jobs) != 0 {
		t.Errorf("expected no jobs, got %d", len(result.Jobs))
	}
	if diff := cmp.Diff([]string{"echo hello"}, result.SkippedLines); diff != "" {
		t.Errorf("skipped lines mismatch (-want +got):\n%s", diff)
	}
}

func TestImportLines_SkippedLineKeepsWhitespace(t *testing.T) {
	lines := []string{"    echo  indented\t", "\trclone sync a b  "}

	result := NewTranslator().ImportLines("batch", lines)

	if diff := cmp.Diff([]string{"    echo  indented\t"}, result.SkippedLines); diff != "" {
		t.Errorf("skipped lines mismatch (-want +got):\n%s", diff)
	}
	if len(result.Jobs) != 1 || RenderRef(result.Jobs[0].Destination) != "b" {
		t.Errorf("expected the indented invocation to be parsed, got %+v", result.Jobs)
	}
}

func TestTranslator_ConcurrentUse(t *testing.T) {
	tr := NewTranslator()
	line := `rclone sync "my remote:photos" D:\Photos --include *.jpg -vv --fast-list`
	want, _ := tr.ParseLine(line)

	var wg sync.WaitGroup
	errs := make(chan string, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, _ := tr.ParseLine(line)
			if diff := cmp.Diff(want, got); diff != "" {
				errs <- diff
			}
		}()
	}
	wg.Wait()
	close(errs)

	for diff := range errs {
		t.Errorf("concurrent parse differs:\n%s", diff)
	}
}
