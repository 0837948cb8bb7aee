package views

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rcjobs/internal/adapters/bolt"
	"rcjobs/internal/domain"
	"rcjobs/internal/ports"
)

type stubRunner struct {
	mu       sync.Mutex
	exitCode int
	calls    [][]string
}

func (r *stubRunner) Execute(_ context.Context, args []string) (ports.ExecResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, args)
	if r.exitCode != 0 {
		return ports.ExecResult{ExitCode: r.exitCode, Stderr: "boom"}, nil
	}
	return ports.ExecResult{Stdout: "ok"}, nil
}

func newStore(t *testing.T, jobs ...domain.Job) *bolt.Store {
	t.Helper()
	store, err := bolt.Open(filepath.Join(t.TempDir(), "jobs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	if len(jobs) > 0 {
		require.NoError(t, store.SaveAll(context.Background(), jobs))
	}
	return store
}

func job(id, name string) domain.Job {
	j := domain.NewJob(domain.OpSync)
	j.ID = id
	j.Name = name
	j.Source = domain.LocalPath{Path: "/data/" + name}
	j.Destination = domain.RemotePath{Remote: "gdrive", Path: name}
	return j
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain runs cmd and any batched commands, returning the produced messages
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, drain(c)...)
		}
		return msgs
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func only[T tea.Msg](t *testing.T, msgs []tea.Msg) T {
	t.Helper()
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v
		}
	}
	var zero T
	t.Fatalf("no %T among %#v", zero, msgs)
	return zero
}

func loadedList(t *testing.T, store ports.JobStore, runner ports.ProcessRunner) *JobListModel {
	t.Helper()
	m := NewJobListModel(store, runner, 2)
	m.SetSize(100, 40)
	for _, msg := range drain(m.Init()) {
		m.Update(msg)
	}
	require.True(t, m.loaded)
	return m
}

func TestJobList_LoadsAndRendersJobs(t *testing.T) {
	store := newStore(t, job("1", "photos"), job("2", "documents"))
	m := loadedList(t, store, &stubRunner{})

	view := m.View()
	assert.Contains(t, view, "photos")
	assert.Contains(t, view, "documents")
	assert.Contains(t, view, "2 rclone job(s)")
	assert.Contains(t, view, `rclone sync /data/photos gdrive:photos`)
}

func TestJobList_EmptyHint(t *testing.T) {
	m := loadedList(t, newStore(t), &stubRunner{})
	assert.Contains(t, m.View(), "No jobs yet")
}

func TestJobList_CursorMovement(t *testing.T) {
	m := loadedList(t, newStore(t, job("1", "a"), job("2", "b"), job("3", "c")), &stubRunner{})

	m.Update(keyMsg("j"))
	m.Update(keyMsg("j"))
	m.Update(keyMsg("j"))
	assert.Equal(t, 2, m.cursor)

	m.Update(keyMsg("k"))
	assert.Equal(t, 1, m.cursor)
}

func TestJobList_Paging(t *testing.T) {
	var jobs []domain.Job
	for i := range 12 {
		jobs = append(jobs, job(string(rune('a'+i)), string(rune('a'+i))))
	}
	m := NewJobListModel(newStore(t, jobs...), &stubRunner{}, 1)
	m.SetSize(100, 19)
	for _, msg := range drain(m.Init()) {
		m.Update(msg)
	}
	require.Equal(t, 5, m.pages.PerPage)
	require.Equal(t, 3, m.pages.TotalPages)

	m.Update(keyMsg("l"))
	assert.Equal(t, 1, m.pages.Page)
	assert.Equal(t, 5, m.cursor)

	for range 5 {
		m.Update(keyMsg("j"))
	}
	assert.Equal(t, 2, m.pages.Page)
}

func TestJobList_RunSelectedJob(t *testing.T) {
	store := newStore(t, job("1", "photos"))
	runner := &stubRunner{}
	m := loadedList(t, store, runner)

	_, cmd := m.Update(keyMsg("r"))
	require.Contains(t, m.running, "1")
	assert.Contains(t, m.View(), "running")

	finished := only[runFinishedMsg](t, drain(cmd))
	assert.Equal(t, domain.StatusSuccess, finished.status)

	_, cmd = m.Update(finished)
	assert.Empty(t, m.running)
	assert.Equal(t, "photos: Success", m.Message)
	m.Update(only[jobsLoadedMsg](t, drain(cmd)))

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "sync", runner.calls[0][0])
	assert.Equal(t, domain.StatusSuccess, m.jobs[0].LastStatus)
}

func TestJobList_RunFailureShowsExitCode(t *testing.T) {
	m := loadedList(t, newStore(t, job("1", "photos")), &stubRunner{exitCode: 3})

	_, cmd := m.Update(keyMsg("r"))
	m.Update(only[runFinishedMsg](t, drain(cmd)))

	assert.True(t, m.MessageErr)
	assert.Equal(t, "photos failed with exit code 3", m.Message)
}

func TestJobList_RunTwiceIsRejected(t *testing.T) {
	m := loadedList(t, newStore(t, job("1", "photos")), &stubRunner{})

	m.Update(keyMsg("r"))
	_, cmd := m.Update(keyMsg("r"))

	assert.Nil(t, cmd)
	assert.Equal(t, "photos is already running", m.Message)
}

func TestJobList_RunAll(t *testing.T) {
	store := newStore(t, job("1", "a"), job("2", "b"))
	runner := &stubRunner{}
	m := loadedList(t, store, runner)

	_, cmd := m.Update(keyMsg("R"))
	assert.Len(t, m.running, 2)

	finished := only[runAllFinishedMsg](t, drain(cmd))
	m.Update(finished)

	assert.Empty(t, m.running)
	assert.Equal(t, "Ran 2 jobs: 2 succeeded, 0 failed", m.Message)
	assert.Len(t, runner.calls, 2)
}

func TestJobList_CopyCommandLine(t *testing.T) {
	var copied string
	prev := copyToClipboard
	copyToClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { copyToClipboard = prev })

	m := loadedList(t, newStore(t, job("1", "photos")), &stubRunner{})
	m.Update(keyMsg("c"))

	assert.Equal(t, "rclone sync /data/photos gdrive:photos --transfers 4", copied)
	assert.Equal(t, "Copied command line of photos", m.Message)
}

func TestJobList_OpenLog(t *testing.T) {
	withLog := job("2", "logged")
	withLog.CreateLogFile = true
	withLog.LogFilePath = "/var/log/rclone/logged.log"
	m := loadedList(t, newStore(t, job("1", "plain"), withLog), &stubRunner{})

	_, cmd := m.Update(keyMsg("o"))
	assert.Nil(t, cmd)
	assert.Equal(t, "plain has no log file", m.Message)

	m.Update(keyMsg("j"))
	_, cmd = m.Update(keyMsg("o"))
	require.NotNil(t, cmd)
	assert.Equal(t, OpenLogMsg{Path: "/var/log/rclone/logged.log"}, cmd())
}

func TestJobList_SwitchMessages(t *testing.T) {
	j := job("1", "photos")
	m := loadedList(t, newStore(t, j), &stubRunner{})

	tests := map[string]tea.Msg{
		"a": SwitchToAddMsg{},
		"?": SwitchToHelpMsg{},
	}
	for k, want := range tests {
		_, cmd := m.Update(keyMsg(k))
		require.NotNil(t, cmd, k)
		assert.Equal(t, want, cmd(), k)
	}

	_, cmd := m.Update(keyMsg("e"))
	assert.Equal(t, "photos", cmd().(SwitchToRenameMsg).Job.Name)

	_, cmd = m.Update(keyMsg("d"))
	assert.Equal(t, "1", cmd().(SwitchToDeleteMsg).Job.ID)
}

func TestAddModel_PreviewAndSubmit(t *testing.T) {
	store := newStore(t)
	m := NewAddModel(store, domain.NewTranslator(), "")
	m.Reset()

	m.Update(keyMsg(`rclone copy C:\src remote:dst --config=x.conf`))
	assert.True(t, m.valid)
	assert.Contains(t, m.View(), `rclone copy C:\src remote:dst --transfers 4`)
	assert.Contains(t, m.View(), "--config x.conf is ignored")

	_, cmd := m.Update(keyMsg("enter"))
	changed := only[JobsChangedMsg](t, drain(cmd))
	assert.Contains(t, changed.Message, "Added Job 1")

	jobs, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Job 1", jobs[0].Name)
}

func TestAddModel_RejectsUnrecognizedLine(t *testing.T) {
	m := NewAddModel(newStore(t), domain.NewTranslator(), "")
	m.Reset()

	m.Update(keyMsg("echo hello"))
	assert.False(t, m.valid)

	_, cmd := m.Update(keyMsg("enter"))
	addErr := only[AddErrMsg](t, drain(cmd))
	m.Update(addErr)
	assert.True(t, m.MessageErr)
}

func TestRenameModel_Submit(t *testing.T) {
	store := newStore(t, job("1", "photos"), job("2", "docs"))
	m := NewRenameModel(store)
	m.SetJob(job("1", "photos"))

	// SetJob prefills the current name
	for range len("photos") {
		m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	m.Update(keyMsg("docs"))
	_, cmd := m.Update(keyMsg("enter"))
	m.Update(only[RenameErrMsg](t, drain(cmd)))
	assert.Contains(t, m.Message, "already exists")

	for range len("docs") {
		m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	m.Update(keyMsg("pictures"))
	_, cmd = m.Update(keyMsg("enter"))
	only[JobsChangedMsg](t, drain(cmd))

	got, err := store.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "pictures", got.Name)
}

func TestDeleteModel_ConfirmAndCancel(t *testing.T) {
	store := newStore(t, job("1", "photos"))
	m := NewDeleteModel(store)
	m.SetTarget(job("1", "photos"))
	assert.Contains(t, m.View(), "photos")

	_, cmd := m.Update(keyMsg("n"))
	assert.Equal(t, SwitchToJobsMsg{}, cmd())

	_, cmd = m.Update(keyMsg("y"))
	changed := only[JobsChangedMsg](t, drain(cmd))
	assert.Equal(t, "Deleted photos", changed.Message)

	got, err := store.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRenderPaths(t *testing.T) {
	assert.Equal(t, "/data/photos → gdrive:photos", RenderPaths(job("1", "photos")))

	del := domain.NewJob(domain.OpDelete)
	del.Source = domain.RemotePath{Remote: "old", Path: "logs"}
	assert.Equal(t, "old:logs", RenderPaths(del))
}

func TestRenderRunInfo(t *testing.T) {
	j := job("1", "photos")
	assert.Contains(t, RenderRunInfo(j), "Never run")

	ran := time.Date(2024, 3, 1, 2, 0, 0, 0, time.Local)
	j.LastRun = &ran
	j.LastStatus = domain.StatusFailed
	j.LastError = "directory not found\nmore detail"

	info := RenderRunInfo(j)
	assert.Contains(t, info, "2024-03-01 02:00:00")
	assert.Contains(t, info, "Failed")
	assert.Contains(t, info, "directory not found")
	assert.NotContains(t, info, "more detail")
}
