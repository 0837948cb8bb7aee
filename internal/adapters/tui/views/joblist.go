package views

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"rcjobs/internal/adapters/tui/styles"
	"rcjobs/internal/application"
	"rcjobs/internal/application/commands"
	"rcjobs/internal/domain"
	"rcjobs/internal/ports"
)

// JobListKeyMap defines key bindings for the job list
type JobListKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Run      key.Binding
	RunAll   key.Binding
	Cancel   key.Binding
	Add      key.Binding
	Rename   key.Binding
	Delete   key.Binding
	Copy     key.Binding
	OpenLog  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var JobListKeys = JobListKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left", "pgup"),
		key.WithHelp("h/←", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right", "pgdown"),
		key.WithHelp("l/→", "next page"),
	),
	Run: key.NewBinding(
		key.WithKeys("enter", "r"),
		key.WithHelp("r", "run"),
	),
	RunAll: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "run all"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "cancel run"),
	),
	Add: key.NewBinding(
		key.WithKeys("a", "n"),
		key.WithHelp("a", "add"),
	),
	Rename: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "rename"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c", "y"),
		key.WithHelp("c", "copy command"),
	),
	OpenLog: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open log"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// copyToClipboard is replaced in tests
var copyToClipboard = clipboard.WriteAll

// JobListModel is the main view: the stored jobs and their last runs
type JobListModel struct {
	ViewState
	store    ports.JobStore
	runner   ports.ProcessRunner
	parallel int

	jobs    []domain.Job
	loaded  bool
	cursor  int
	pages   paginator.Model
	spinner spinner.Model

	// running maps job IDs to the cancel func of their run
	running  map[string]context.CancelFunc
	spinning bool
}

// NewJobListModel creates a new job list model
func NewJobListModel(store ports.JobStore, runner ports.ProcessRunner, parallel int) *JobListModel {
	p := paginator.New()
	p.Type = paginator.Dots
	p.PerPage = 10

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.StatusStyle(domain.StatusRunning)

	return &JobListModel{
		store:    store,
		runner:   runner,
		parallel: max(parallel, 1),
		pages:    p,
		spinner:  s,
		running:  make(map[string]context.CancelFunc),
	}
}

// Init loads the jobs
func (m *JobListModel) Init() tea.Cmd {
	return m.loadJobs
}

// Reload reloads the job list from the store
func (m *JobListModel) Reload() tea.Cmd {
	return m.loadJobs
}

func (m *JobListModel) loadJobs() tea.Msg {
	jobs, err := commands.NewListJobsCommand(m.store).Execute(context.Background())
	if err != nil {
		return errMsg{err}
	}
	return jobsLoadedMsg{jobs}
}

type jobsLoadedMsg struct {
	jobs []domain.Job
}

type errMsg struct {
	err error
}

type runFinishedMsg struct {
	id     string
	name   string
	status domain.JobStatus
	err    error
}

type runAllFinishedMsg struct {
	ids    []string
	result *commands.RunAllResult
	err    error
}

// IsJobListMsg reports whether msg is addressed to the job list even when
// another view is active
func IsJobListMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case jobsLoadedMsg, errMsg, runFinishedMsg, runAllFinishedMsg, spinner.TickMsg:
		return true
	}
	return false
}

// SetSize updates the view dimensions and page size
func (m *JobListModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	// title, detail pane and help take about 14 lines
	m.pages.PerPage = max(height-14, 3)
	m.pages.SetTotalPages(len(m.jobs))
	m.syncPage()
}

// Update handles messages for the job list
func (m *JobListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case jobsLoadedMsg:
		m.jobs = msg.jobs
		m.loaded = true
		m.pages.SetTotalPages(len(m.jobs))
		m.cursor = min(m.cursor, max(len(m.jobs)-1, 0))
		m.syncPage()
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case JobsChangedMsg:
		m.SetMessage(msg.Message, false)
		return m, m.loadJobs

	case runFinishedMsg:
		delete(m.running, msg.id)
		m.reportRun(msg)
		return m, m.loadJobs

	case runAllFinishedMsg:
		for _, id := range msg.ids {
			delete(m.running, id)
		}
		switch {
		case msg.result != nil:
			m.SetMessage(fmt.Sprintf("Ran %d jobs: %d succeeded, %d failed",
				len(msg.result.Outcomes), msg.result.Succeeded, msg.result.Failed), msg.result.Failed > 0)
		case msg.err != nil:
			m.SetMessage(msg.err.Error(), true)
		}
		return m, m.loadJobs

	case spinner.TickMsg:
		if len(m.running) == 0 {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *JobListModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.ClearMessage()

	switch {
	case key.Matches(msg, JobListKeys.Quit):
		for _, cancel := range m.running {
			cancel()
		}
		return tea.Quit

	case key.Matches(msg, JobListKeys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.syncPage()
		}

	case key.Matches(msg, JobListKeys.Down):
		if m.cursor < len(m.jobs)-1 {
			m.cursor++
			m.syncPage()
		}

	case key.Matches(msg, JobListKeys.PrevPage):
		m.pages.PrevPage()
		m.cursor, _ = m.pages.GetSliceBounds(len(m.jobs))

	case key.Matches(msg, JobListKeys.NextPage):
		m.pages.NextPage()
		m.cursor, _ = m.pages.GetSliceBounds(len(m.jobs))

	case key.Matches(msg, JobListKeys.Add):
		return func() tea.Msg { return SwitchToAddMsg{} }

	case key.Matches(msg, JobListKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }

	case key.Matches(msg, JobListKeys.RunAll):
		return m.runAll()
	}

	job, ok := m.selected()
	if !ok {
		return nil
	}

	switch {
	case key.Matches(msg, JobListKeys.Run):
		return m.runJob(job)

	case key.Matches(msg, JobListKeys.Cancel):
		if cancel, ok := m.running[job.ID]; ok {
			cancel()
			m.SetMessage("Cancelling "+job.Name, false)
		}

	case key.Matches(msg, JobListKeys.Rename):
		return func() tea.Msg { return SwitchToRenameMsg{Job: job} }

	case key.Matches(msg, JobListKeys.Delete):
		if _, ok := m.running[job.ID]; ok {
			m.SetMessage(job.Name+" is running", true)
			return nil
		}
		return func() tea.Msg { return SwitchToDeleteMsg{Job: job} }

	case key.Matches(msg, JobListKeys.Copy):
		if err := copyToClipboard(domain.CommandLine(job)); err != nil {
			m.SetMessage("Clipboard unavailable: "+err.Error(), true)
			return nil
		}
		m.SetMessage("Copied command line of "+job.Name, false)

	case key.Matches(msg, JobListKeys.OpenLog):
		if !job.CreateLogFile || job.LogFilePath == "" {
			m.SetMessage(job.Name+" has no log file", true)
			return nil
		}
		return func() tea.Msg { return OpenLogMsg{Path: job.LogFilePath} }
	}

	return nil
}

func (m *JobListModel) runJob(job domain.Job) tea.Cmd {
	if _, ok := m.running[job.ID]; ok {
		m.SetMessage(job.Name+" is already running", true)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.running[job.ID] = cancel

	run := func() tea.Msg {
		defer cancel()
		result, err := commands.NewRunJobCommand(m.store, m.runner, job.ID).Execute(ctx)
		msg := runFinishedMsg{id: job.ID, name: job.Name, err: err}
		if result != nil {
			msg.status = result.Job.LastStatus
		}
		return msg
	}
	return tea.Batch(run, m.startSpinner())
}

func (m *JobListModel) runAll() tea.Cmd {
	if len(m.running) > 0 {
		m.SetMessage("Wait for running jobs to finish", true)
		return nil
	}
	if len(m.jobs) == 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	ids := make([]string, len(m.jobs))
	for i, j := range m.jobs {
		ids[i] = j.ID
		m.running[j.ID] = cancel
	}

	run := func() tea.Msg {
		defer cancel()
		result, err := commands.NewRunAllCommand(m.store, m.runner, m.parallel).Execute(ctx)
		return runAllFinishedMsg{ids: ids, result: result, err: err}
	}
	return tea.Batch(run, m.startSpinner())
}

func (m *JobListModel) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *JobListModel) reportRun(msg runFinishedMsg) {
	var runErr *application.RunError
	switch {
	case errors.As(msg.err, &runErr) && runErr.Err == nil:
		m.SetMessage(fmt.Sprintf("%s failed with exit code %d", msg.name, runErr.ExitCode), true)
	case msg.err != nil:
		m.SetMessage(msg.err.Error(), true)
	default:
		m.SetMessage(fmt.Sprintf("%s: %s", msg.name, msg.status), false)
	}
}

func (m *JobListModel) selected() (domain.Job, bool) {
	if m.cursor >= 0 && m.cursor < len(m.jobs) {
		return m.jobs[m.cursor], true
	}
	return domain.Job{}, false
}

// syncPage moves the paginator to the page holding the cursor
func (m *JobListModel) syncPage() {
	if m.pages.PerPage > 0 {
		m.pages.Page = m.cursor / m.pages.PerPage
	}
}

// View renders the job list
func (m *JobListModel) View() string {
	if !m.loaded {
		return styles.App.Render("Loading...")
	}

	v := NewViewBuilder().
		Title("rcjobs").
		Subtitle(fmt.Sprintf("%d rclone job(s)", len(m.jobs)))

	if len(m.jobs) == 0 {
		v.Muted("No jobs yet. Press a to paste an rclone command line.").BlankLine()
	}

	start, end := m.pages.GetSliceBounds(len(m.jobs))
	for i := start; i < end; i++ {
		v.Line(m.renderRow(m.jobs[i], i == m.cursor))
	}
	if m.pages.TotalPages > 1 {
		v.Line(m.pages.View())
	}

	if job, ok := m.selected(); ok {
		v.BlankLine().
			Line(styles.CommandLine.Render(domain.CommandLine(job))).
			Line(RenderRunInfo(job))
	}

	v.BlankLine().Message(m.Message, m.MessageErr)

	return v.Help(
		JobListKeys.Run, JobListKeys.RunAll, JobListKeys.Add, JobListKeys.Copy,
		JobListKeys.Delete, JobListKeys.Help, JobListKeys.Quit,
	).String()
}

func (m *JobListModel) renderRow(job domain.Job, selected bool) string {
	name := padRight(job.Name, 20)
	if selected {
		name = styles.JobSelected.Render(name)
	} else {
		name = styles.JobRow.Render(name)
	}

	var status string
	if _, ok := m.running[job.ID]; ok {
		status = m.spinner.View() + " running"
	} else {
		status = styles.StatusStyle(job.LastStatus).Render(job.LastStatus.String())
	}

	return fmt.Sprintf("%s %s %s  %s", name, styles.OperationStyle(job.Operation).Render(job.Operation.Keyword()), status, styles.MutedText.Render(RenderPaths(job)))
}

func padRight(s string, length int) string {
	if len([]rune(s)) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len([]rune(s)))
}
