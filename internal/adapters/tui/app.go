package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"rcjobs/internal/adapters/tui/views"
	"rcjobs/internal/domain"
	"rcjobs/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewJobs ViewState = iota
	ViewAdd
	ViewRename
	ViewDelete
	ViewHelp
)

// Options wires the TUI to the rest of the application
type Options struct {
	Store      ports.JobStore
	Translator *domain.Translator
	Runner     ports.ProcessRunner
	Editor     ports.EditorOpener
	LogDir     string
	Parallel   int
}

// App is the main TUI application model
type App struct {
	editor ports.EditorOpener

	state  ViewState
	jobs   *views.JobListModel
	add    *views.AddModel
	rename *views.RenameModel
	delete *views.DeleteModel
	help   *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(opts Options) *App {
	return &App{
		editor: opts.Editor,
		state:  ViewJobs,
		jobs:   views.NewJobListModel(opts.Store, opts.Runner, opts.Parallel),
		add:    views.NewAddModel(opts.Store, opts.Translator, opts.LogDir),
		rename: views.NewRenameModel(opts.Store),
		delete: views.NewDeleteModel(opts.Store),
		help:   views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.jobs.Init()
}

// State returns the active view
func (a *App) State() ViewState {
	return a.state
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.jobs.SetSize(msg.Width, msg.Height)
		a.add.SetSize(msg.Width, msg.Height)
		a.rename.SetSize(msg.Width, msg.Height)
		a.delete.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToAddMsg:
		a.state = ViewAdd
		a.add.Reset()
		return a, a.add.Init()

	case views.SwitchToRenameMsg:
		a.state = ViewRename
		a.rename.SetJob(msg.Job)
		return a, a.rename.Init()

	case views.SwitchToDeleteMsg:
		a.state = ViewDelete
		a.delete.SetTarget(msg.Job)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToJobsMsg:
		a.state = ViewJobs
		return a, a.jobs.Reload()

	case views.JobsChangedMsg:
		a.state = ViewJobs
		_, cmd := a.jobs.Update(msg)
		return a, cmd

	case views.OpenLogMsg:
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		if msg.err != nil {
			a.jobs.SetMessage(msg.err.Error(), true)
		}
		return a, nil
	}

	// Runs finish while other views are open; the job list always sees them
	if a.state != ViewJobs && views.IsJobListMsg(msg) {
		_, cmd := a.jobs.Update(msg)
		return a, cmd
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewJobs:
		_, cmd = a.jobs.Update(msg)
	case ViewAdd:
		_, cmd = a.add.Update(msg)
	case ViewRename:
		_, cmd = a.rename.Update(msg)
	case ViewDelete:
		_, cmd = a.delete.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewAdd:
		return a.add.View()
	case ViewRename:
		return a.rename.View()
	case ViewDelete:
		return a.delete.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.jobs.View()
	}
}
