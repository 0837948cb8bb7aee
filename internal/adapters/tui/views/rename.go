package views

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"rcjobs/internal/application/commands"
	"rcjobs/internal/domain"
	"rcjobs/internal/ports"
)

// RenameModel is the view for renaming a job
type RenameModel struct {
	ViewState
	store ports.JobStore
	job   domain.Job
	form  *InputForm
}

// NewRenameModel creates a new rename view model
func NewRenameModel(store ports.JobStore) *RenameModel {
	return &RenameModel{
		store: store,
		form:  NewInputForm(NewInputField("New name", "", 100)),
	}
}

// SetJob prepares the form for job
func (m *RenameModel) SetJob(job domain.Job) {
	m.job = job
	m.ClearMessage()
	m.form.Reset()
	m.form.SetValue(0, job.Name)
	m.form.Fields[0].Input.CursorEnd()
}

// Init initializes the rename view
func (m *RenameModel) Init() tea.Cmd {
	return m.form.Init()
}

// SetSize updates the view dimensions
func (m *RenameModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.form.SetWidth(width)
}

// Update handles messages for the rename view
func (m *RenameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RenameErrMsg:
		m.SetMessage(msg.Err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToJobsMsg{} }
		case key.Matches(msg, m.form.Keys.Submit):
			id, name := m.job.ID, m.form.Value(0)
			return m, func() tea.Msg {
				result, err := commands.NewRenameCommand(m.store, id, name).Execute(context.Background())
				if err != nil {
					return RenameErrMsg{Err: err}
				}
				return JobsChangedMsg{Message: result.Message}
			}
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

// RenameErrMsg indicates the rename failed
type RenameErrMsg struct {
	Err error
}

// View renders the rename view
func (m *RenameModel) View() string {
	return NewViewBuilder().
		Title("Rename Job").
		Subtitle(m.job.Name).
		Line(m.form.Render()).
		Message(m.Message, m.MessageErr).
		Line(m.form.RenderHelp()).
		String()
}
