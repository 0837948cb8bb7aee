package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"rcjobs/internal/adapters/tui/styles"
	"rcjobs/internal/application/commands"
	"rcjobs/internal/domain"
	"rcjobs/internal/ports"
)

const (
	addFieldLine = iota
	addFieldName
)

// AddModel is the view for pasting a command line as a new job
type AddModel struct {
	ViewState
	store      ports.JobStore
	translator *domain.Translator
	logDir     string
	form       *InputForm

	preview  string
	warnings []string
	valid    bool
}

// NewAddModel creates a new add view model
func NewAddModel(store ports.JobStore, translator *domain.Translator, logDir string) *AddModel {
	return &AddModel{
		store:      store,
		translator: translator,
		logDir:     logDir,
		form: NewInputForm(
			NewInputField("Command line", `rclone sync "C:\My Docs" gdrive:docs --transfers 8 -v`, 0),
			NewInputField("Name", "Job N", 100),
		),
	}
}

// Reset clears the form
func (m *AddModel) Reset() {
	m.form.Reset()
	m.ClearMessage()
	m.refreshPreview()
}

// Init initializes the add view
func (m *AddModel) Init() tea.Cmd {
	return m.form.Init()
}

// SetSize updates the view dimensions
func (m *AddModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.form.SetWidth(width)
}

// Update handles messages for the add view
func (m *AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case AddErrMsg:
		m.SetMessage(msg.Err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToJobsMsg{} }
		case key.Matches(msg, m.form.Keys.Submit):
			return m, m.submit()
		}
	}

	changed, cmd := m.form.Update(msg)
	if changed {
		m.ClearMessage()
		m.refreshPreview()
	}
	return m, cmd
}

func (m *AddModel) refreshPreview() {
	m.preview, m.warnings, m.valid = "", nil, false

	line := m.form.Value(addFieldLine)
	if line == "" {
		return
	}
	tr, ok := m.translator.ParseLine(line)
	if !ok {
		m.preview = "not an rclone copy, sync, move or delete command"
		return
	}
	m.valid = true
	m.preview = domain.CommandLine(tr.Job)
	for _, cfg := range tr.DroppedConfig {
		m.warnings = append(m.warnings, "--config "+cfg+" is ignored")
	}
}

func (m *AddModel) submit() tea.Cmd {
	line := m.form.Value(addFieldLine)
	name := m.form.Value(addFieldName)
	return func() tea.Msg {
		cmd := commands.NewAddJobCommand(m.store, m.translator, line, name, m.logDir)
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return AddErrMsg{Err: err}
		}
		return JobsChangedMsg{Message: result.Message}
	}
}

// AddErrMsg indicates the job could not be added
type AddErrMsg struct {
	Err error
}

// View renders the add view
func (m *AddModel) View() string {
	v := NewViewBuilder().
		Title("Add Job").
		Subtitle("Paste an rclone command line")

	v.Line(m.form.Render())

	if m.preview != "" {
		label := "Will run"
		text := styles.CommandLine.Render(m.preview)
		if !m.valid {
			label = "Preview"
			text = styles.ErrorMsg.Render(m.preview)
		}
		v.Line(RenderField(label, "")).Line(text)
		for _, w := range m.warnings {
			v.Line(styles.WarningMsg.Render("! " + w))
		}
		v.BlankLine()
	}

	return v.Message(m.Message, m.MessageErr).
		Line(strings.TrimSpace(m.form.RenderHelp())).
		String()
}
