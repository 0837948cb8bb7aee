package views

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"rcjobs/internal/adapters/tui/styles"
	"rcjobs/internal/application/commands"
	"rcjobs/internal/ports"
)

// DeleteModel is the model for the delete confirmation view
type DeleteModel struct {
	ConfirmationModel
	store ports.JobStore
}

// NewDeleteModel creates a new delete view model
func NewDeleteModel(store ports.JobStore) *DeleteModel {
	return &DeleteModel{
		ConfirmationModel: NewConfirmationModel(),
		store:             store,
	}
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DeleteErrMsg:
		m.SetMessage(msg.Err.Error(), true)
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg,
			m.doDelete,
			func() tea.Msg { return SwitchToJobsMsg{} },
		)
		if handled {
			return m, cmd
		}
	}
	return m, nil
}

func (m *DeleteModel) doDelete() tea.Msg {
	if m.Target == nil {
		return DeleteErrMsg{Err: fmt.Errorf("no job selected")}
	}

	result, err := commands.NewDeleteCommand(m.store, m.Target.ID).Execute(context.Background())
	if err != nil {
		return DeleteErrMsg{Err: err}
	}
	return JobsChangedMsg{Message: result.Message}
}

// DeleteErrMsg indicates an error during deletion
type DeleteErrMsg struct {
	Err error
}

// View renders the delete confirmation view
func (m *DeleteModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Delete Job"))
	b.WriteString("\n\n")

	b.WriteString(RenderTargetInfo(m.Target, "Delete"))
	b.WriteString("\n\n")

	b.WriteString(styles.MutedText.Render("  Only the job is removed. No files are touched."))
	b.WriteString("\n\n")

	if m.Message != "" {
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n\n")
	}

	b.WriteString(RenderConfirmPrompt("Are you sure?"))

	return styles.App.Render(b.String())
}
