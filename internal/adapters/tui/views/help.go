package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"rcjobs/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, HelpKeys.Close) {
		return m, func() tea.Msg { return SwitchToJobsMsg{} }
	}
	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("rcjobs Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Saved rclone jobs"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Navigation"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move up/down"))
	b.WriteString(helpLine("h / l / ← / →", "Previous/next page"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Jobs"))
	b.WriteString("\n")
	b.WriteString(helpLine("r / Enter", "Run selected job"))
	b.WriteString(helpLine("R", "Run all jobs"))
	b.WriteString(helpLine("x", "Cancel the selected run"))
	b.WriteString(helpLine("a", "Add a job from a command line"))
	b.WriteString(helpLine("e", "Rename selected job"))
	b.WriteString(helpLine("d", "Delete selected job"))
	b.WriteString(helpLine("c", "Copy the rclone command line"))
	b.WriteString(helpLine("o", "Open the job's log file"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Recognized flags"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  --transfers --log-file --min-age --include --exclude -q -v -vv"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  Other flags are kept verbatim. --config is replaced by the configured one."))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}
