package styles

import (
	"github.com/charmbracelet/lipgloss"

	"rcjobs/internal/domain"
)

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	Info      = lipgloss.Color("#60A5FA") // Blue
	White     = lipgloss.Color("#FFFFFF")

	// Operation colors
	OpCopy   = lipgloss.Color("#60A5FA")
	OpSync   = lipgloss.Color("#8B5CF6")
	OpMove   = lipgloss.Color("#F97316")
	OpDelete = lipgloss.Color("#EF4444")

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Job list
	JobRow = lipgloss.NewStyle()

	JobSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	CommandLine = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(Muted).
			PaddingLeft(1)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	WarningMsg = lipgloss.NewStyle().
			Foreground(Warning)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// OperationStyle returns the badge style for an operation
func OperationStyle(op domain.Operation) lipgloss.Style {
	color := Primary
	switch op {
	case domain.OpCopy:
		color = OpCopy
	case domain.OpSync:
		color = OpSync
	case domain.OpMove:
		color = OpMove
	case domain.OpDelete:
		color = OpDelete
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Width(7)
}

// StatusStyle returns the style for a last-run status
func StatusStyle(s domain.JobStatus) lipgloss.Style {
	switch s {
	case domain.StatusSuccess:
		return lipgloss.NewStyle().Foreground(Secondary)
	case domain.StatusFailed:
		return lipgloss.NewStyle().Foreground(Error)
	case domain.StatusRunning:
		return lipgloss.NewStyle().Foreground(Info)
	case domain.StatusCancelled:
		return lipgloss.NewStyle().Foreground(Warning)
	}
	return MutedText
}
