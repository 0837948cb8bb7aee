package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"rcjobs/internal/adapters/tui/styles"
	"rcjobs/internal/domain"
)

const timeLayout = "2006-01-02 15:04:05"

// RenderHelpLine renders key bindings as "key desc" pairs separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage styles a status message, red for errors and green otherwise
func RenderMessage(message string, isError bool) string {
	switch {
	case message == "":
		return ""
	case isError:
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderField renders a "label: value" pair
func RenderField(label, value string) string {
	return styles.InputLabel.Render(label+":") + " " + value
}

// RenderPaths renders "source → destination", or just the target for delete
func RenderPaths(job domain.Job) string {
	if !job.Operation.IsBinary() {
		return domain.RenderRef(job.Source)
	}
	return domain.RenderRef(job.Source) + " → " + domain.RenderRef(job.Destination)
}

// RenderRunInfo renders the last run time, status and the first line of the
// last error. Jobs that never ran render as a muted note.
func RenderRunInfo(job domain.Job) string {
	if job.LastRun == nil {
		return styles.MutedText.Render("Never run")
	}

	status := styles.StatusStyle(job.LastStatus).Render(job.LastStatus.String())
	info := RenderField("Last run", job.LastRun.Local().Format(timeLayout)) + "  " + status
	if job.LastError != "" {
		firstLine, _, _ := strings.Cut(job.LastError, "\n")
		info += "\n" + styles.ErrorMsg.Render(firstLine)
	}
	return info
}

// ViewBuilder assembles a view top to bottom inside the app frame
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

func (v *ViewBuilder) Title(title string) *ViewBuilder {
	return v.Line(styles.Title.Render(title))
}

// Subtitle is followed by a blank line
func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	return v.Line(styles.Subtitle.Render(subtitle)).BlankLine()
}

func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteByte('\n')
	return v
}

func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteByte('\n')
	return v
}

func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	return v.Line(styles.MutedText.Render(text))
}

// Message adds the view's status message, if any
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	return v.Line(RenderMessage(message, isError)).BlankLine()
}

// Help ends the view with a key help line
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
