package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"rcjobs/internal/adapters/tui/styles"
)

// InputFormKeyMap defines key bindings for input forms
type InputFormKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Tab    key.Binding
}

// DefaultInputFormKeys returns the default input form key bindings
var DefaultInputFormKeys = InputFormKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "next field"),
	),
}

// InputField represents a single input field with label and textinput
type InputField struct {
	Label string
	Input textinput.Model
}

// NewInputField creates a new input field with the given label and placeholder
func NewInputField(label, placeholder string, charLimit int) InputField {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = charLimit
	return InputField{
		Label: label,
		Input: input,
	}
}

// InputForm manages multiple text input fields with focus handling
type InputForm struct {
	Fields       []InputField
	FocusedField int
	Keys         InputFormKeyMap
}

// NewInputForm creates a new input form with the first field focused
func NewInputForm(fields ...InputField) *InputForm {
	form := &InputForm{
		Fields: fields,
		Keys:   DefaultInputFormKeys,
	}
	if len(fields) > 0 {
		form.Fields[0].Input.Focus()
	}
	return form
}

// Init returns the blink command for the focused input
func (f *InputForm) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards msg to the focused field. It reports whether any field
// value changed so callers can refresh previews.
func (f *InputForm) Update(msg tea.Msg) (changed bool, cmd tea.Cmd) {
	if len(f.Fields) == 0 {
		return false, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, f.Keys.Tab) {
		f.focus((f.FocusedField + 1) % len(f.Fields))
		return false, nil
	}

	field := &f.Fields[f.FocusedField]
	before := field.Input.Value()
	field.Input, cmd = field.Input.Update(msg)
	return field.Input.Value() != before, cmd
}

func (f *InputForm) focus(index int) {
	if index < 0 || index >= len(f.Fields) {
		return
	}
	f.Fields[f.FocusedField].Input.Blur()
	f.FocusedField = index
	f.Fields[index].Input.Focus()
}

// Value returns the trimmed value of a field by index
func (f *InputForm) Value(index int) string {
	if index < 0 || index >= len(f.Fields) {
		return ""
	}
	return strings.TrimSpace(f.Fields[index].Input.Value())
}

// SetValue sets the value of a field by index
func (f *InputForm) SetValue(index int, value string) {
	if index < 0 || index >= len(f.Fields) {
		return
	}
	f.Fields[index].Input.SetValue(value)
}

// Reset clears all fields and focuses the first one
func (f *InputForm) Reset() {
	for i := range f.Fields {
		f.Fields[i].Input.SetValue("")
		f.Fields[i].Input.Blur()
	}
	f.FocusedField = 0
	if len(f.Fields) > 0 {
		f.Fields[0].Input.Focus()
	}
}

// SetWidth sizes every input to the available width
func (f *InputForm) SetWidth(width int) {
	// border and padding take 4 columns, the prompt 2
	w := max(width-10, 20)
	for i := range f.Fields {
		f.Fields[i].Input.Width = w
	}
}

// Render renders every field
func (f *InputForm) Render() string {
	var b strings.Builder
	for i, field := range f.Fields {
		b.WriteString(styles.InputLabel.Render(field.Label))
		b.WriteString("\n")
		style := styles.InputField
		if i == f.FocusedField {
			style = styles.InputFocused
		}
		b.WriteString(style.Render(field.Input.View()))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderHelp renders the help text for the form
func (f *InputForm) RenderHelp() string {
	bindings := []key.Binding{f.Keys.Submit, f.Keys.Cancel}
	if len(f.Fields) > 1 {
		bindings = append([]key.Binding{f.Keys.Tab}, bindings...)
	}
	return RenderHelpLine(bindings...)
}
