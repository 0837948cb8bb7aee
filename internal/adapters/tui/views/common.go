package views

import "rcjobs/internal/domain"

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Messages for view switching
type (
	SwitchToAddMsg    struct{}
	SwitchToHelpMsg   struct{}
	SwitchToJobsMsg   struct{}
	SwitchToRenameMsg struct{ Job domain.Job }
	SwitchToDeleteMsg struct{ Job domain.Job }
)

// JobsChangedMsg asks the job list to reload and show Message
type JobsChangedMsg struct {
	Message string
}

// OpenLogMsg asks the app to open a log file in the editor
type OpenLogMsg struct {
	Path string
}
