package ports

import "os/exec"

// EditorOpener opens job log files in an external editor or pager
type EditorOpener interface {
	// OpenFile opens path and waits for the editor to exit
	OpenFile(path string) error

	// Command returns an exec.Cmd for opening path, for use with
	// bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)
}
