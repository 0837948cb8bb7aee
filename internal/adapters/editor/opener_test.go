package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpener_CommandUsesConfiguredEditor(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "job.log")
	require.NoError(t, os.WriteFile(logFile, []byte("done\n"), 0o644))

	cmd, err := NewOpener(WithCommand("code --wait")).Command(logFile)
	require.NoError(t, err)

	assert.Equal(t, []string{"code", "--wait", logFile}, cmd.Args)
}

func TestOpener_CommandFallsBackToEnv(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "job.log")
	require.NoError(t, os.WriteFile(logFile, nil, 0o644))
	t.Setenv("EDITOR", "myeditor -R")

	cmd, err := NewOpener().Command(logFile)
	require.NoError(t, err)

	assert.Equal(t, []string{"myeditor", "-R", logFile}, cmd.Args)
}

func TestOpener_MissingLogFile(t *testing.T) {
	_, err := NewOpener(WithCommand("vi")).Command(filepath.Join(t.TempDir(), "missing.log"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log file not available")
}
