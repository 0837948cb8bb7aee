package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestL_NoopBeforeInit(t *testing.T) {
	require.NotNil(t, L())
	L().Info("discarded")
}

func TestInit_WritesToFile(t *testing.T) {
	prev := globalLogger
	t.Cleanup(func() { globalLogger = prev })

	path := filepath.Join(t.TempDir(), "rcjobs.log")
	require.NoError(t, Init(Config{Level: "debug", Format: "json", OutputPath: path}))

	ctx := WithJob(context.Background(), "id-1", "nightly")
	WithContext(ctx).Debug("job started")
	_ = Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	require.Contains(t, out, `"job_id":"id-1"`)
	require.Contains(t, out, `"job":"nightly"`)
	require.Contains(t, out, "job started")
}

func TestSetLevel_IgnoresUnknownLevel(t *testing.T) {
	prev := globalLevel.Level()
	t.Cleanup(func() { globalLevel.SetLevel(prev) })

	SetLevel("warn")
	require.Equal(t, "warn", globalLevel.Level().String())

	SetLevel("loud")
	require.Equal(t, "warn", globalLevel.Level().String())
}
