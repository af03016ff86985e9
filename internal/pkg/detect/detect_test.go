package detect

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmed6ww/apm/internal/pkg/agent"
)

func TestExecutable_NotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	for _, target := range agent.Targets() {
		t.Run(string(target), func(t *testing.T) {
			path, found, err := Executable(context.Background(), target)
			require.NoError(t, err)
			assert.False(t, found)
			assert.Empty(t, path)
		})
	}
}

func TestExecutable_FindsCandidateOnPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake executables need a unix PATH")
	}

	binDir := t.TempDir()
	fakePath := filepath.Join(binDir, "codex")
	require.NoError(t, os.WriteFile(fakePath, []byte("#!/bin/sh\n"), 0o755))
	t.Setenv("PATH", binDir)

	path, found, err := Executable(context.Background(), agent.TargetCodex)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, fakePath, path)
}

func TestExecutable_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, found, err := Executable(ctx, agent.TargetCodex)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, found)
}
