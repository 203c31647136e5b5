package log

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLoggerKeepsStdoutClean verifies log output never reaches stdout.
func TestLoggerKeepsStdoutClean(t *testing.T) {
	stdoutR, stdoutW, err := os.Pipe()
	require.NoError(t, err)
	stderrR, stderrW, err := os.Pipe()
	require.NoError(t, err)

	origStdout, origStderr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = stdoutW, stderrW
	t.Cleanup(func() {
		os.Stdout, os.Stderr = origStdout, origStderr
	})

	logger, err := newLogger()
	require.NoError(t, err)
	logger.Info("hello from the logger")
	logger.Warn("another line")
	_ = logger.Sync()

	os.Stdout, os.Stderr = origStdout, origStderr
	require.NoError(t, stdoutW.Close())
	require.NoError(t, stderrW.Close())

	stdout, err := io.ReadAll(stdoutR)
	require.NoError(t, err)
	require.Empty(t, string(stdout))

	stderr, err := io.ReadAll(stderrR)
	require.NoError(t, err)
	require.Contains(t, string(stderr), "hello from the logger")
}

// TestSharedLoggerInitialized verifies the package logger is ready at import time.
func TestSharedLoggerInitialized(t *testing.T) {
	require.NotNil(t, Logger)
	require.NotNil(t, Logger.Named("child"))
}
