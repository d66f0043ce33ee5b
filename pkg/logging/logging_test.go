// pkg/logging/logging_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: zerolog, temp dir for the log file
// PURPOSE: Test verbosity mapping, per-writer levels and helpers

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{-1, zerolog.WarnLevel},
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{7, zerolog.TraceLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ConsoleLevel(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestSetupSplitsLevelsBetweenConsoleAndFile(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var console bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "state", "configma.log")

	Setup(Options{Verbosity: 0, LogFile: logFile, Console: &console, NoColor: true})

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	logger := GetLogger("syncer")
	logger.Info().Str("path", "/home/u/.bashrc").Msg("Linked entry")
	logger.Warn().Msg("Conflict skipped")
	Close()

	assert.NotContains(t, console.String(), "Linked entry")
	assert.Contains(t, console.String(), "Conflict skipped")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Linked entry")
	assert.Contains(t, string(data), `"component":"syncer"`)
	assert.Contains(t, string(data), "Conflict skipped")
}

func TestCloseReleasesLogFile(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var console bytes.Buffer
	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")

	Setup(Options{LogFile: first, Console: &console, NoColor: true})
	assert.Equal(t, first, OpenLogFile())
	logger := GetLogger("track")
	logger.Debug().Msg("into first")

	// A second Setup closes the first file before opening its own
	Setup(Options{LogFile: second, Console: &console, NoColor: true})
	assert.Equal(t, second, OpenLogFile())
	logger = GetLogger("track")
	logger.Debug().Msg("into second")

	Close()
	assert.Empty(t, OpenLogFile())
	assert.NotPanics(t, Close)

	logger = GetLogger("track")
	logger.Warn().Msg("after close")
	assert.Contains(t, console.String(), "after close")

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Contains(t, string(data), "into first")
	assert.NotContains(t, string(data), "into second")

	data, err = os.ReadFile(second)
	require.NoError(t, err)
	assert.Contains(t, string(data), "into second")
	assert.NotContains(t, string(data), "after close")
}

func TestSetupWithoutFile(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var console bytes.Buffer
	Setup(Options{Verbosity: 1, Console: &console, NoColor: true})

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	log.Info().Msg("visible")
	log.Debug().Msg("hidden")

	assert.Contains(t, console.String(), "visible")
	assert.NotContains(t, console.String(), "hidden")
}

func TestSetupUnwritableLogFile(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	var console bytes.Buffer
	Setup(Options{LogFile: filepath.Join(blocker, "configma.log"), Console: &console, NoColor: true})

	assert.Contains(t, console.String(), "Failed to open log file")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger := GetLogger("track")
	logger.Warn().Msg("test message")

	assert.Contains(t, buf.String(), `"component":"track"`)
	assert.Contains(t, buf.String(), "test message")
}

func TestLogCommand(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)

	LogCommand("sync", []string{"-f"})

	assert.Contains(t, buf.String(), `"command":"sync"`)
	assert.Contains(t, buf.String(), "-f")
	assert.Contains(t, buf.String(), "Running command")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	done := LogOperationStart(logger, "unlink")
	done()

	assert.Contains(t, buf.String(), "Operation started")
	assert.Contains(t, buf.String(), "Operation completed")
	assert.Contains(t, buf.String(), "duration")
}
