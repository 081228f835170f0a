package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLog sets up the logger to write to a buffer and returns the buffer.
func captureLog(cfg LogConfig) *bytes.Buffer {
	var buf bytes.Buffer
	SetupLogging(cfg)
	SetOutput(&buf)
	return &buf
}

func TestSetupLogging_DefaultInfoLevel(t *testing.T) {
	SetupLogging(LogConfig{})
	assert.Equal(t, log.InfoLevel, logger.GetLevel(), "default should be info level")
}

func TestSetupLogging_VerboseEnablesDebugLevel(t *testing.T) {
	SetupLogging(LogConfig{Verbose: true})
	assert.Equal(t, log.DebugLevel, logger.GetLevel(), "verbose should set debug level")
}

func TestSetupLogging_LevelFromConfig(t *testing.T) {
	SetupLogging(LogConfig{Level: "warn"})
	assert.Equal(t, log.WarnLevel, logger.GetLevel())

	SetupLogging(LogConfig{Level: "not-a-level"})
	assert.Equal(t, log.InfoLevel, logger.GetLevel(), "unknown level falls back to info")
}

func TestSetupLogging_TimestampExplicitlyDisabled(t *testing.T) {
	buf := captureLog(LogConfig{Timestamps: BoolPtr(false)})
	logger.Info("hello")
	out := buf.String()
	assert.NotRegexp(t, `^\d{1,2}:\d{2}:\d{2}`, strings.TrimSpace(out),
		"output should not start with a timestamp")
	assert.Contains(t, out, "hello")
}

func TestSetupLogging_DebugHiddenByDefault(t *testing.T) {
	buf := captureLog(LogConfig{})
	Debug("secret-debug")
	assert.NotContains(t, buf.String(), "secret-debug")
}

func TestSetupLogging_MirrorsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "course.log")
	SetupLogging(LogConfig{File: path, Timestamps: BoolPtr(false)})
	t.Cleanup(func() {
		Close()
		SetupLogging(LogConfig{})
	})

	Info("written to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestModuleLogger_HasPrefix(t *testing.T) {
	SetupLogging(LogConfig{})
	modLog := ModuleLogger("intro_linux")
	require.NotNil(t, modLog)
	assert.Contains(t, modLog.GetPrefix(), "intro_linux")
}

func TestModuleLogger_InheritsLevel(t *testing.T) {
	SetupLogging(LogConfig{Verbose: true})
	modLog := ModuleLogger("intro_linux")
	assert.Equal(t, log.DebugLevel, modLog.GetLevel())
}

func TestBoolPtr(t *testing.T) {
	assert.True(t, *BoolPtr(true))
	assert.False(t, *BoolPtr(false))
}
