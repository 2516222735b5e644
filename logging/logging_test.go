package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/binzume/spineconv/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newFileLogger(t *testing.T, level, format string) (*zap.Logger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := logging.New(logging.Options{
		Level:            level,
		Format:           format,
		OutputPaths:      []string{path},
		ErrorOutputPaths: []string{path},
	})
	require.NoError(t, err)
	return logger, path
}

func readLog(t *testing.T, logger *zap.Logger, path string) string {
	t.Helper()
	logger.Sync() //nolint:errcheck
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	logger, path := newFileLogger(t, "info", "console")
	logger.Info("converted", zap.String("file", "hero.json"))
	logger.Debug("hidden")

	content := readLog(t, logger, path)
	assert.Contains(t, content, "converted")
	assert.Contains(t, content, "hero.json")
	assert.NotContains(t, content, "hidden")
	assert.NotContains(t, content, ".go:")
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logger, path := newFileLogger(t, "debug", "console")
	logger.Debug("message with caller")
	assert.Contains(t, readLog(t, logger, path), "logging_test.go:")
}

func TestJSONLogger(t *testing.T) {
	logger, path := newFileLogger(t, "warn", "json")
	logger.Info("skipped")
	logger.Warn("missing geometry", zap.String("file", "a.json"))

	content := strings.TrimSpace(readLog(t, logger, path))
	assert.NotContains(t, content, "skipped")
	assert.True(t, strings.HasPrefix(content, "{"))
	assert.Contains(t, content, `"file":"a.json"`)
}

func TestInvalidOptions(t *testing.T) {
	_, err := logging.New(logging.Options{Level: "loud"})
	assert.Error(t, err)
	_, err = logging.New(logging.Options{Level: "info", Format: "xml"})
	assert.Error(t, err)
}
