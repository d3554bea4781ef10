package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: LevelWarn, Format: "json", Output: &buf})

	logger.Debug(context.Background(), "debug message")
	logger.Info(context.Background(), "info message")
	assert.Empty(t, buf.String(), "debug/info should be suppressed below warn level")

	logger.Warn(context.Background(), nil, "warn message")
	assert.Contains(t, buf.String(), "warn message")
}

func TestLoggerWithComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: LevelDebug, Format: "json", Output: &buf}).
		WithComponent("debouncer").
		With("session", "abc123")

	logger.Info(context.Background(), "batch delivered", "count", 3)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &record))
	assert.Equal(t, "debouncer", record["component"])
	assert.Equal(t, "abc123", record["session"])
	assert.Equal(t, float64(3), record["count"])
}

func TestSanitizeForLog(t *testing.T) {
	assert.Equal(t, "[REDACTED]", SanitizeForLog("api_token=abc"))
	assert.Equal(t, "[REDACTED]", SanitizeForLog("user password is hunter2"))

	long := strings.Repeat("a", 2000)
	sanitized := SanitizeForLog(long)
	assert.True(t, strings.HasSuffix(sanitized, "...[TRUNCATED]"))
	assert.Len(t, sanitized, 1000+len("...[TRUNCATED]"))
}

func TestDiscardLoggerNeverPanics(t *testing.T) {
	assert.NotPanics(t, func() {
		Discard.Debug(context.Background(), "x")
		Discard.Info(context.Background(), "x")
		Discard.Warn(context.Background(), nil, "x")
		Discard.Error(context.Background(), nil, "x")
		Discard.With("a", 1).WithComponent("c").Info(context.Background(), "x")
	})
}
