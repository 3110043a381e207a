package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredLogger_LogLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(LogLevelInfo, &buf)

	// Debug should not be logged (below info level)
	logger.Debug("debug message")
	assert.Empty(t, buf.String())

	// Info should be logged
	buf.Reset()
	logger.Info("info message")
	assert.NotEmpty(t, buf.String())

	var entry LogEntry
	err := json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err)
	assert.Equal(t, LogLevelInfo, entry.Level)
	assert.Equal(t, "info message", entry.Message)

	// Warn should be logged
	buf.Reset()
	logger.Warn("warn message")
	assert.NotEmpty(t, buf.String())

	err = json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err)
	assert.Equal(t, LogLevelWarn, entry.Level)

	// Error should be logged with the cause attached
	buf.Reset()
	testErr := errors.New("test error")
	logger.Error("error message", testErr)

	err = json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err)
	assert.Equal(t, LogLevelError, entry.Level)
	assert.Equal(t, "test error", entry.Error)
}

func TestStructuredLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(LogLevelInfo, &buf)

	logger.Info("test message",
		String("term_id", "HP:0001166"),
		Int("count", 42),
		Bool("partial", true),
		Duration("elapsed", 5*time.Second))

	var entry LogEntry
	err := json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err)

	assert.Equal(t, "test message", entry.Message)
	assert.Equal(t, "HP:0001166", entry.Fields["term_id"])
	assert.Equal(t, float64(42), entry.Fields["count"]) // JSON unmarshals numbers as float64
	assert.Equal(t, true, entry.Fields["partial"])
	assert.Equal(t, "5s", entry.Fields["elapsed"])
}

func TestStructuredLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(LogLevelInfo, &buf)

	contextLogger := logger.With(
		String("component", "resolver"),
		String("version", "1.0.0"))

	contextLogger.Info("test message", String("request_id", "req-123"))

	var entry LogEntry
	err := json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err)

	assert.Equal(t, "resolver", entry.Fields["component"])
	assert.Equal(t, "1.0.0", entry.Fields["version"])
	assert.Equal(t, "req-123", entry.Fields["request_id"])
}

func TestStructuredLogger_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(LogLevelDebug, &buf)

	logger.Debug("debug message", String("debug_info", "test"))
	assert.NotEmpty(t, buf.String())

	var entry LogEntry
	err := json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err)
	assert.Equal(t, LogLevelDebug, entry.Level)
	assert.Equal(t, "test", entry.Fields["debug_info"])
}

func TestStructuredLogger_EmptyFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(LogLevelInfo, &buf)

	logger.Info("message without fields")

	var entry LogEntry
	err := json.Unmarshal(buf.Bytes(), &entry)
	require.NoError(t, err)

	assert.Equal(t, "message without fields", entry.Message)
	assert.Nil(t, entry.Fields) // Should be nil when empty
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"invalid", LogLevelInfo}, // defaults to info
		{"", LogLevelInfo},        // defaults to info
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLogLevel(tt.input))
		})
	}
}
