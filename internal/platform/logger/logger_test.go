// Package logger_test contains tests for the logger package
package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/logger"
)

func TestSetup(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	l, err := logger.Setup(config.ServerConfig{LogLevel: "debug"})
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Same(t, l, slog.Default())
	assert.True(t, l.Enabled(context.Background(), slog.LevelDebug))
}

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level        string
		enabled      slog.Level
		notEnabled   slog.Level
		checkEnabled bool
	}{
		{level: "debug", enabled: slog.LevelDebug, checkEnabled: true},
		{level: "INFO", enabled: slog.LevelInfo, notEnabled: slog.LevelDebug},
		{level: "warn", enabled: slog.LevelWarn, notEnabled: slog.LevelInfo},
		{level: "error", enabled: slog.LevelError, notEnabled: slog.LevelWarn},
		{level: "bogus", enabled: slog.LevelInfo, notEnabled: slog.LevelDebug},
	}

	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			l := logger.New(tc.level, &bytes.Buffer{})
			ctx := context.Background()
			assert.True(t, l.Enabled(ctx, tc.enabled))
			if !tc.checkEnabled {
				assert.False(t, l.Enabled(ctx, tc.notEnabled))
			}
		})
	}
}

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New("info", &buf)

	l.Info("task added", slog.Int64("task_id", 1))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "task added", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, float64(1), entry["task_id"])
}

func TestContextLogger(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	scoped := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	ctx := context.Background()
	assert.Same(t, fallback, logger.FromContextOrDefault(ctx, fallback))
	assert.Same(t, slog.Default(), logger.FromContext(ctx))

	ctx = logger.WithLogger(ctx, scoped)
	assert.Same(t, scoped, logger.FromContextOrDefault(ctx, fallback))
	assert.Same(t, scoped, logger.FromContext(ctx))
}

func TestTestLogBuffer(t *testing.T) {
	buf, l := logger.SetupTestLogger(t)

	l.Warn("task file unreadable", slog.String("path", "tasks.json"))
	slog.Info("via default")

	logger.AssertLogContains(t, buf, "task file unreadable")
	logger.AssertLogField(t, buf, "path", "tasks.json")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
