package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stock-tracker/internal/pkg/logger"
)

func TestNewLogger_JSONWithContext(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(&buf, "info", "json")

	ctx := logger.WithSessionID(context.Background(), "sess-1")
	ctx = logger.WithOperation(ctx, "add")
	ctx = logger.WithBackend(ctx, "file")
	log.InfoContext(ctx, "added stock", slog.String("item", "apple"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "added stock", record["msg"])
	assert.Equal(t, "apple", record["item"])
	assert.Equal(t, "sess-1", record["session_id"])
	assert.Equal(t, "add", record["operation"])
	assert.Equal(t, "file", record["backend"])
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(&buf, "warn", "text")

	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestContextHandler_WithAttrsKeepsContext(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(&buf, "debug", "json").With(slog.String("service", "inventory"))

	log.DebugContext(logger.WithSessionID(context.Background(), "s-2"), "debug record")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "inventory", record["service"])
	assert.Equal(t, "s-2", record["session_id"])
}

func TestSetupLogger_InstallsDefault(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	log := logger.SetupLogger(&buf, "info", "json")
	require.Same(t, log, slog.Default())

	slog.InfoContext(logger.WithBackend(context.Background(), "redis"), "via default")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "via default", record["msg"])
	assert.Equal(t, "redis", record["backend"])
}
