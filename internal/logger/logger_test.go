package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log
	log = slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() { log = prev })
	return &buf
}

func TestFromContextAddsRequestAndUser(t *testing.T) {
	buf := captureLogs(t)

	ctx := WithUserID(WithRequestID(context.Background(), "req-1"), "user-42")
	CtxInfo(ctx, "hello", "k", "v")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "user-42", entry["user_id"])
	assert.Equal(t, "v", entry["k"])
}

func TestCtxDebugRespectsLevel(t *testing.T) {
	buf := captureLogs(t)

	CtxDebug(WithRequestID(context.Background(), "req-2"), "file stored", "size", 10)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "req-2", entry["request_id"])

	buf.Reset()
	log = slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	CtxDebug(context.Background(), "hidden")
	assert.Empty(t, buf.String())
}

func TestCtxWithErrorIncludesError(t *testing.T) {
	buf := captureLogs(t)

	CtxWithError(context.Background(), "failed", errors.New("boom"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "ERROR", entry["level"])
}

func TestGormLoggerTraceLevels(t *testing.T) {
	buf := captureLogs(t)
	gl := NewGormLogger("production")

	gl.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 1 }, nil)
	assert.Empty(t, buf.String(), "fast queries are not logged at warn level")

	gl.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 2", 0 }, errors.New("syntax"))
	assert.Contains(t, buf.String(), "SELECT 2")

	buf.Reset()
	silent := gl.LogMode(gormlogger.Silent)
	silent.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 3", 0 }, errors.New("x"))
	assert.Empty(t, buf.String())
}
