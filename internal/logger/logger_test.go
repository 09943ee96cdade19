package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew(t *testing.T) {
	// Given: a logger at info level
	var out bytes.Buffer
	log := New(&out, "info", false)

	// When: logging below and at the level
	log.Debug("hidden")
	log.Info("visible", "cell", 4)

	// Then: only the info record is written, as JSON
	var record map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &record))
	assert.Equal(t, "visible", record["msg"])
	assert.EqualValues(t, 4, record["cell"])
}

func TestMultiHandler(t *testing.T) {
	// Given: two handlers with different levels
	var debugOut, warnOut bytes.Buffer
	handler := NewMultiHandler(
		slog.NewJSONHandler(&debugOut, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewJSONHandler(&warnOut, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	log := slog.New(handler).With("component", "test")

	// When: logging at info
	assert.True(t, handler.Enabled(context.Background(), slog.LevelInfo))
	log.Info("move applied")

	// Then: only the debug-level handler receives it, with the shared attributes
	assert.Contains(t, debugOut.String(), `"component":"test"`)
	assert.Empty(t, warnOut.String())

	// When: logging at error
	log.Error("search failed")

	// Then: both handlers receive it
	assert.Contains(t, warnOut.String(), "search failed")
	assert.Contains(t, debugOut.String(), "search failed")
}
