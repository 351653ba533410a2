package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger, err := New(Options{Level: "debug", Format: "json", Output: &buf})
	require.NoError(t, err)

	logger.With("file", "orders.csv").WithGroup("stage").Debug("coerced", "columns", 3,
		slog.Group("diag", "code", "column_coercion"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "coerced", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "orders.csv", entry["file"])
	assert.InDelta(t, 3, entry["stage.columns"], 0)
	assert.Equal(t, "column_coercion", entry["stage.diag.code"])
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger, err := New(Options{Level: "warn", Output: &buf})
	require.NoError(t, err)

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown", "n", 1)
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "n=1")
}

func TestNewInvalid(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)

	_, err = New(Options{Format: "xml"})
	assert.Error(t, err)
}

func TestOrDiscard(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, OrDiscard(nil))

	l := NewTestLogger(t)
	assert.Same(t, l, OrDiscard(l))
}
