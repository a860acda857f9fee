package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/8bitsats/Agentic-DNA/pkg/memory"
)

func logLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestLoggerAttachesConversationID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(WithWriter(&buf))

	ctx := memory.WithConversationID(context.Background(), "conv-42")
	logger.Info(ctx, "generation dispatched", map[string]interface{}{"num_tokens": 47})

	line := logLine(t, &buf)
	assert.Equal(t, "conv-42", line["conversation_id"])
	assert.Equal(t, "generation dispatched", line["message"])
	assert.Equal(t, float64(47), line["num_tokens"])
}

func TestLoggerAttachesTraceID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(WithWriter(&buf))

	ctx := context.WithValue(context.Background(), "trace_id", "trace-7") //nolint:staticcheck // matches the key logged by callers
	logger.Error(ctx, "generation failed", nil)

	line := logLine(t, &buf)
	assert.Equal(t, "trace-7", line["trace_id"])
	assert.Equal(t, "error", line["level"])
}

func TestLoggerOmitsIDsWithoutContextValues(t *testing.T) {
	var buf bytes.Buffer
	logger := New(WithWriter(&buf))

	logger.Warn(context.Background(), "plain entry", nil)

	line := logLine(t, &buf)
	assert.NotContains(t, line, "conversation_id")
	assert.NotContains(t, line, "trace_id")
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(WithWriter(&buf), WithLevel("warn"))

	logger.Debug(context.Background(), "dropped", nil)
	logger.Info(context.Background(), "dropped too", nil)
	assert.Zero(t, buf.Len())

	logger.Warn(context.Background(), "kept", nil)
	assert.NotZero(t, buf.Len())
}
