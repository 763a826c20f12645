package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnonymizeEmail(t *testing.T) {
	hash := AnonymizeEmail("alice@example.com")

	assert.True(t, strings.HasPrefix(hash, "user:"))
	assert.NotContains(t, hash, "alice")
	assert.Len(t, hash, len("user:")+16)

	// Deterministic, so log entries for the same user correlate.
	assert.Equal(t, hash, AnonymizeEmail("alice@example.com"))
	assert.NotEqual(t, hash, AnonymizeEmail("bob@example.com"))
}

func TestAnonymizeEmailEmpty(t *testing.T) {
	assert.Empty(t, AnonymizeEmail(""))
}

func TestErrAttr(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("with error", Err(errors.New("boom")))
	assert.Contains(t, buf.String(), "error=boom")

	buf.Reset()
	logger.Info("without error", Err(nil))
	assert.NotContains(t, buf.String(), "error=")
}

func TestWithOperationAndTable(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	WithTable(WithOperation(logger, "select"), "emails").Info("query")

	out := buf.String()
	assert.Contains(t, out, "operation=select")
	assert.Contains(t, out, "table=emails")
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	adapter.Debug("debug msg", "k", "v")
	adapter.Info("info msg")
	adapter.Warn("warn msg")
	adapter.Error("error msg")

	out := buf.String()
	assert.Contains(t, out, "debug msg")
	assert.Contains(t, out, "k=v")
	assert.Contains(t, out, "info msg")
	assert.Contains(t, out, "warn msg")
	assert.Contains(t, out, "error msg")
}

func TestNewSlogAdapterNil(t *testing.T) {
	adapter := NewSlogAdapter(nil)
	require.NotNil(t, adapter.Logger())
}
