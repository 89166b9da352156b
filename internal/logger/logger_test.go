package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRedactSecrets(t *testing.T) {
	out := redact([]interface{}{"api_token", "abc", "dimension", "group", "Authorization", "Bearer x", "dangling"})

	assert.Equal(t, []interface{}{
		"api_token", "[REDACTED]",
		"dimension", "group",
		"Authorization", "[REDACTED]",
		"dangling",
	}, out)
}

func TestLoggerWritesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("run_id", "r1").Info("export finished", "rows", 3, "token", "secret")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "export finished", entries[0].Message)
	assert.Equal(t, "r1", fields["run_id"])
	assert.EqualValues(t, 3, fields["rows"])
	assert.Equal(t, "[REDACTED]", fields["token"])
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("development", "loud")
	assert.Error(t, err)

	l, err := New("production", "debug")
	require.NoError(t, err)
	l.Debug("ok")
}

func TestFormatMethods(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.Debugf("received %d bytes", 12)
	l.Errorf("send failed: %v", "closed")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "received 12 bytes", entries[0].Message)
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	assert.Equal(t, "send failed: closed", entries[1].Message)
}
