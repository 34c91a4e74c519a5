package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mockLogLevel int8 = 0 // zapcore.InfoLevel

func TestGetReturnsSameInstanceOnSubsequentCalls(t *testing.T) {
	logger1 := Get(mockLogLevel)
	require.NotNil(t, logger1)
	logger2 := Setup(Options{Level: -1})
	assert.Same(t, logger1, logger2)
}

func TestGetReturnsNoopLoggerIfGlobalLoggerNil(t *testing.T) {
	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()

	Get(mockLogLevel)
	assert.Same(t, &defaultNoopLogger, Get(mockLogLevel))
}

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	lgr := New(Options{Level: -1, Output: &buf})
	lgr.V(1).Info("planned", ColumnsKey, 3, AvailableKey, "unbounded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "planned", entry[MessageKey])
	assert.Equal(t, float64(3), entry[ColumnsKey])
	assert.Equal(t, "unbounded", entry[AvailableKey])
	assert.Contains(t, entry, TimeStampKey)
	assert.Contains(t, entry, VersionKey)
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	lgr := New(Options{Level: 0, Output: &buf})
	lgr.V(1).Info("hidden")
	assert.Empty(t, buf.String())

	lgr.Info("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestWithLogger(t *testing.T) {
	ctx := context.Background()
	lgr := GetNoopLogger()

	newCtx := WithLogger(ctx, lgr)
	assert.Same(t, lgr, FromContext(newCtx))
	assert.Equal(t, newCtx, WithLogger(newCtx, lgr))

	other := New(Options{Output: &bytes.Buffer{}})
	replaced := WithLogger(newCtx, other)
	assert.Same(t, other, FromContext(replaced))
}

func TestFromContextFallbacks(t *testing.T) {
	orig := globalLogrLogger
	defer func() { globalLogrLogger = orig }()

	globalLogrLogger = nil
	assert.Same(t, &defaultNoopLogger, FromContext(context.Background()))

	g := New(Options{Output: &bytes.Buffer{}})
	globalLogrLogger = g
	assert.Same(t, g, FromContext(context.Background()))
}

func TestSyncDoesNotPanicWhenGlobalZapLoggerIsNil(t *testing.T) {
	orig := globalZapLogger
	globalZapLogger = nil
	defer func() { globalZapLogger = orig }()

	assert.NotPanics(t, Sync)
}

func TestIsIgnorableSyncError(t *testing.T) {
	assert.True(t, isIgnorableSyncError(syscall.ENOTTY))
	assert.True(t, isIgnorableSyncError(errors.New("sync /dev/stderr: The handle is invalid.")))
	assert.False(t, isIgnorableSyncError(errors.New("disk full")))
}

func TestWithValues(t *testing.T) {
	var buf bytes.Buffer
	base := New(Options{Output: &buf})
	lgr := WithValues(base, CommandKey, "render")
	require.NotSame(t, base, lgr)

	lgr.Info("done")
	assert.Contains(t, buf.String(), `"command":"render"`)
}
