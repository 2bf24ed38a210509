package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(level zapcore.Level) (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return newZapLogger(zap.New(core), "profile-api"), logs
}

func TestLogger_ErrorAttachesCauseAndService(t *testing.T) {
	log, logs := observed(zapcore.DebugLevel)

	log.With(zap.String("account_id", "a-1")).Error("Profile write step failed", errors.New("boom"), zap.String("step", "skillset"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "profile-api", entry.LoggerName)
	fields := entry.ContextMap()
	assert.Equal(t, "profile-api", fields["service"])
	assert.Equal(t, "a-1", fields["account_id"])
	assert.Equal(t, "skillset", fields["step"])
	assert.Equal(t, "boom", fields["error"])
}

func TestLogger_NilErrorAddsNoField(t *testing.T) {
	log, logs := observed(zapcore.DebugLevel)

	log.Error("Worker stopped", nil)

	require.Equal(t, 1, logs.Len())
	assert.NotContains(t, logs.All()[0].ContextMap(), "error")
}

func TestLogger_LevelFilters(t *testing.T) {
	log, logs := observed(zapcore.WarnLevel)

	log.Debug("cache fill skipped")
	log.Info("Profile saved")
	log.Warn("Profile cache write failed")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Profile cache write failed", logs.All()[0].Message)
}

func TestNewZapLogger_Options(t *testing.T) {
	assert.NotNil(t, NewZapLogger("production", WithLevel("warn"), WithService("profile-worker")))
	assert.NotNil(t, NewZapLogger("development", WithLevel("nonsense")))
	assert.NoError(t, NewNop().Sync())
}
