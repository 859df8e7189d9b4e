package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Modes(t *testing.T) {
	for _, mode := range []string{"dev", "prod", "off", ""} {
		l, err := New(mode)
		require.NoError(t, err, mode)
		require.NotNil(t, l)
	}
}

func TestWith_CarriesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromCore(core).With("profile", "default")

	l.Info("saved", "key", "profile:default")
	l.Warn("fallback")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "saved", entries[0].Message)
	assert.Equal(t, "default", entries[0].ContextMap()["profile"])
	assert.Equal(t, "profile:default", entries[0].ContextMap()["key"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestNop_Discards(t *testing.T) {
	l := Nop()
	l.Error("ignored", "k", 1)
	l.Sync()
}
