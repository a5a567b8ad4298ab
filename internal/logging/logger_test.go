package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	l, err := New(Config{Level: "debug", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, l)
	l, err = New(Config{})
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("nonsense"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(""))
}

func TestFieldsReachZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromCore(core).Named("rxn").With(String("candidate", "abc"))
	l.Warn("invalid candidate", Int("atoms", 3), Err(errors.New("boom")), Bool("ok", false))
	require.Equal(t, 1, logs.Len())
	e := logs.All()[0]
	assert.Equal(t, "invalid candidate", e.Message)
	assert.Equal(t, "rxn", e.LoggerName)
	ctx := e.ContextMap()
	assert.Equal(t, "abc", ctx["candidate"])
	assert.Equal(t, int64(3), ctx["atoms"])
	assert.Equal(t, "boom", ctx["error"])
	assert.Equal(t, false, ctx["ok"])
}

func TestDefault(t *testing.T) {
	assert.NotNil(t, Default())
	core, logs := observer.New(zapcore.InfoLevel)
	SetDefault(FromCore(core))
	defer SetDefault(Nop())
	SetDefault(nil)
	Default().Info("hello")
	assert.Equal(t, 1, logs.Len())
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Debug("x")
	l.With(Int("a", 1)).Named("y").Error("z")
	assert.NoError(t, l.Sync())
}
