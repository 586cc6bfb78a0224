package logging

import (
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func restoreGlobal(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })
}

func TestInitLogger_TagsService(t *testing.T) {
	restoreGlobal(t)
	core, logs := observer.New(zapcore.DebugLevel)

	require.NoError(t, InitLogger(zap.WrapCore(func(zapcore.Core) zapcore.Core { return core })))
	Logger.Info("submission forwarded")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "lead-intake", fields["service"])
	assert.Equal(t, "v1", fields["version"])
}

func TestInitLogger_LevelFromEnv(t *testing.T) {
	restoreGlobal(t)
	t.Setenv("LOG_LEVEL", "")

	require.NoError(t, InitLogger())
	assert.False(t, Logger.Unwrap().Core().Enabled(zapcore.DebugLevel))

	t.Setenv("LOG_LEVEL", "debug")
	require.NoError(t, InitLogger())
	assert.True(t, Logger.Unwrap().Core().Enabled(zapcore.DebugLevel))

	t.Setenv("LOG_LEVEL", "loud")
	require.NoError(t, InitLogger())
	assert.True(t, Logger.Unwrap().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, Logger.Unwrap().Core().Enabled(zapcore.DebugLevel))
}

func TestSafeLogger_WithCarriesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := New(zap.New(core))

	child := base.With(zap.String("form", "apply"))
	child.Warn("submission rejected by schema", zap.Strings("fields", []string{"email"}))
	base.Info("unscoped")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "apply", entries[0].ContextMap()["form"])
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.NotContains(t, entries[1].ContextMap(), "form")
}

func TestSafeLogger_WithoutLogger(t *testing.T) {
	var nilSafe *SafeLogger
	assert.Nil(t, nilSafe.With(zap.String("form", "contact")))

	empty := &SafeLogger{}
	assert.Same(t, empty, empty.With(zap.String("form", "contact")))

	for _, l := range []*SafeLogger{nilSafe, empty} {
		assert.NotPanics(t, func() {
			l.Debug("x")
			l.Info("x")
			l.Warn("x")
			l.Error("x")
		})
		assert.NoError(t, l.Sync())
		assert.NotNil(t, l.Unwrap())
	}
}

func TestSafeLogger_FatalWithoutLoggerExits(t *testing.T) {
	if os.Getenv("LOGGING_FATAL_CHILD") == "1" {
		var l *SafeLogger
		l.Fatal("email service is not configured")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestSafeLogger_FatalWithoutLoggerExits$")
	cmd.Env = append(os.Environ(), "LOGGING_FATAL_CHILD=1")
	err := cmd.Run()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
}
