package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreGlobals(t *testing.T) {
	level, logger := zerolog.GlobalLevel(), log.Logger
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(level)
		log.Logger = logger
	})
}

func TestSetupLevels(t *testing.T) {
	restoreGlobals(t)

	tests := map[int]zerolog.Level{
		0: zerolog.WarnLevel,
		1: zerolog.InfoLevel,
		2: zerolog.DebugLevel,
		3: zerolog.TraceLevel,
		9: zerolog.TraceLevel,
	}
	for v, want := range tests {
		Setup(v, &bytes.Buffer{})
		assert.Equal(t, want, zerolog.GlobalLevel(), "verbosity %d", v)
	}
}

func TestGetLoggerWritesComponent(t *testing.T) {
	restoreGlobals(t)

	var buf bytes.Buffer
	Setup(1, &buf)
	l := GetLogger("httpapi")
	l.Info().Msg("listening")

	out := buf.String()
	assert.Contains(t, out, "listening")
	assert.Contains(t, out, "component=httpapi")
	assert.NotContains(t, out, "\x1b[", "no color codes for a non-terminal writer")
}

func TestSetupFiltersBelowLevel(t *testing.T) {
	restoreGlobals(t)

	var buf bytes.Buffer
	Setup(0, &buf)
	l := GetLogger("engine")
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetLevel(t *testing.T) {
	restoreGlobals(t)

	require.NoError(t, SetLevel("debug"))
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	assert.Error(t, SetLevel("loud"))
}
