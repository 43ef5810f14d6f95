package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{7, zerolog.TraceLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelFor(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestSetupLogger_WritesToConsole(t *testing.T) {
	oldLogger := log.Logger
	oldLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = oldLogger
		zerolog.SetGlobalLevel(oldLevel)
	})

	var buf bytes.Buffer
	SetupLogger(0, &buf, false)

	logger := GetLogger("test")
	logger.Info().Msg("hidden")
	assert.NotContains(t, buf.String(), "hidden")

	logger.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "component=test")
}

func TestIsTerminal_Buffer(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestSetupLogger_FileUnderStateHome(t *testing.T) {
	oldLogger := log.Logger
	oldLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = oldLogger
		zerolog.SetGlobalLevel(oldLevel)
	})

	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	xdg.Reload()

	var buf bytes.Buffer
	SetupLogger(1, &buf, true)

	logger := GetLogger("file")
	logger.Info().Msg("to both")
	assert.Contains(t, buf.String(), "to both")

	data, err := os.ReadFile(filepath.Join(xdg.StateHome, LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "to both")
}
