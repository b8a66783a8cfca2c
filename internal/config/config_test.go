package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/uttt-engine/internal/apperror"
	"github.com/rocketscienceinc/uttt-engine/internal/entity"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults from the environment only", func(t *testing.T) {
		// When: loading without a file
		conf, err := Load("")

		// Then: defaults are applied
		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, 3, conf.BoardSize)
		assert.Equal(t, entity.DefaultPlayers, conf.Players)
		assert.False(t, conf.KeepLastMoveOnReset)
		assert.False(t, conf.NoColor)
	})

	t.Run("Reads a YAML file", func(t *testing.T) {
		// Given: a config file with custom players
		path := writeConfig(t, `
log-level: debug
board-size: 4
keep-last-move-on-reset: true
no-color: true
players:
  - symbol: A
    color: green
  - symbol: B
    color: yellow
  - symbol: C
    color: magenta
`)

		// When: loading it
		conf, err := Load(path)

		// Then: every value is taken from the file
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, 4, conf.BoardSize)
		assert.True(t, conf.KeepLastMoveOnReset)
		assert.True(t, conf.NoColor)
		assert.Equal(t, []entity.Player{
			{Label: "A", Color: "green"},
			{Label: "B", Color: "yellow"},
			{Label: "C", Color: "magenta"},
		}, conf.Players)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "board-size: 3\n")
		t.Setenv("UTTT_BOARD_SIZE", "2")
		t.Setenv("UTTT_LOG_LEVEL", "warn")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, 2, conf.BoardSize)
		assert.Equal(t, "warn", conf.LogLevel)
	})

	t.Run("Rejects duplicate symbols", func(t *testing.T) {
		path := writeConfig(t, `
players:
  - symbol: X
  - symbol: X
`)

		_, err := Load(path)

		require.ErrorIs(t, err, apperror.ErrInvalidPlayer)
	})

	t.Run("Rejects a negative board size", func(t *testing.T) {
		t.Setenv("UTTT_BOARD_SIZE", "-1")

		_, err := Load("")

		require.ErrorIs(t, err, apperror.ErrInvalidBoardSize)
	})

	t.Run("Rejects an unknown log level", func(t *testing.T) {
		t.Setenv("UTTT_LOG_LEVEL", "verbose")

		_, err := Load("")

		require.ErrorIs(t, err, ErrUnknownLogLevel)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		require.Error(t, err)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("Panics on invalid config", func(t *testing.T) {
		t.Setenv("UTTT_BOARD_SIZE", "0")

		assert.Panics(t, func() { MustLoad("") })
	})
}
