package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/uttt-engine/internal/apperror"
	"github.com/rocketscienceinc/uttt-engine/internal/config"
)

func TestRootCmd(t *testing.T) {
	t.Run("Flags override the config file", func(t *testing.T) {
		// Given: a config file and explicit flags
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("log-level: error\nboard-size: 3\n"), 0o600))

		cmd := newRootCmd()
		out := &bytes.Buffer{}
		cmd.SetIn(strings.NewReader("quit\n"))
		cmd.SetOut(out)
		cmd.SetArgs([]string{"--config", path, "--size", "2", "--no-color"})

		// When: the command runs
		err := cmd.Execute()

		// Then: the board uses the flag's size
		require.NoError(t, err)
		assert.Contains(t, out.String(), "    0 1   2 3\n")
		assert.Contains(t, out.String(), "Bye.")
	})

	t.Run("Invalid size flag is rejected", func(t *testing.T) {
		// Given: a zero board size
		cmd := newRootCmd()
		cmd.SetIn(strings.NewReader(""))
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--config", writeConfig(t, "board-size: 3\n"), "--size", "0"})

		// When: the command runs
		err := cmd.Execute()

		// Then: validation fails before the game starts
		require.ErrorIs(t, err, apperror.ErrInvalidBoardSize)
	})

	t.Run("Unknown log level flag is rejected", func(t *testing.T) {
		// Given: a bad log level
		cmd := newRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--config", writeConfig(t, "board-size: 3\n"), "--log-level", "loud"})

		// When/Then: the level is refused
		require.ErrorIs(t, cmd.Execute(), config.ErrUnknownLogLevel)
	})
}

func TestInitLogger(t *testing.T) {
	// Given: a warn level config
	logger := initLogger(&config.Config{LogLevel: "warn"})

	// When/Then: info is filtered and warn is kept
	ctx := context.Background()
	assert.False(t, logger.Enabled(ctx, slog.LevelDebug))
	assert.False(t, logger.Enabled(ctx, slog.LevelInfo))
	assert.True(t, logger.Enabled(ctx, slog.LevelWarn))
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}
