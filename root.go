package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	app "github.com/rocketscienceinc/uttt-engine/internal"
	"github.com/rocketscienceinc/uttt-engine/internal/config"
)

const defaultConfigFile = "config.yml"

type flags struct {
	configPath   string
	logLevel     string
	boardSize    int
	noColor      bool
	keepLastMove bool
}

func newRootCmd() *cobra.Command {
	opts := &flags{}

	rootCmd := &cobra.Command{
		Use:   "uttt",
		Short: "Play ultimate tic-tac-toe in the terminal",
		Long: `uttt runs a game of ultimate tic-tac-toe on stdin and stdout.

Moves are typed as "<row> <col>" on the fine board. Settings come from
config.yml in the working directory, UTTT_* environment variables and flags,
in increasing order of precedence.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := initConfig(opts, cmd.Flags())
			if err != nil {
				return err
			}

			logger := initLogger(conf)

			if err = app.RunApp(cmd.Context(), logger, conf, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				logger.Error("app run failed", "error", err)
				return err
			}

			return nil
		},
	}

	rootCmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "YAML config file (default ./config.yml when present)")
	rootCmd.Flags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (env: UTTT_LOG_LEVEL)")
	rootCmd.Flags().IntVarP(&opts.boardSize, "size", "n", 0, "sub-board side length (env: UTTT_BOARD_SIZE)")
	rootCmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable coloured output (env: UTTT_NO_COLOR)")
	rootCmd.Flags().BoolVar(&opts.keepLastMove, "keep-last-move", false, "keep the sub-board mandate across reset (env: UTTT_KEEP_LAST_MOVE_ON_RESET)")

	return rootCmd
}

// initialize config. Flags that were set explicitly win over file and env.
func initConfig(opts *flags, set *pflag.FlagSet) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = defaultConfigPath()
	}

	conf, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if set.Changed("log-level") {
		conf.LogLevel = opts.logLevel
	}
	if set.Changed("size") {
		conf.BoardSize = opts.boardSize
	}
	if set.Changed("no-color") {
		conf.NoColor = opts.noColor
	}
	if set.Changed("keep-last-move") {
		conf.KeepLastMoveOnReset = opts.keepLastMove
	}

	if err = conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	return conf, nil
}

func defaultConfigPath() string {
	baseDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	path := filepath.Join(baseDir, defaultConfigFile)
	if _, err = os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return ""
	}

	return path
}

// initialize logger. Logs go to stderr so they never mix with the board.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
