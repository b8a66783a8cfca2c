package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/uttt-engine/internal/config"
	"github.com/rocketscienceinc/uttt-engine/internal/tictactoe"
	"github.com/rocketscienceinc/uttt-engine/internal/usecase"
	"github.com/rocketscienceinc/uttt-engine/transport/console"
)

// RunApp - runs one console session until quit, end of input or a signal.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	engine, err := tictactoe.New(conf.Players, conf.BoardSize,
		tictactoe.WithLastMoveKeptOnReset(conf.KeepLastMoveOnReset))
	if err != nil {
		return fmt.Errorf("could not create engine: %w", err)
	}

	gameManager := usecase.NewGameManager(logger, engine)
	renderer := console.NewRenderer(engine.Players(), conf.NoColor)
	server := console.New(logger, gameManager, renderer, out)

	log.Info("Starting console session", "board_size", conf.BoardSize, "players", len(conf.Players))

	if err = server.Run(ctx, in); err != nil {
		return fmt.Errorf("console session failed: %w", err)
	}

	return nil
}
