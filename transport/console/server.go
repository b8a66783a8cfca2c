package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/uttt-engine/internal/entity"
	"github.com/rocketscienceinc/uttt-engine/internal/usecase"
)

var errQuit = errors.New("quit requested")

type uGame interface {
	MakeTurn(row, col int) (*usecase.TurnResult, error)
	Reset()
	Snapshot() entity.Snapshot
	GameID() string
}

// Server plays one game session over a line-oriented reader and writer.
type Server struct {
	logger   *slog.Logger
	uGame    uGame
	renderer *Renderer

	out      io.Writer
	writeErr error

	handlers map[string]func(args []string) error
}

func New(logger *slog.Logger, uGame uGame, renderer *Renderer, out io.Writer) *Server {
	server := &Server{
		logger:   logger.With("component", "console"),
		uGame:    uGame,
		renderer: renderer,
		out:      out,

		handlers: make(map[string]func([]string) error),
	}

	server.handlers["move"] = server.handleMove
	server.handlers["reset"] = server.handleReset
	server.handlers["board"] = server.handleBoard
	server.handlers["help"] = server.handleHelp
	server.handlers["quit"] = server.handleQuit
	server.handlers["exit"] = server.handleQuit

	return server
}

// Run reads commands until quit, end of input or context cancellation.
func (that *Server) Run(ctx context.Context, in io.Reader) error {
	log := that.logger.With("method", "Run")

	// cancel stops the reader goroutine on every return
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			readErr <- err
		}
	}()

	log.Info("session started", "game_id", that.uGame.GameID())

	that.printf("%s", that.renderer.Render(that.uGame.Snapshot()))
	that.prompt()

	for {
		if that.writeErr != nil {
			return fmt.Errorf("failed to write output: %w", that.writeErr)
		}

		select {
		case <-ctx.Done():
			log.Info("session canceled")
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return fmt.Errorf("failed to read input: %w", err)
				default:
				}

				log.Info("input closed")
				return nil
			}

			err := that.dispatch(line)
			if errors.Is(err, errQuit) {
				log.Info("session finished", "game_id", that.uGame.GameID())
				return nil
			}
			if err != nil {
				return err
			}

			that.prompt()
		}
	}
}

func (that *Server) dispatch(line string) error {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil
	}

	if handler, ok := that.handlers[fields[0]]; ok {
		return handler(fields[1:])
	}

	// bare "<row> <col>" is shorthand for move
	if len(fields) == 2 {
		return that.handleMove(fields)
	}

	that.printf("Unknown command %q, type help for the list of commands.\n", fields[0])

	return nil
}

func (that *Server) prompt() {
	that.printf("> ")
}

// printf keeps the first write error so Run can stop on it.
func (that *Server) printf(format string, args ...any) {
	if that.writeErr != nil {
		return
	}

	_, that.writeErr = fmt.Fprintf(that.out, format, args...)
}
