package console

import (
	"errors"
	"strconv"

	"github.com/rocketscienceinc/uttt-engine/internal/apperror"
)

const helpText = `Commands:
  <row> <col>       play a move, for example "4 4"
  move <row> <col>  same as above
  board             show the board again
  reset             start a new game
  help              show this help
  quit              leave the game
`

func (that *Server) handleMove(args []string) error {
	log := that.logger.With("method", "handleMove")

	if len(args) != 2 {
		that.printf("Usage: move <row> <col>\n")
		return nil
	}

	row, rowErr := strconv.Atoi(args[0])
	col, colErr := strconv.Atoi(args[1])
	if rowErr != nil || colErr != nil {
		that.printf("Row and column must be numbers, got %q %q.\n", args[0], args[1])
		return nil
	}

	result, err := that.uGame.MakeTurn(row, col)
	switch {
	case errors.Is(err, apperror.ErrGameFinished):
		that.printf("The game is over. Type reset to play again or quit to exit.\n")
		return nil
	case errors.Is(err, apperror.ErrInvalidCoordinate),
		errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrWrongSubBoard),
		errors.Is(err, apperror.ErrSubBoardResolved):
		that.printf("Invalid move: %s\n", err)
		return nil
	case err != nil:
		log.Error("failed to make turn", "error", err)
		that.printf("Could not play that move: %s\n", err)
		return nil
	}

	snap := that.uGame.Snapshot()
	that.printf("%s", that.renderer.Render(snap))

	if result.SubBoardWon && !result.Status.IsFinished() {
		n := snap.BoardSize
		that.printf("Player %s took sub-board (%d, %d).\n", result.Player.Label, row/n, col/n)
	}

	if result.Status.IsFinished() {
		that.printf("Type reset to play again or quit to exit.\n")
	}

	return nil
}

func (that *Server) handleReset(_ []string) error {
	that.uGame.Reset()

	that.printf("New game started.\n")
	that.printf("%s", that.renderer.Render(that.uGame.Snapshot()))

	return nil
}

func (that *Server) handleBoard(_ []string) error {
	that.printf("%s", that.renderer.Render(that.uGame.Snapshot()))

	return nil
}

func (that *Server) handleHelp(_ []string) error {
	that.printf("%s", helpText)

	return nil
}

func (that *Server) handleQuit(_ []string) error {
	that.printf("Bye.\n")

	return errQuit
}
