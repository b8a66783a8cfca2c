package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrWrongSubBoard     = errors.New("move must be played in the mandated sub-board")
	ErrSubBoardResolved  = errors.New("sub-board is already decided")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidBoardSize  = errors.New("invalid board size")
	ErrNoPlayers         = errors.New("at least one player is required")
	ErrInvalidPlayer     = errors.New("invalid player")
	ErrEmptyLabel        = errors.New("move label is empty")
)
