package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/uttt-engine/internal/apperror"
	"github.com/rocketscienceinc/uttt-engine/internal/entity"
)

const DefaultBoardSize = 3

// Engine owns the state of one ultimate tic-tac-toe game. It is not safe for
// concurrent use; independent engines share nothing.
type Engine struct {
	players []entity.Player
	active  int

	size  int // cells per sub-board side, N
	width int // cells per fine-board side, N*N

	cells []string // fine board, width*width labels
	meta  []string // winner label per sub-board
	tied  []bool   // tie flag per sub-board

	lines []Line

	lastMove    entity.Position
	status      entity.Status
	winner      string
	winnerCombo []entity.Position

	keepLastMoveOnReset bool
}

type Option func(*Engine)

// WithLastMoveKeptOnReset makes Reset leave the previous mandated sub-board in
// place instead of restoring free choice for the first move.
func WithLastMoveKeptOnReset(keep bool) Option {
	return func(engine *Engine) {
		engine.keepLastMoveOnReset = keep
	}
}

// New builds an engine for the given rotation and sub-board size. The first
// player is active.
func New(players []entity.Player, boardSize int, opts ...Option) (*Engine, error) {
	if err := entity.ValidatePlayers(players); err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	if boardSize < 1 {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidBoardSize, boardSize)
	}

	engine := &Engine{
		players:  append([]entity.Player(nil), players...),
		size:     boardSize,
		width:    boardSize * boardSize,
		lines:    WinningLines(boardSize),
		lastMove: entity.NoPosition,
	}

	engine.cells = make([]string, engine.width*engine.width)
	engine.meta = make([]string, boardSize*boardSize)
	engine.tied = make([]bool, boardSize*boardSize)

	for _, opt := range opts {
		opt(engine)
	}

	return engine, nil
}

// NewDefault builds the standard 3×3-of-3×3 game for X and O.
func NewDefault() *Engine {
	engine, err := New(entity.DefaultPlayers, DefaultBoardSize)
	if err != nil {
		panic(fmt.Errorf("default engine: %w", err))
	}

	return engine
}

// IsValidMove reports whether the active game accepts a move at (row, col).
// The error is non-nil only for coordinates outside the fine board.
func (that *Engine) IsValidMove(row, col int) (bool, error) {
	err := that.CheckMove(row, col)
	if errors.Is(err, apperror.ErrInvalidCoordinate) {
		return false, err
	}

	return err == nil, nil
}

// CheckMove returns nil when a move at (row, col) is legal, otherwise the
// reason it is rejected.
func (that *Engine) CheckMove(row, col int) error {
	if err := that.checkCoordinate(row, col); err != nil {
		return err
	}

	if that.status.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.cells[that.cellIndex(row, col)] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	target := entity.Position{Row: row / that.size, Col: col / that.size}
	if that.resolved(target) {
		return fmt.Errorf("%w: sub-board (%d, %d)", apperror.ErrSubBoardResolved, target.Row, target.Col)
	}

	// the mandated sub-board being decided lifts the constraint
	if that.lastMove == entity.NoPosition || target == that.lastMove || that.resolved(that.lastMove) {
		return nil
	}

	return fmt.Errorf("%w: expected sub-board (%d, %d)", apperror.ErrWrongSubBoard, that.lastMove.Row, that.lastMove.Col)
}

// ProcessMove places label at (row, col) and updates sub-board, meta-board and
// tie state. The move is expected to have passed IsValidMove.
func (that *Engine) ProcessMove(row, col int, label string) error {
	if err := that.checkCoordinate(row, col); err != nil {
		return err
	}

	if label == entity.EmptyCell {
		return apperror.ErrEmptyLabel
	}

	that.cells[that.cellIndex(row, col)] = label

	played := entity.Position{Row: row, Col: col}
	sub := entity.Position{Row: row / that.size, Col: col / that.size}
	subIdx := that.subIndex(sub)
	that.lastMove = entity.Position{Row: row % that.size, Col: col % that.size}

	wonNow := false
	for _, line := range that.lines {
		fine := line.Translate(sub.Row, sub.Col, that.size)
		if !fine.Contains(played) || !fine.ownedBy(label, that.cellLabel) {
			continue
		}

		if that.meta[subIdx] != entity.EmptyCell && !wonNow {
			continue
		}

		that.meta[subIdx] = label
		that.winnerCombo = append(that.winnerCombo, fine...)
		wonNow = true
	}

	if wonNow && that.status != entity.StatusWon {
		for _, line := range that.lines {
			if line.Contains(sub) && line.ownedBy(label, that.metaLabel) {
				that.status = entity.StatusWon
				that.winner = label
				break
			}
		}
	}

	if that.meta[subIdx] == entity.EmptyCell && that.subBoardFull(sub) {
		that.tied[subIdx] = true
	}

	if that.status == entity.StatusInProgress && that.allResolved() {
		that.status = entity.StatusTied
	}

	return nil
}

// HasWinner reports whether some meta-board line is held by a single label.
func (that *Engine) HasWinner() bool {
	return that.status == entity.StatusWon
}

// IsTied reports whether every sub-board is decided and nobody won.
func (that *Engine) IsTied() bool {
	return that.status == entity.StatusTied
}

// TogglePlayer advances the rotation, wrapping after the last player.
func (that *Engine) TogglePlayer() {
	that.active = (that.active + 1) % len(that.players)
}

// Reset empties every board and clears the winner. The rotation position is
// kept, so the next game starts with whoever would have moved next.
func (that *Engine) Reset() {
	clear(that.cells)
	clear(that.meta)
	clear(that.tied)

	that.status = entity.StatusInProgress
	that.winner = ""
	that.winnerCombo = nil

	if !that.keepLastMoveOnReset {
		that.lastMove = entity.NoPosition
	}
}

func (that *Engine) checkCoordinate(row, col int) error {
	if row < 0 || row >= that.width || col < 0 || col >= that.width {
		return fmt.Errorf("%w: (%d, %d) outside %dx%d board", apperror.ErrInvalidCoordinate, row, col, that.width, that.width)
	}

	return nil
}

func (that *Engine) checkSubBoard(subRow, subCol int) error {
	if subRow < 0 || subRow >= that.size || subCol < 0 || subCol >= that.size {
		return fmt.Errorf("%w: sub-board (%d, %d) outside %dx%d meta board", apperror.ErrInvalidCoordinate, subRow, subCol, that.size, that.size)
	}

	return nil
}

func (that *Engine) cellIndex(row, col int) int {
	return row*that.width + col
}

func (that *Engine) subIndex(sub entity.Position) int {
	return sub.Row*that.size + sub.Col
}

func (that *Engine) cellLabel(pos entity.Position) string {
	return that.cells[that.cellIndex(pos.Row, pos.Col)]
}

func (that *Engine) metaLabel(pos entity.Position) string {
	return that.meta[that.subIndex(pos)]
}

func (that *Engine) resolved(sub entity.Position) bool {
	idx := that.subIndex(sub)
	return that.meta[idx] != entity.EmptyCell || that.tied[idx]
}

func (that *Engine) subBoardFull(sub entity.Position) bool {
	for r := sub.Row * that.size; r < (sub.Row+1)*that.size; r++ {
		for c := sub.Col * that.size; c < (sub.Col+1)*that.size; c++ {
			if that.cells[that.cellIndex(r, c)] == entity.EmptyCell {
				return false
			}
		}
	}

	return true
}

func (that *Engine) allResolved() bool {
	for idx := range that.meta {
		if that.meta[idx] == entity.EmptyCell && !that.tied[idx] {
			return false
		}
	}

	return true
}
