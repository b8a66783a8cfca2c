package tictactoe

import (
	"github.com/rocketscienceinc/uttt-engine/internal/entity"
)

func (that *Engine) BoardSize() int {
	return that.size
}

// Players returns a copy of the rotation.
func (that *Engine) Players() []entity.Player {
	return append([]entity.Player(nil), that.players...)
}

func (that *Engine) ActivePlayer() entity.Player {
	return that.players[that.active]
}

func (that *Engine) Status() entity.Status {
	return that.status
}

// Winner returns the label that won the meta board, or "" while nobody has.
func (that *Engine) Winner() string {
	return that.winner
}

// LastMove is the intra-sub-board position of the previous move, or
// entity.NoPosition before the first move.
func (that *Engine) LastMove() entity.Position {
	return that.lastMove
}

// MandatedSubBoard returns the sub-board the next move must target. ok is
// false when any unresolved sub-board may be chosen.
func (that *Engine) MandatedSubBoard() (entity.Position, bool) {
	if that.lastMove == entity.NoPosition || that.resolved(that.lastMove) {
		return entity.NoPosition, false
	}

	return that.lastMove, true
}

// WinnerCombo returns every fine-board cell of every completed sub-board line,
// in completion order. Cells are not deduplicated.
func (that *Engine) WinnerCombo() []entity.Position {
	return append([]entity.Position(nil), that.winnerCombo...)
}

// Label returns the occupant of a fine-board cell.
func (that *Engine) Label(row, col int) (string, error) {
	if err := that.checkCoordinate(row, col); err != nil {
		return "", err
	}

	return that.cells[that.cellIndex(row, col)], nil
}

// MetaLabel returns the winner of a sub-board, or "" if it is undecided or tied.
func (that *Engine) MetaLabel(subRow, subCol int) (string, error) {
	if err := that.checkSubBoard(subRow, subCol); err != nil {
		return "", err
	}

	return that.metaLabel(entity.Position{Row: subRow, Col: subCol}), nil
}

func (that *Engine) IsSubBoardTied(subRow, subCol int) (bool, error) {
	if err := that.checkSubBoard(subRow, subCol); err != nil {
		return false, err
	}

	return that.tied[that.subIndex(entity.Position{Row: subRow, Col: subCol})], nil
}

// IsResolved reports whether a sub-board is won or tied.
func (that *Engine) IsResolved(subRow, subCol int) (bool, error) {
	if err := that.checkSubBoard(subRow, subCol); err != nil {
		return false, err
	}

	return that.resolved(entity.Position{Row: subRow, Col: subCol}), nil
}

// Board returns a row-major copy of the fine board.
func (that *Engine) Board() [][]string {
	board := make([][]string, that.width)
	for row := range board {
		board[row] = append([]string(nil), that.cells[row*that.width:(row+1)*that.width]...)
	}

	return board
}

// PlayableSubBoards lists the sub-boards the next move may target.
func (that *Engine) PlayableSubBoards() []entity.Position {
	if that.status.IsFinished() {
		return nil
	}

	if mandated, ok := that.MandatedSubBoard(); ok {
		return []entity.Position{mandated}
	}

	playable := make([]entity.Position, 0, that.size*that.size)
	for row := 0; row < that.size; row++ {
		for col := 0; col < that.size; col++ {
			sub := entity.Position{Row: row, Col: col}
			if !that.resolved(sub) {
				playable = append(playable, sub)
			}
		}
	}

	return playable
}

// LegalMoves lists every fine-board cell that IsValidMove accepts.
func (that *Engine) LegalMoves() []entity.Position {
	var moves []entity.Position
	for _, sub := range that.PlayableSubBoards() {
		for r := sub.Row * that.size; r < (sub.Row+1)*that.size; r++ {
			for c := sub.Col * that.size; c < (sub.Col+1)*that.size; c++ {
				if that.cells[that.cellIndex(r, c)] == entity.EmptyCell {
					moves = append(moves, entity.Position{Row: r, Col: c})
				}
			}
		}
	}

	return moves
}

// Snapshot copies everything a renderer needs.
func (that *Engine) Snapshot() entity.Snapshot {
	meta := make([][]string, that.size)
	tied := make([][]bool, that.size)
	for row := 0; row < that.size; row++ {
		meta[row] = append([]string(nil), that.meta[row*that.size:(row+1)*that.size]...)
		tied[row] = append([]bool(nil), that.tied[row*that.size:(row+1)*that.size]...)
	}

	return entity.Snapshot{
		BoardSize:   that.size,
		Board:       that.Board(),
		Meta:        meta,
		Tied:        tied,
		WinnerCombo: that.WinnerCombo(),
		Active:      that.ActivePlayer(),
		LastMove:    that.lastMove,
		Playable:    that.PlayableSubBoards(),
		Status:      that.status,
		Winner:      that.winner,
	}
}
