package tictactoe

import "github.com/rocketscienceinc/uttt-engine/internal/entity"

// Line is one winning combination: N aligned positions.
type Line []entity.Position

// WinningLines returns every row, every column, the main diagonal and the
// anti-diagonal of an n×n grid, in that order (2n+2 lines).
func WinningLines(n int) []Line {
	lines := make([]Line, 0, 2*n+2)

	for row := 0; row < n; row++ {
		line := make(Line, n)
		for col := 0; col < n; col++ {
			line[col] = entity.Position{Row: row, Col: col}
		}
		lines = append(lines, line)
	}

	for col := 0; col < n; col++ {
		line := make(Line, n)
		for row := 0; row < n; row++ {
			line[row] = entity.Position{Row: row, Col: col}
		}
		lines = append(lines, line)
	}

	diagonal := make(Line, n)
	antiDiagonal := make(Line, n)
	for i := 0; i < n; i++ {
		diagonal[i] = entity.Position{Row: i, Col: i}
		antiDiagonal[i] = entity.Position{Row: i, Col: n - 1 - i}
	}

	return append(lines, diagonal, antiDiagonal)
}

// Translate maps a line of an n×n grid onto the sub-board at (subRow, subCol)
// of a grid whose sub-boards are scale cells wide.
func (that Line) Translate(subRow, subCol, scale int) Line {
	out := make(Line, len(that))
	for i, pos := range that {
		out[i] = entity.Position{
			Row: subRow*scale + pos.Row,
			Col: subCol*scale + pos.Col,
		}
	}

	return out
}

func (that Line) Contains(pos entity.Position) bool {
	for _, p := range that {
		if p == pos {
			return true
		}
	}

	return false
}

// ownedBy reports whether every position of the line carries label.
func (that Line) ownedBy(label string, labelAt func(entity.Position) string) bool {
	for _, pos := range that {
		if labelAt(pos) != label {
			return false
		}
	}

	return true
}
