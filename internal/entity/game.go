package entity

import (
	"errors"
	"fmt"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Status is the overall state of a game.
type Status int

const (
	StatusInProgress Status = iota
	StatusWon
	StatusTied
)

func (that Status) String() string {
	switch that {
	case StatusInProgress:
		return "in_progress"
	case StatusWon:
		return "won"
	case StatusTied:
		return "tied"
	default:
		return fmt.Sprintf("status(%d)", int(that))
	}
}

// IsFinished reports whether no further moves can be played.
func (that Status) IsFinished() bool {
	return that == StatusWon || that == StatusTied
}

// ParseStatus is the inverse of Status.String.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "in_progress":
		return StatusInProgress, nil
	case "won":
		return StatusWon, nil
	case "tied":
		return StatusTied, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownGameStatus, s)
	}
}

func (that Status) MarshalText() ([]byte, error) {
	switch that {
	case StatusInProgress, StatusWon, StatusTied:
		return []byte(that.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownGameStatus, int(that))
	}
}

func (that *Status) UnmarshalText(text []byte) error {
	status, err := ParseStatus(string(text))
	if err != nil {
		return err
	}

	*that = status

	return nil
}

// Position is a (row, col) pair. Depending on context it addresses the fine board,
// a sub-board, or the meta board.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NoPosition is the "free choice" sentinel used before the first move.
var NoPosition = Position{Row: -1, Col: -1}

// Snapshot is a read-only copy of a game for presentation.
type Snapshot struct {
	BoardSize   int        `json:"board_size"`
	Board       [][]string `json:"board"`
	Meta        [][]string `json:"meta"`
	Tied        [][]bool   `json:"tied"`
	WinnerCombo []Position `json:"winner_combo"`
	Active      Player     `json:"active"`
	LastMove    Position   `json:"last_move"`
	Playable    []Position `json:"playable"`
	Status      Status     `json:"status"`
	Winner      string     `json:"winner,omitempty"`
}
