package entity

import (
	"fmt"

	"github.com/rocketscienceinc/uttt-engine/internal/apperror"
)

const (
	PlayerX = "X"
	PlayerO = "O"

	ColorBlue = "blue"
	ColorRed  = "red"

	EmptyCell = ""
)

// DefaultPlayers is the standard two-player rotation.
var DefaultPlayers = []Player{
	{Label: PlayerX, Color: ColorBlue},
	{Label: PlayerO, Color: ColorRed},
}

// Player is a symbol placed on the board plus the colour used to draw it.
type Player struct {
	Label string `json:"label" yaml:"symbol"`
	Color string `json:"color" yaml:"color"`
}

// ValidatePlayers checks that the rotation is non-empty and every label is distinct.
func ValidatePlayers(players []Player) error {
	if len(players) == 0 {
		return apperror.ErrNoPlayers
	}

	seen := make(map[string]struct{}, len(players))
	for i, player := range players {
		if player.Label == EmptyCell {
			return fmt.Errorf("%w: player %d has an empty label", apperror.ErrInvalidPlayer, i)
		}

		if _, ok := seen[player.Label]; ok {
			return fmt.Errorf("%w: duplicate label %q", apperror.ErrInvalidPlayer, player.Label)
		}
		seen[player.Label] = struct{}{}
	}

	return nil
}
