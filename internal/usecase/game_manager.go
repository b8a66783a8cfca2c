package usecase

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/uttt-engine/internal/entity"
)

type engine interface {
	CheckMove(row, col int) error
	ProcessMove(row, col int, label string) error
	TogglePlayer()
	Reset()

	ActivePlayer() entity.Player
	BoardSize() int
	MetaLabel(subRow, subCol int) (string, error)
	Status() entity.Status
	Winner() string
	Snapshot() entity.Snapshot
}

// TurnResult describes an accepted move.
type TurnResult struct {
	Player      entity.Player
	Move        entity.Position
	SubBoardWon bool
	Status      entity.Status
	Winner      string
}

// GameManager runs the validate, apply, inspect, toggle loop over one engine.
type GameManager struct {
	logger *slog.Logger
	engine engine

	gameID string
}

func NewGameManager(logger *slog.Logger, engine engine) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),
		engine: engine,

		gameID: uuid.NewString(),
	}
}

// GameID identifies the current game; it changes on every Reset.
func (that *GameManager) GameID() string {
	return that.gameID
}

// MakeTurn plays (row, col) for the active player. The turn passes to the next
// player unless the move ended the game.
func (that *GameManager) MakeTurn(row, col int) (*TurnResult, error) {
	player := that.engine.ActivePlayer()
	log := that.logger.With("method", "MakeTurn", "game_id", that.gameID, "player", player.Label, "row", row, "col", col)

	if err := that.engine.CheckMove(row, col); err != nil {
		log.Debug("move rejected", "error", err)
		return nil, fmt.Errorf("invalid turn: %w", err)
	}

	n := that.engine.BoardSize()
	sub := entity.Position{Row: row / n, Col: col / n}

	before, err := that.engine.MetaLabel(sub.Row, sub.Col)
	if err != nil {
		return nil, fmt.Errorf("failed to read sub-board: %w", err)
	}

	if err = that.engine.ProcessMove(row, col, player.Label); err != nil {
		return nil, fmt.Errorf("failed to process move: %w", err)
	}

	after, err := that.engine.MetaLabel(sub.Row, sub.Col)
	if err != nil {
		return nil, fmt.Errorf("failed to read sub-board: %w", err)
	}

	result := &TurnResult{
		Player:      player,
		Move:        entity.Position{Row: row, Col: col},
		SubBoardWon: before == entity.EmptyCell && after == player.Label,
		Status:      that.engine.Status(),
		Winner:      that.engine.Winner(),
	}

	if result.SubBoardWon {
		log.Debug("sub-board won", "sub_row", sub.Row, "sub_col", sub.Col)
	}

	switch result.Status {
	case entity.StatusWon:
		log.Info("game won", "winner", result.Winner)
	case entity.StatusTied:
		log.Info("game tied")
	default:
		that.engine.TogglePlayer()
		log.Debug("move accepted", "next", that.engine.ActivePlayer().Label)
	}

	return result, nil
}

// Reset starts a new game on the same engine.
func (that *GameManager) Reset() {
	previous := that.gameID

	that.engine.Reset()
	that.gameID = uuid.NewString()

	that.logger.Info("game reset", "previous_game_id", previous, "game_id", that.gameID, "next", that.engine.ActivePlayer().Label)
}

func (that *GameManager) Snapshot() entity.Snapshot {
	return that.engine.Snapshot()
}
