// Package engine defines the interface the UI and the text protocol use to
// play a game.
package engine

import (
	"context"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"termsweeper/types"
)

// GameEngine is a running minesweeper session.
type GameEngine interface {
	// Start begins the elapsed-time clock. It returns immediately; the clock
	// stops when ctx is done or Close is called.
	Start(ctx context.Context)

	// GetBoardState returns a copy of the current board.
	GetBoardState() *types.BoardState

	// Reveal opens a cell. Out-of-range coordinates are ignored.
	Reveal(x, y int) types.GameState

	// ToggleFlag flips the flag on a cell and returns the new flag state.
	ToggleFlag(x, y int) bool

	// Reset starts a new game with fresh mines.
	Reset()

	// Save writes the board to path. Load replaces the board from path and
	// leaves it unchanged on error.
	Save(path string) error
	Load(path string) error

	// OnChange registers a callback for any visible change, ticks included.
	// boardState is passed directly to avoid lock contention.
	OnChange(func(boardState *types.BoardState))

	// OnGameEnd registers a callback for when a game is won or lost.
	OnGameEnd(func(outcome types.GameState, boardState *types.BoardState))

	// Close stops the clock.
	Close()
}

// GameConfig holds configuration for starting a session.
type GameConfig struct {
	Rand   *rand.Rand         // Mine placement source; nil seeds from the clock
	Tick   time.Duration      // Clock interval, one second of game time per tick
	Logger logrus.FieldLogger // nil discards
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		Tick: time.Second,
	}
}
