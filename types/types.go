// Package types contains shared data structures for termsweeper.
package types

import (
	"encoding/json"
	"fmt"
)

// GameState is the lifecycle phase of a board.
type GameState int

const (
	Unstarted GameState = iota
	InProgress
	Won
	Lost
)

var stateNames = [...]string{"unstarted", "playing", "won", "lost"}

func (s GameState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("GameState(%d)", int(s))
	}
	return stateNames[s]
}

// Finished returns true for Won and Lost.
func (s GameState) Finished() bool {
	return s == Won || s == Lost
}

// MarshalJSON encodes the state by name.
func (s GameState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the names produced by MarshalJSON.
func (s *GameState) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range stateNames {
		if n == name {
			*s = GameState(i)
			return nil
		}
	}
	return fmt.Errorf("unknown game state %q", name)
}

// BoardPos represents a position on the board.
type BoardPos struct {
	X int
	Y int
}

// UnmarshalJSON allows BoardPos to be unmarshaled from a JSON array [x, y].
func (p *BoardPos) UnmarshalJSON(data []byte) error {
	var v []int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if len(v) != 2 {
		return fmt.Errorf("board position needs 2 values, got %d", len(v))
	}
	p.X = v[0]
	p.Y = v[1]
	return nil
}

// CellView is the rendered state of one cell.
type CellView struct {
	Mine     bool `json:"mine"`
	Revealed bool `json:"revealed"`
	Flagged  bool `json:"flagged"`
	Adjacent int  `json:"adjacent"`
}

// BoardState is a detached copy of a board for rendering.
// Cells is indexed as Cells[y][x].
type BoardState struct {
	State         GameState    `json:"state"`
	Cells         [][]CellView `json:"cells"`
	ElapsedSecs   int          `json:"elapsed_seconds"`
	FlagsUsed     int          `json:"flags_used"`
	MineCount     int          `json:"mine_count"`
	RevealedCount int          `json:"revealed_count"`
	OpenedCount   int          `json:"opened_count"`
}

// Finished returns true if the game is over.
func (b *BoardState) Finished() bool {
	return b.State.Finished()
}

// Height returns the board height.
func (b *BoardState) Height() int {
	return len(b.Cells)
}

// Width returns the board width.
func (b *BoardState) Width() int {
	if b.Height() == 0 {
		return 0
	}
	return len(b.Cells[0])
}

// MinesLeft is the mine count minus placed flags. It goes negative when over-flagged.
func (b *BoardState) MinesLeft() int {
	return b.MineCount - b.FlagsUsed
}
