// Package board implements the minesweeper rules: mine placement, adjacency
// counting, flood-fill reveal, flagging, win/loss detection and the save format.
//
// A Board is not safe for concurrent use. Callers that share one between
// goroutines must serialize access, see engine/local.
package board

import (
	"math/rand"
	"time"

	"termsweeper/types"
)

const (
	// Size is the width and height of the grid.
	Size = 10
	// Mines is the number of mines on every board.
	Mines = 10
)

// Board is a Size x Size minefield. Cells are indexed as cells[y][x].
type Board struct {
	size     int
	mines    int
	cells    [][]Cell
	revealed int
	opened   int
	flags    int
	elapsed  int
	state    types.GameState
	rng      *rand.Rand
}

// New creates a board with mines placed. A nil rng seeds from the clock.
func New(rng *rand.Rand) *Board {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	b := newEmpty(rng)
	b.placeMines(b.mines)
	return b
}

// NewWithMines creates a board with mines at exactly the given positions.
// Out-of-range and duplicate positions are skipped and the mine count is the
// number actually placed. A later Reset places that many mines randomly.
func NewWithMines(positions []types.BoardPos) *Board {
	b := newEmpty(rand.New(rand.NewSource(time.Now().UnixNano())))
	placed := 0
	for _, p := range positions {
		if !b.inBounds(p.X, p.Y) || b.cells[p.Y][p.X].Mine {
			continue
		}
		b.setMine(p.X, p.Y)
		placed++
	}
	b.mines = placed
	return b
}

// Blank creates a board with the standard mine count but no mines placed,
// a base for loading a save file into.
func Blank() *Board {
	return newEmpty(rand.New(rand.NewSource(time.Now().UnixNano())))
}

func newEmpty(rng *rand.Rand) *Board {
	cells := make([][]Cell, Size)
	for y := range cells {
		cells[y] = make([]Cell, Size)
	}
	return &Board{
		size:  Size,
		mines: Mines,
		cells: cells,
		rng:   rng,
	}
}

// placeMines draws random coordinates until count distinct cells are mined.
// The board must not hold any mines yet.
func (b *Board) placeMines(count int) {
	placed := 0
	for placed < count {
		x := b.rng.Intn(b.size)
		y := b.rng.Intn(b.size)
		if b.cells[y][x].Mine {
			continue
		}
		b.setMine(x, y)
		placed++
	}
}

func (b *Board) setMine(x, y int) {
	b.cells[y][x].Mine = true
	b.neighbors(x, y, func(nx, ny int) {
		if !b.cells[ny][nx].Mine {
			b.cells[ny][nx].Adjacent++
		}
	})
}

// RebuildAdjacency recomputes every Adjacent count from the mines on the
// board. Load leaves the counts untouched, so viewers of a loaded save call
// this to show correct numbers.
func (b *Board) RebuildAdjacency() {
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x].Adjacent = 0
		}
	}
	for y := range b.cells {
		for x := range b.cells[y] {
			if b.cells[y][x].Mine {
				b.setMine(x, y)
			}
		}
	}
}

func (b *Board) inBounds(x, y int) bool {
	return x >= 0 && x < b.size && y >= 0 && y < b.size
}

// neighbors calls fn for each in-bounds cell around (x, y).
func (b *Board) neighbors(x, y int, fn func(nx, ny int)) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if b.inBounds(nx, ny) {
				fn(nx, ny)
			}
		}
	}
}

// Reveal opens the cell at (x, y) and returns the resulting game state.
//
// Out-of-range coordinates and already revealed cells are ignored. Opening a
// mine loses the game. Opening a cell with no adjacent mines opens the
// connected zero region and its numbered border; mines are never opened as a
// side effect.
func (b *Board) Reveal(x, y int) types.GameState {
	if b.state.Finished() || !b.inBounds(x, y) || b.cells[y][x].Revealed {
		return b.state
	}
	if b.state == types.Unstarted {
		b.state = types.InProgress
	}

	origin := &b.cells[y][x]
	if origin.Mine {
		origin.Revealed = true
		b.gameOver(false)
		return b.state
	}

	stack := []types.BoardPos{{X: x, Y: y}}
	for len(stack) > 0 && !b.state.Finished() {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		c := &b.cells[p.Y][p.X]
		if c.Revealed || c.Mine {
			continue
		}
		c.Revealed = true
		b.revealed++
		b.opened++
		if b.revealed == b.size*b.size-b.mines {
			b.gameOver(true)
			break
		}
		if c.Adjacent != 0 {
			continue
		}
		b.neighbors(p.X, p.Y, func(nx, ny int) {
			if !b.cells[ny][nx].Revealed {
				stack = append(stack, types.BoardPos{X: nx, Y: ny})
			}
		})
	}
	return b.state
}

// ToggleFlag flips the flag on (x, y) and returns the new flag state and the
// change in flags used. Out-of-range coordinates return (false, 0).
func (b *Board) ToggleFlag(x, y int) (flagged bool, delta int) {
	if b.state.Finished() || !b.inBounds(x, y) {
		return false, 0
	}
	c := &b.cells[y][x]
	c.Flagged = !c.Flagged
	if c.Flagged {
		b.flags++
		return true, 1
	}
	b.flags--
	return false, -1
}

// gameOver moves to the terminal state and opens every cell. Safe cells
// opened here count towards RevealedCount but not OpenedCount.
func (b *Board) gameOver(won bool) {
	b.state = types.Lost
	if won {
		b.state = types.Won
	}
	for y := range b.cells {
		for x := range b.cells[y] {
			c := &b.cells[y][x]
			if !c.Revealed && !c.Mine {
				b.revealed++
			}
			c.Revealed = true
		}
	}
}

// Reset returns the board to a freshly constructed state with new mines.
func (b *Board) Reset() {
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x].reset()
		}
	}
	b.revealed = 0
	b.opened = 0
	b.flags = 0
	b.elapsed = 0
	b.state = types.Unstarted
	b.placeMines(b.mines)
}

// Tick advances the elapsed time by one second while a game is in progress.
func (b *Board) Tick() bool {
	if b.state != types.InProgress {
		return false
	}
	b.elapsed++
	return true
}

// Size returns the width (and height) of the board.
func (b *Board) Size() int {
	return b.size
}

func (b *Board) MineCount() int {
	return b.mines
}

// ElapsedTime returns the seconds counted by Tick since the first reveal.
func (b *Board) ElapsedTime() int {
	return b.elapsed
}

func (b *Board) FlagsUsed() int {
	return b.flags
}

// RevealedCount returns the number of revealed non-mine cells.
func (b *Board) RevealedCount() int {
	return b.revealed
}

// OpenedCount returns the non-mine cells the player opened, leaving out those
// shown when the game ended.
func (b *Board) OpenedCount() int {
	return b.opened
}

func (b *Board) State() types.GameState {
	return b.state
}

// IsCellRevealed reports false for out-of-range coordinates, as do
// IsCellMine and IsCellFlagged.
func (b *Board) IsCellRevealed(x, y int) bool {
	return b.inBounds(x, y) && b.cells[y][x].Revealed
}

func (b *Board) IsCellMine(x, y int) bool {
	return b.inBounds(x, y) && b.cells[y][x].Mine
}

func (b *Board) IsCellFlagged(x, y int) bool {
	return b.inBounds(x, y) && b.cells[y][x].Flagged
}

// Cell returns a copy of the cell at (x, y).
func (b *Board) Cell(x, y int) (Cell, bool) {
	if !b.inBounds(x, y) {
		return Cell{}, false
	}
	return b.cells[y][x], true
}

// Snapshot returns a deep copy of the board for rendering.
func (b *Board) Snapshot() *types.BoardState {
	cells := make([][]types.CellView, b.size)
	for y := range cells {
		cells[y] = make([]types.CellView, b.size)
		for x, c := range b.cells[y] {
			cells[y][x] = types.CellView{
				Mine:     c.Mine,
				Revealed: c.Revealed,
				Flagged:  c.Flagged,
				Adjacent: c.Adjacent,
			}
		}
	}
	return &types.BoardState{
		State:         b.state,
		Cells:         cells,
		ElapsedSecs:   b.elapsed,
		FlagsUsed:     b.flags,
		MineCount:     b.mines,
		RevealedCount: b.revealed,
		OpenedCount:   b.opened,
	}
}
