package board

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termsweeper/types"
)

// lastColumnMines puts every mine in column J, so columns A-I are one
// connected zero region bordered by column I.
func lastColumnMines() []types.BoardPos {
	var mines []types.BoardPos
	for y := 0; y < Size; y++ {
		mines = append(mines, types.BoardPos{X: Size - 1, Y: y})
	}
	return mines
}

// topRowMines mines A1-I1 plus F6. Revealing A10 opens everything except
// J1 and the mines.
func topRowMines() []types.BoardPos {
	var mines []types.BoardPos
	for x := 0; x < 9; x++ {
		mines = append(mines, types.BoardPos{X: x, Y: 0})
	}
	return append(mines, types.BoardPos{X: 5, Y: 5})
}

func countMines(b *Board) int {
	n := 0
	for y := 0; y < b.Size(); y++ {
		for x := 0; x < b.Size(); x++ {
			if b.IsCellMine(x, y) {
				n++
			}
		}
	}
	return n
}

func countRevealed(b *Board) int {
	n := 0
	for y := 0; y < b.Size(); y++ {
		for x := 0; x < b.Size(); x++ {
			if b.IsCellRevealed(x, y) {
				n++
			}
		}
	}
	return n
}

func TestNewBoard(t *testing.T) {
	b := New(rand.New(rand.NewSource(1)))

	assert.Equal(t, 10, b.Size())
	assert.Equal(t, 10, b.MineCount())
	assert.Equal(t, 0, b.FlagsUsed())
	assert.Equal(t, 0, b.ElapsedTime())
	assert.Equal(t, 0, b.RevealedCount())
	assert.Equal(t, types.Unstarted, b.State())
	assert.Equal(t, 0, countRevealed(b))
}

func TestNewBoardNilRand(t *testing.T) {
	b := New(nil)
	assert.Equal(t, Mines, countMines(b))
}

func TestMinePlacementCount(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		b := New(rand.New(rand.NewSource(seed)))
		require.Equal(t, Mines, countMines(b), "seed %d", seed)
	}
}

func TestAdjacencyMatchesMines(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		b := New(rand.New(rand.NewSource(seed)))
		for y := 0; y < Size; y++ {
			for x := 0; x < Size; x++ {
				c, ok := b.Cell(x, y)
				require.True(t, ok)
				if c.Mine {
					continue
				}
				want := 0
				b.neighbors(x, y, func(nx, ny int) {
					if b.IsCellMine(nx, ny) {
						want++
					}
				})
				require.Equal(t, want, c.Adjacent, "seed %d cell (%d,%d)", seed, x, y)
			}
		}
	}
}

func TestNewWithMines(t *testing.T) {
	b := NewWithMines([]types.BoardPos{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: -1, Y: 3}, {X: 1, Y: 1}})

	assert.Equal(t, 2, b.MineCount())
	assert.Equal(t, 2, countMines(b))

	c, _ := b.Cell(1, 0)
	assert.Equal(t, 2, c.Adjacent)
	c, _ = b.Cell(2, 2)
	assert.Equal(t, 1, c.Adjacent)
}

func TestBlank(t *testing.T) {
	b := Blank()
	assert.Equal(t, Mines, b.MineCount())
	assert.Equal(t, 0, countMines(b))
	assert.Equal(t, types.Unstarted, b.State())
}

func TestRevealTwiceIsIdempotent(t *testing.T) {
	b := NewWithMines(topRowMines())

	b.Reveal(9, 9)
	first := b.Snapshot()
	b.Reveal(9, 9)

	assert.Equal(t, first, b.Snapshot())
}

func TestRevealNumberedCellOnly(t *testing.T) {
	b := NewWithMines(topRowMines())

	state := b.Reveal(3, 1)

	assert.Equal(t, types.InProgress, state)
	assert.True(t, b.IsCellRevealed(3, 1))
	assert.Equal(t, 1, b.RevealedCount())
	assert.Equal(t, 1, countRevealed(b))
}

func TestRevealFloodFill(t *testing.T) {
	b := NewWithMines(topRowMines())

	state := b.Reveal(0, 9)

	assert.Equal(t, types.InProgress, state)
	assert.Equal(t, 89, b.RevealedCount())
	assert.False(t, b.IsCellRevealed(9, 0), "J1 borders no zero cell")
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if b.IsCellMine(x, y) {
				assert.False(t, b.IsCellRevealed(x, y), "mine (%d,%d) opened by flood fill", x, y)
			}
		}
	}
}

func TestRevealFloodFillStopsAtNumbers(t *testing.T) {
	b := NewWithMines([]types.BoardPos{{X: 5, Y: 5}})

	b.Reveal(5, 4)

	assert.Equal(t, 1, b.RevealedCount())
	assert.False(t, b.IsCellRevealed(5, 3))
}

func TestFlagDoesNotBlockReveal(t *testing.T) {
	b := NewWithMines(topRowMines())
	b.ToggleFlag(4, 8)

	b.Reveal(4, 8)

	assert.True(t, b.IsCellRevealed(4, 8))
	assert.True(t, b.IsCellFlagged(4, 8))
}

func TestRevealMineLoses(t *testing.T) {
	b := NewWithMines(topRowMines())

	state := b.Reveal(5, 5)

	assert.Equal(t, types.Lost, state)
	assert.True(t, state.Finished())
	assert.Equal(t, Size*Size, countRevealed(b))
	assert.Equal(t, 90, b.RevealedCount(), "every safe cell is shown on loss")
	assert.Equal(t, 0, b.OpenedCount())
}

func TestLossCountsMatchAfterReload(t *testing.T) {
	b := NewWithMines(topRowMines())
	require.Equal(t, types.InProgress, b.Reveal(3, 1))
	require.Equal(t, types.Lost, b.Reveal(5, 5))

	assert.Equal(t, 90, b.RevealedCount())
	assert.Equal(t, 1, b.OpenedCount())
	assert.Equal(t, 1, b.Snapshot().OpenedCount)

	var buf bytes.Buffer
	_, err := b.WriteTo(&buf)
	require.NoError(t, err)
	loaded := NewWithMines(topRowMines())
	_, err = loaded.ReadFrom(&buf)
	require.NoError(t, err)

	assert.Equal(t, types.Lost, loaded.State())
	assert.Equal(t, b.RevealedCount(), loaded.RevealedCount())
}

func TestWinExactlyOnce(t *testing.T) {
	b := NewWithMines(lastColumnMines())

	state := b.Reveal(0, 0)

	require.Equal(t, types.Won, state)
	assert.Equal(t, 90, b.RevealedCount())
	assert.Equal(t, Size*Size, countRevealed(b))

	// Terminal: nothing changes any more.
	before := b.Snapshot()
	assert.Equal(t, types.Won, b.Reveal(9, 0))
	flagged, delta := b.ToggleFlag(1, 1)
	assert.False(t, flagged)
	assert.Equal(t, 0, delta)
	assert.False(t, b.Tick())
	assert.Equal(t, before, b.Snapshot())
}

func TestWinCellByCell(t *testing.T) {
	b := NewWithMines(topRowMines())
	transitions := 0
	prev := b.State()
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if b.IsCellMine(x, y) {
				continue
			}
			state := b.Reveal(x, y)
			if prev != types.Won && state == types.Won {
				assert.Equal(t, types.InProgress, prev)
				transitions++
			}
			if prev == types.Won {
				assert.Equal(t, types.Won, state)
			}
			prev = state
		}
	}
	assert.Equal(t, types.Won, b.State())
	assert.Equal(t, 90, b.RevealedCount())
	assert.Equal(t, 1, transitions)
}

func TestToggleFlag(t *testing.T) {
	b := New(rand.New(rand.NewSource(7)))

	flagged, delta := b.ToggleFlag(1, 1)
	assert.True(t, flagged)
	assert.Equal(t, 1, delta)
	b.ToggleFlag(2, 2)
	flagged, delta = b.ToggleFlag(1, 1)
	assert.False(t, flagged)
	assert.Equal(t, -1, delta)

	assert.Equal(t, 1, b.FlagsUsed())
	assert.False(t, b.IsCellFlagged(1, 1))
	assert.True(t, b.IsCellFlagged(2, 2))
	assert.False(t, b.IsCellRevealed(2, 2))
	assert.Equal(t, types.Unstarted, b.State())
}

func TestOutOfBoundsIsNoop(t *testing.T) {
	coords := []types.BoardPos{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 3, Y: 42}}
	b := New(rand.New(rand.NewSource(3)))
	before := b.Snapshot()

	for _, p := range coords {
		assert.Equal(t, types.Unstarted, b.Reveal(p.X, p.Y))
		flagged, delta := b.ToggleFlag(p.X, p.Y)
		assert.False(t, flagged)
		assert.Equal(t, 0, delta)
		assert.False(t, b.IsCellRevealed(p.X, p.Y))
		assert.False(t, b.IsCellMine(p.X, p.Y))
		assert.False(t, b.IsCellFlagged(p.X, p.Y))
		_, ok := b.Cell(p.X, p.Y)
		assert.False(t, ok)
	}
	assert.Equal(t, before, b.Snapshot())
}

func TestTick(t *testing.T) {
	b := NewWithMines(topRowMines())

	assert.False(t, b.Tick(), "clock starts with the first reveal")
	b.Reveal(3, 1)
	assert.True(t, b.Tick())
	assert.True(t, b.Tick())
	assert.Equal(t, 2, b.ElapsedTime())

	b.Reveal(0, 0)
	assert.False(t, b.Tick())
	assert.Equal(t, 2, b.ElapsedTime())
}

func TestReset(t *testing.T) {
	b := New(rand.New(rand.NewSource(11)))
	b.Reveal(0, 0)
	b.ToggleFlag(1, 1)
	b.Tick()

	b.Reset()

	assert.Equal(t, types.Unstarted, b.State())
	assert.Equal(t, 0, b.FlagsUsed())
	assert.Equal(t, 0, b.ElapsedTime())
	assert.Equal(t, 0, b.RevealedCount())
	assert.Equal(t, 0, b.OpenedCount())
	assert.Equal(t, 0, countRevealed(b))
	assert.False(t, b.IsCellFlagged(1, 1))
	assert.Equal(t, Mines, countMines(b))
}

func TestResetAfterLoss(t *testing.T) {
	b := NewWithMines(topRowMines())
	require.Equal(t, types.Lost, b.Reveal(0, 0))

	b.Reset()

	assert.Equal(t, types.Unstarted, b.State())
	assert.Equal(t, 0, countRevealed(b))
	assert.Equal(t, 10, countMines(b))
}

func TestSnapshotIsCopy(t *testing.T) {
	b := NewWithMines(topRowMines())
	snap := b.Snapshot()
	snap.Cells[9][9].Revealed = true

	assert.False(t, b.IsCellRevealed(9, 9))
	assert.Equal(t, 10, snap.Width())
	assert.Equal(t, 10, snap.Height())
	assert.Equal(t, 10, snap.MinesLeft())
}
