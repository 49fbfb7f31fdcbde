package board

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termsweeper/types"
)

func writeTempSave(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCellEncode(t *testing.T) {
	tests := []struct {
		cell Cell
		want string
	}{
		{Cell{}, "EH"},
		{Cell{Revealed: true}, "ER"},
		{Cell{Mine: true}, "MH"},
		{Cell{Mine: true, Revealed: true}, "MR"},
		{Cell{Flagged: true, Adjacent: 3}, "EH"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.cell.Encode(), "%+v", tt.cell)
	}
}

func TestCellDecode(t *testing.T) {
	tests := []struct {
		token   string
		applied bool
		want    Cell
	}{
		{"EH", true, Cell{Adjacent: 2, Flagged: true}},
		{"ER", true, Cell{Revealed: true, Adjacent: 2, Flagged: true}},
		{"MH", true, Cell{Mine: true, Adjacent: 2, Flagged: true}},
		{"MR", true, Cell{Mine: true, Revealed: true, Adjacent: 2, Flagged: true}},
		{"XY", true, Cell{Adjacent: 2, Flagged: true}},
		{"", false, Cell{Mine: true, Adjacent: 2, Flagged: true}},
		{"M", false, Cell{Mine: true, Adjacent: 2, Flagged: true}},
		{"MRX", false, Cell{Mine: true, Adjacent: 2, Flagged: true}},
	}
	for _, tt := range tests {
		c := Cell{Mine: true, Adjacent: 2, Flagged: true}
		assert.Equal(t, tt.applied, c.Decode(tt.token), "token %q", tt.token)
		assert.Equal(t, tt.want, c, "token %q", tt.token)
	}
}

func TestWriteTo(t *testing.T) {
	b := NewWithMines(topRowMines())
	b.Reveal(0, 9)

	var buf bytes.Buffer
	n, err := b.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, Size)
	for _, line := range lines {
		assert.Len(t, line, 2*Size)
	}
	assert.Equal(t, strings.Repeat("MH", 9)+"EH", lines[0])
	assert.Equal(t, strings.Repeat("ER", 10), lines[1])
	assert.Equal(t, strings.Repeat("ER", 5)+"MH"+strings.Repeat("ER", 4), lines[5])
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "minesweeper_save.txt")
	src := NewWithMines(topRowMines())
	src.Reveal(0, 9)
	src.Reveal(9, 0)
	require.NoError(t, src.Save(path))

	dst := New(rand.New(rand.NewSource(99)))
	require.NoError(t, dst.Load(path))

	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			assert.Equal(t, src.IsCellMine(x, y), dst.IsCellMine(x, y), "mine (%d,%d)", x, y)
			assert.Equal(t, src.IsCellRevealed(x, y), dst.IsCellRevealed(x, y), "revealed (%d,%d)", x, y)
		}
	}
	assert.Equal(t, types.Won, src.State())
	assert.Equal(t, types.Lost, dst.State(), "the format does not record the outcome")
}

func TestSaveLoadInProgress(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minesweeper_save.txt")
	src := NewWithMines(topRowMines())
	src.Reveal(0, 9)
	require.NoError(t, src.Save(path))

	dst := New(rand.New(rand.NewSource(99)))
	require.NoError(t, dst.Load(path))

	assert.Equal(t, src.String(), dst.String())
	assert.Equal(t, types.InProgress, dst.State())
	assert.Equal(t, 89, dst.RevealedCount())
}

func TestLoadRecountsRevealed(t *testing.T) {
	b := NewWithMines(topRowMines())
	save := strings.Repeat("ER", 10) + "\n" + strings.Repeat("ER", 3) + strings.Repeat("EH", 7) + "\n"

	_, err := b.ReadFrom(strings.NewReader(save))
	require.NoError(t, err)

	assert.Equal(t, 13, b.RevealedCount())
	assert.Equal(t, 13, b.OpenedCount())
	assert.Equal(t, types.InProgress, b.State())
	assert.False(t, b.IsCellMine(0, 0), "row 1 was overwritten")
	assert.True(t, b.IsCellMine(5, 5), "rows past the input keep their state")
}

func TestLoadLostBoard(t *testing.T) {
	b := NewWithMines(topRowMines())
	_, err := b.ReadFrom(strings.NewReader("MR" + strings.Repeat("EH", 9) + "\n"))
	require.NoError(t, err)
	assert.Equal(t, types.Lost, b.State())
}

func TestLoadTruncatedLines(t *testing.T) {
	b := NewWithMines(nil)
	// Odd length: only the first two full tokens apply.
	_, err := b.ReadFrom(strings.NewReader("MRERM\r\nMH\n"))
	require.NoError(t, err)

	assert.True(t, b.IsCellMine(0, 0))
	assert.True(t, b.IsCellRevealed(0, 0))
	assert.True(t, b.IsCellRevealed(1, 0))
	assert.False(t, b.IsCellMine(2, 0))
	assert.True(t, b.IsCellMine(0, 1))
	assert.False(t, b.IsCellRevealed(0, 1))
}

func TestLoadIgnoresExtraColumnsAndRows(t *testing.T) {
	b := NewWithMines(nil)
	var sb strings.Builder
	for i := 0; i < Size+3; i++ {
		sb.WriteString(strings.Repeat("ER", Size+5))
		sb.WriteString("\n")
	}
	_, err := b.ReadFrom(strings.NewReader(sb.String()))
	require.NoError(t, err)
	assert.Equal(t, Size*Size, countRevealed(b))
}

func TestLoadKeepsAdjacency(t *testing.T) {
	b := NewWithMines([]types.BoardPos{{X: 1, Y: 1}})
	// The save clears the mine but adjacent counts stay as computed.
	_, err := b.ReadFrom(strings.NewReader(strings.Repeat("EH", 10) + "\n" + strings.Repeat("EH", 10) + "\n"))
	require.NoError(t, err)

	assert.False(t, b.IsCellMine(1, 1))
	c, _ := b.Cell(0, 0)
	assert.Equal(t, 1, c.Adjacent)
}

func TestRebuildAdjacency(t *testing.T) {
	b := NewWithMines([]types.BoardPos{{X: 1, Y: 1}})
	// Row 0 gains a mine at C1, row 1 keeps B2.
	_, err := b.ReadFrom(strings.NewReader("EHEHMH\n"))
	require.NoError(t, err)

	c, _ := b.Cell(3, 1)
	assert.Equal(t, 0, c.Adjacent)

	b.RebuildAdjacency()

	for _, tt := range []struct{ x, y, want int }{
		{0, 0, 1},
		{1, 0, 2},
		{3, 1, 1},
		{5, 5, 0},
	} {
		c, _ := b.Cell(tt.x, tt.y)
		assert.Equal(t, tt.want, c.Adjacent, "cell %d,%d", tt.x, tt.y)
	}
}

func TestLoadMissingFile(t *testing.T) {
	b := NewWithMines(topRowMines())
	before := b.Snapshot()

	err := b.Load("/nonexistent/minesweeper_save.txt")

	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Equal(t, before, b.Snapshot())
}

func TestReadFromErrorLeavesBoard(t *testing.T) {
	b := NewWithMines(topRowMines())
	before := b.Snapshot()

	r := io.MultiReader(strings.NewReader(strings.Repeat("ER", 10)+"\n"), iotest.ErrReader(errors.New("disk gone")))
	_, err := b.ReadFrom(r)

	require.Error(t, err)
	assert.Equal(t, before, b.Snapshot())
}

func TestSaveUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := writeTempSave(t, dir, "file", "x")

	err := NewWithMines(nil).Save(filepath.Join(blocker, "save.txt"))
	assert.Error(t, err)
}

func TestStringGolden(t *testing.T) {
	g := goldie.New(t)

	b := NewWithMines(topRowMines())
	b.Reveal(0, 9)
	g.Assert(t, "flood_fill", []byte(b.String()))

	b = NewWithMines(lastColumnMines())
	b.ToggleFlag(0, 2)
	b.ToggleFlag(9, 9)
	g.Assert(t, "flagged", []byte(b.String()))
}
