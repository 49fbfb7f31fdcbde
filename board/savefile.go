package board

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"termsweeper/types"
)

// WriteTo writes one line per row, top to bottom, each line holding the
// two character encodings of the row's cells.
func (b *Board) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	for y := range b.cells {
		for _, c := range b.cells[y] {
			sb.WriteString(c.Encode())
		}
		sb.WriteString("\n")
	}
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// ReadFrom reads a save written by WriteTo and applies it to the board.
//
// The input is read completely before anything changes, so a read error
// leaves the board untouched. Missing rows keep their current state and each
// row applies only as many cells as its length allows. Adjacent counts are
// not recomputed.
func (b *Board) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return int64(len(data)), err
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	row := 0
	for row < b.size && scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		for col := 0; col < b.size && col < len(line)/2; col++ {
			b.cells[row][col].Decode(line[2*col : 2*col+2])
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		return int64(len(data)), err
	}

	b.recount()
	return int64(len(data)), nil
}

// recount rebuilds the revealed counters and game state from the cells.
// The file does not say which cells the player opened, so every revealed
// safe cell counts as opened.
func (b *Board) recount() {
	b.revealed = 0
	mineShown := false
	for y := range b.cells {
		for _, c := range b.cells[y] {
			switch {
			case c.Revealed && c.Mine:
				mineShown = true
			case c.Revealed:
				b.revealed++
			}
		}
	}
	b.opened = b.revealed

	switch {
	case mineShown:
		b.state = types.Lost
	case b.revealed == b.size*b.size-b.mines:
		b.state = types.Won
	case b.revealed > 0:
		b.state = types.InProgress
	default:
		b.state = types.Unstarted
	}
}

// Save writes the board to path, creating parent directories as needed.
func (b *Board) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}
	var buf bytes.Buffer
	if _, err := b.WriteTo(&buf); err != nil {
		return fmt.Errorf("encode board: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write save file: %w", err)
	}
	return nil
}

// Load reads a save file into the board. On error the board is unchanged.
func (b *Board) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open save file: %w", err)
	}
	defer f.Close()
	if _, err := b.ReadFrom(f); err != nil {
		return fmt.Errorf("read save file: %w", err)
	}
	return nil
}

// String renders the board as text, see Format.
func (b *Board) String() string {
	return Format(b.Snapshot())
}

// Format renders a board snapshot as text: column letters across the top,
// row numbers down the side, "-" for hidden cells, "F" for flagged hidden
// cells, "*" for revealed mines, "." for revealed zeros and digits otherwise.
func Format(s *types.BoardState) string {
	var sb strings.Builder
	sb.WriteString("   ")
	for x := 0; x < s.Width(); x++ {
		fmt.Fprintf(&sb, " %c", 'A'+x)
	}
	sb.WriteString("\n")
	for y, row := range s.Cells {
		fmt.Fprintf(&sb, "%2d ", y+1)
		for _, c := range row {
			sb.WriteString(" ")
			sb.WriteByte(cellRune(c))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func cellRune(c types.CellView) byte {
	switch {
	case !c.Revealed && c.Flagged:
		return 'F'
	case !c.Revealed:
		return '-'
	case c.Mine:
		return '*'
	case c.Adjacent == 0:
		return '.'
	default:
		return byte('0' + c.Adjacent)
	}
}
