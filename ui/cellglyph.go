package ui

import (
	"termsweeper/config"
	"termsweeper/types"
)

// GlyphStyle selects the color slot a cell is drawn with.
type GlyphStyle int

const (
	GlyphHidden GlyphStyle = iota
	GlyphEmpty
	GlyphNumber
	GlyphMine
	GlyphFlag
	GlyphWrongFlag
)

// WrongFlagRune marks a flag that turned out not to cover a mine.
const WrongFlagRune = 'x'

// CellGlyph picks the rune and color slot for a cell. Once the game is
// finished every cell is revealed, and flags stay visible so the player can
// see which ones were right.
func CellGlyph(c types.CellView, finished bool, sym config.ConfigSymbols) (rune, GlyphStyle) {
	if !c.Revealed {
		if c.Flagged {
			return sym.Flag, GlyphFlag
		}
		return sym.Hidden, GlyphHidden
	}
	if finished && c.Flagged {
		if c.Mine {
			return sym.Flag, GlyphFlag
		}
		return WrongFlagRune, GlyphWrongFlag
	}
	switch {
	case c.Mine:
		return sym.Mine, GlyphMine
	case c.Adjacent == 0:
		return sym.Empty, GlyphEmpty
	default:
		return rune('0' + c.Adjacent), GlyphNumber
	}
}
