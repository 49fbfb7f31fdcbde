package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"termsweeper/config"
	"termsweeper/types"
)

func TestCellGlyph(t *testing.T) {
	sym := config.ConfigSymbols{Hidden: '#', Empty: ' ', Mine: '*', Flag: 'F'}

	tests := []struct {
		name      string
		cell      types.CellView
		finished  bool
		wantRune  rune
		wantStyle GlyphStyle
	}{
		{"hidden", types.CellView{}, false, '#', GlyphHidden},
		{"hidden mine", types.CellView{Mine: true}, false, '#', GlyphHidden},
		{"flagged", types.CellView{Flagged: true}, false, 'F', GlyphFlag},
		{"empty", types.CellView{Revealed: true}, false, ' ', GlyphEmpty},
		{"number", types.CellView{Revealed: true, Adjacent: 3}, false, '3', GlyphNumber},
		{"eight", types.CellView{Revealed: true, Adjacent: 8}, false, '8', GlyphNumber},
		{"mine", types.CellView{Revealed: true, Mine: true}, true, '*', GlyphMine},
		{"revealed under flag while playing", types.CellView{Revealed: true, Flagged: true, Adjacent: 2}, false, '2', GlyphNumber},
		{"correct flag at end", types.CellView{Revealed: true, Flagged: true, Mine: true}, true, 'F', GlyphFlag},
		{"wrong flag at end", types.CellView{Revealed: true, Flagged: true, Adjacent: 1}, true, WrongFlagRune, GlyphWrongFlag},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, style := CellGlyph(tt.cell, tt.finished, sym)
			assert.Equal(t, tt.wantRune, r)
			assert.Equal(t, tt.wantStyle, style)
		})
	}
}
