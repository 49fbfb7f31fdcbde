// Package ui specifies custom controls for tview to play minesweeper in the terminal.
package ui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termsweeper/config"
	"termsweeper/engine"
	"termsweeper/types"
)

// Color slots, indexes into MinefieldUI.styles.
const (
	styleHidden = iota
	styleHiddenAlt
	styleRevealed
	styleRevealedAlt
	styleMine
	styleFlag
	styleCursorFG
	styleCursorBG
	styleExplodedBG
)

type MinefieldUI struct {
	Box        *tview.Box
	BoardState *types.BoardState
	hint       *tview.TextView
	cfg        *config.Config
	selX       int
	selY       int
	app        *tview.Application
	eng        engine.GameEngine
	styles     []tcell.Color
	numbers    []tcell.Color
	infoPanel  *GameInfoPanel

	onGameEnd func(outcome types.GameState, boardState *types.BoardState)
	onQuit    func()
}

func NewMinefield(app *tview.Application, c *config.Config, hint *tview.TextView) *MinefieldUI {
	field := &MinefieldUI{
		Box:        tview.NewBox(),
		BoardState: &types.BoardState{},
		hint:       hint,
		app:        app,
	}
	field.SetConfig(c)
	field.Box.SetDrawFunc(func(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
		state := field.BoardState
		if state == nil || state.Width() == 0 {
			return x, y, 1, 1
		}
		// 2 characters per cell for square appearance
		boardW, boardH := state.Width()*2, state.Height()

		for boardY := 0; boardY < state.Height(); boardY++ {
			for boardX := 0; boardX < state.Width(); boardX++ {
				cell := state.Cells[boardY][boardX]
				r, glyph := CellGlyph(cell, state.Finished(), field.cfg.Theme.Symbols)
				style := field.cellStyle(cell, glyph, state.State, boardX, boardY)
				if boardX == field.selX && boardY == field.selY && !state.Finished() {
					style = style.Background(field.styles[styleCursorBG])
					if glyph == GlyphHidden {
						style = style.Foreground(field.styles[styleCursorFG])
					}
				}
				drawCell(screen, style, r, boardX, boardY, x+4, y+1)
			}
		}
		drawCoordinates(screen, x, y, field)
		return x, y, boardW + 4, boardH + 1
	})
	return field
}

// cellStyle colors a cell by its glyph, with alternating backgrounds when
// the theme draws a checkerboard.
func (m *MinefieldUI) cellStyle(cell types.CellView, glyph GlyphStyle, state types.GameState, x, y int) tcell.Style {
	bg := styleHidden
	if cell.Revealed {
		bg = styleRevealed
	}
	if m.cfg.Theme.DrawCheckerboard && (x%2+y%2) == 1 {
		bg++
	}
	style := tcell.StyleDefault.Background(m.styles[bg])

	switch glyph {
	case GlyphNumber:
		if cell.Adjacent <= len(m.numbers) {
			return style.Foreground(m.numbers[cell.Adjacent-1]).Bold(true)
		}
	case GlyphMine:
		if state == types.Lost {
			style = style.Background(m.styles[styleExplodedBG])
		}
		return style.Foreground(m.styles[styleMine])
	case GlyphFlag, GlyphWrongFlag:
		return style.Foreground(m.styles[styleFlag]).Bold(true)
	}
	return style.Foreground(m.styles[styleMine])
}

// ConnectEngine attaches a game session to the field, closing the previous
// one, and starts its clock.
func (m *MinefieldUI) ConnectEngine(ctx context.Context, e engine.GameEngine) {
	m.Close()
	m.eng = e

	e.OnChange(func(boardState *types.BoardState) {
		// Spawn goroutine to avoid deadlock when called from the event loop
		go m.app.QueueUpdateDraw(m.syncState)
	})
	e.OnGameEnd(func(outcome types.GameState, boardState *types.BoardState) {
		if m.onGameEnd != nil {
			m.onGameEnd(outcome, boardState)
		}
	})

	e.Start(ctx)
	m.syncState()
	m.selX = m.BoardState.Width() / 2
	m.selY = m.BoardState.Height() / 2
}

// Engine returns the attached session, nil before ConnectEngine.
func (m *MinefieldUI) Engine() engine.GameEngine {
	return m.eng
}

// OnGameEnd registers a callback for a won or lost game.
func (m *MinefieldUI) OnGameEnd(fn func(outcome types.GameState, boardState *types.BoardState)) {
	m.onGameEnd = fn
}

// OnQuit registers the callback for the q key.
func (m *MinefieldUI) OnQuit(fn func()) {
	m.onQuit = fn
}

func (m *MinefieldUI) syncState() {
	if m.eng == nil {
		return
	}
	m.BoardState = m.eng.GetBoardState()
	m.refreshHint()
}

func (m *MinefieldUI) SelectedTile() types.BoardPos {
	return types.BoardPos{X: m.selX, Y: m.selY}
}

func (m *MinefieldUI) MoveSelection(h, v int) {
	if m.selX+h < 0 || m.selX+h >= m.BoardState.Width() {
		return
	}
	if m.selY+v < 0 || m.selY+v >= m.BoardState.Height() {
		return
	}
	m.selX += h
	m.selY += v
}

// HandleKey is the input capture for the field.
func (m *MinefieldUI) HandleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyUp:
		m.MoveSelection(0, -1)
	case tcell.KeyDown:
		m.MoveSelection(0, 1)
	case tcell.KeyLeft:
		m.MoveSelection(-1, 0)
	case tcell.KeyRight:
		m.MoveSelection(1, 0)
	case tcell.KeyEnter:
		m.Reveal()
	case tcell.KeyRune:
		switch event.Rune() {
		case 'h':
			m.MoveSelection(-1, 0)
		case 'j':
			m.MoveSelection(0, 1)
		case 'k':
			m.MoveSelection(0, -1)
		case 'l':
			m.MoveSelection(1, 0)
		case ' ':
			m.Reveal()
		case 'f':
			m.ToggleFlag()
		case 'r':
			m.Reset()
		case 's':
			m.Save()
		case 'o':
			m.Load()
		case 'q':
			if m.onQuit != nil {
				m.onQuit()
			}
			return nil
		default:
			return event
		}
	default:
		return event
	}
	return nil
}

// Reveal opens the selected cell.
func (m *MinefieldUI) Reveal() {
	if m.eng == nil {
		return
	}
	switch m.eng.Reveal(m.selX, m.selY) {
	case types.Won:
		m.setMessage("Congratulations, you won!")
	case types.Lost:
		m.setMessage("Boom! Game over.")
	}
	m.syncState()
}

// ToggleFlag flags or unflags the selected cell.
func (m *MinefieldUI) ToggleFlag() {
	if m.eng == nil {
		return
	}
	m.eng.ToggleFlag(m.selX, m.selY)
	m.syncState()
}

// Reset starts a new game on the attached session.
func (m *MinefieldUI) Reset() {
	if m.eng == nil {
		return
	}
	m.eng.Reset()
	m.setMessage("")
	m.syncState()
}

// Save writes the board to the configured save file.
func (m *MinefieldUI) Save() {
	if m.eng == nil {
		return
	}
	if err := m.eng.Save(m.cfg.Game.SaveFile); err != nil {
		m.setMessage(fmt.Sprintf("Save failed: %v", err))
	} else {
		m.setMessage("Game saved.")
	}
	m.syncState()
}

// Load replaces the board from the configured save file.
func (m *MinefieldUI) Load() {
	if m.eng == nil {
		return
	}
	if err := m.eng.Load(m.cfg.Game.SaveFile); err != nil {
		m.setMessage(fmt.Sprintf("Load failed: %v", err))
	} else {
		m.setMessage("Game loaded.")
	}
	m.syncState()
}

// Close stops the session clock.
func (m *MinefieldUI) Close() {
	if m.eng == nil {
		return
	}
	m.eng.Close()
}

func (m *MinefieldUI) SetConfig(c *config.Config) {
	m.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.HiddenColor),      // 0
		tcell.PaletteColor(c.Theme.Colors.HiddenColorAlt),   // 1
		tcell.PaletteColor(c.Theme.Colors.RevealedColor),    // 2
		tcell.PaletteColor(c.Theme.Colors.RevealedColorAlt), // 3
		tcell.PaletteColor(c.Theme.Colors.MineColor),        // 4
		tcell.PaletteColor(c.Theme.Colors.FlagColor),        // 5
		tcell.PaletteColor(c.Theme.Colors.CursorColorFG),    // 6
		tcell.PaletteColor(c.Theme.Colors.CursorColorBG),    // 7
		tcell.PaletteColor(c.Theme.Colors.ExplodedColorBG),  // 8
	}
	m.numbers = make([]tcell.Color, len(c.Theme.Colors.NumberColors))
	for i, n := range c.Theme.Colors.NumberColors {
		m.numbers[i] = tcell.PaletteColor(n)
	}
	m.cfg = c
}

func (m *MinefieldUI) setMessage(msg string) {
	if m.infoPanel != nil {
		m.infoPanel.SetMessage(msg)
	}
}

func (m *MinefieldUI) refreshHint() {
	if m.infoPanel != nil {
		m.infoPanel.SetBoardState(m.BoardState)
	}
	if m.hint == nil {
		return
	}

	if m.BoardState.Finished() {
		result := "Boom! Game over."
		if m.BoardState.State == types.Won {
			result = "You won!"
		}
		m.hint.SetText(fmt.Sprintf("  %s  r new game   o load   q menu", result))
		return
	}
	m.hint.SetText(`  hjkl/↑↓←→ move   ⏎/space reveal   f flag
  r new   s save   o load   q menu`)
}

// drawCell draws a cell (2 characters wide)
func drawCell(s tcell.Screen, c tcell.Style, r rune, x, y, l, t int) {
	s.SetContent(l+x*2, t+y, r, nil, c)
	s.SetContent(l+x*2+1, t+y, ' ', nil, c)
}

func drawCoordinates(s tcell.Screen, x, y int, ui *MinefieldUI) {
	w, h := ui.BoardState.Width(), ui.BoardState.Height()

	style := tcell.StyleDefault
	highlight := tcell.StyleDefault.Background(ui.styles[styleCursorBG])

	for ix := 0; ix < w; ix++ {
		_style := style
		if ix == ui.selX {
			_style = highlight
		}
		s.SetContent(x+4+(ix*2), y, rune('A'+ix), nil, _style)
		s.SetContent(x+4+(ix*2)+1, y, ' ', nil, _style)
	}

	for iy := 0; iy < h; iy++ {
		_style := style
		if iy == ui.selY {
			_style = highlight
		}
		displayNum := iy + 1
		tensRune := ' '
		if displayNum >= 10 {
			tensRune = rune('0' + displayNum/10)
		}
		s.SetContent(x+1, y+1+iy, tensRune, nil, _style)
		s.SetContent(x+2, y+1+iy, rune('0'+(displayNum%10)), nil, _style)
	}
}
