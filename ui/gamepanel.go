package ui

import (
	"fmt"

	"github.com/rivo/tview"

	"termsweeper/types"
)

// GameInfoPanel displays the clock, flag count and game state alongside the board.
type GameInfoPanel struct {
	box        *tview.TextView
	boardState *types.BoardState
	message    string
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box: tview.NewTextView(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetBoardState updates the panel with current board state.
func (p *GameInfoPanel) SetBoardState(state *types.BoardState) {
	p.boardState = state
	p.refresh()
}

// SetMessage shows a one-line message under the game info, such as a save result.
func (p *GameInfoPanel) SetMessage(msg string) {
	p.message = msg
	p.refresh()
}

// refresh updates the panel text.
func (p *GameInfoPanel) refresh() {
	if p.boardState == nil {
		p.box.SetText("")
		return
	}
	s := p.boardState

	var text string

	text += "[white::b]Game Info[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"

	text += fmt.Sprintf("[white]Time:[-:-:-] %ds\n", s.ElapsedSecs)
	text += fmt.Sprintf("[white]Flags used:[-:-:-] %d\n", s.FlagsUsed)
	text += fmt.Sprintf("[white]Mines left:[-:-:-] %d\n", s.MinesLeft())
	text += fmt.Sprintf("[white]Revealed:[-:-:-] %d/%d\n", s.RevealedCount, s.Width()*s.Height()-s.MineCount)

	state := "[white]Playing[-]"
	switch s.State {
	case types.Unstarted:
		state = "[dimgray]Not started[-]"
	case types.Won:
		state = "[green::b]Won[-:-:-]"
	case types.Lost:
		state = "[red::b]Lost[-:-:-]"
	}
	text += fmt.Sprintf("[white]State:[-:-:-] %s\n", state)

	if p.message != "" {
		text += "\n[dimgray]──────────────────────[-:-:-]\n"
		text += tview.Escape(p.message) + "\n"
	}

	p.box.SetText(text)
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(field *MinefieldUI, hint *tview.TextView) *tview.Flex {
	infoPanel := NewGameInfoPanel()

	// Store panel reference in the field for updates
	field.infoPanel = infoPanel
	if field.BoardState != nil {
		infoPanel.SetBoardState(field.BoardState)
	}

	// Create horizontal flex: board | info panel
	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(field.Box, 0, 1, true)         // Board (flexible, takes remaining space)
	boardRow.AddItem(infoPanel.Box(), 26, 0, false) // Info panel (fixed width)

	// Main vertical flex: board area on top, compact status bar at bottom
	mainFlex := tview.NewFlex().SetDirection(tview.FlexRow)
	mainFlex.AddItem(boardRow, 0, 1, true)
	mainFlex.AddItem(hint, 2, 0, false) // Compact: just 2 rows

	return mainFlex
}

// CreateCenteredForm creates a centered container of fixed width.
func CreateCenteredForm(form tview.Primitive, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)        // Left spacer
	centered.AddItem(form, maxWidth, 0, true) // Form with max width
	centered.AddItem(nil, 0, 1, false)        // Right spacer

	return centered
}
