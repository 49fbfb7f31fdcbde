package ui

import (
	"github.com/rivo/tview"
)

// InstructionsText is shown on start and from the main menu.
const InstructionsText = `Welcome to Minesweeper!

How to Play:
- Move with the arrow keys or hjkl.
- Press Enter or space to reveal a cell.
- Press f to flag a cell you think hides a mine.
- Reveal every cell without a mine to win.

Also:
- r starts a new game, s saves, o loads the saved game.
- The timer tracks how long you take to win.

Enjoy the game!`

// NewInstructions creates the instructions modal. onClose runs when it is dismissed.
func NewInstructions(onClose func()) *tview.Modal {
	modal := tview.NewModal().
		SetText(InstructionsText).
		AddButtons([]string{"Close"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			if onClose != nil {
				onClose()
			}
		})
	modal.SetBackgroundColor(MenuColors.CardBG)
	modal.SetButtonBackgroundColor(MenuColors.ButtonBG)
	modal.SetButtonTextColor(MenuColors.ButtonText)
	return modal
}

// NewMessageModal creates a one-button modal, used for game over and errors.
func NewMessageModal(text string, onClose func()) *tview.Modal {
	return tview.NewModal().
		SetText(text).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			if onClose != nil {
				onClose()
			}
		})
}
