package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// MenuItem identifies an entry of the main menu.
type MenuItem int

const (
	MenuNewGame MenuItem = iota
	MenuContinue
	MenuLoad
	MenuHistory
	MenuTheme
	MenuInstructions
	MenuQuit
)

// MainMenu is the start screen: a card with one button per MenuItem.
type MainMenu struct {
	*MenuCard
	buttons []*MenuButton
	focus   int
}

// NewMainMenu creates the menu. onSelect is called with the chosen item.
// Continue starts disabled, see SetContinueEnabled.
func NewMainMenu(onSelect func(MenuItem)) *MainMenu {
	m := &MainMenu{
		MenuCard: NewMenuCard("T E R M S W E E P E R", '✹'),
	}
	entries := []struct {
		label    string
		shortcut rune
	}{
		{"New Game", 'n'},
		{"Continue", 'c'},
		{"Load Game", 'o'},
		{"History", 'h'},
		{"Colors", 't'},
		{"Instructions", 'i'},
		{"Quit", 'q'},
	}
	for i, e := range entries {
		item := MenuItem(i)
		m.buttons = append(m.buttons, NewMenuButton(e.label, e.shortcut, func() {
			if onSelect != nil {
				onSelect(item)
			}
		}))
	}
	m.buttons[MenuContinue].SetDisabled(true)
	m.buttons[m.focus].SetFocused(true)
	return m
}

// SetContinueEnabled enables Continue while a game is in progress.
func (m *MainMenu) SetContinueEnabled(enabled bool) {
	m.buttons[MenuContinue].SetDisabled(!enabled)
	if !enabled && m.focus == int(MenuContinue) {
		m.setFocus(int(MenuNewGame))
	}
}

// Focused returns the highlighted item.
func (m *MainMenu) Focused() MenuItem {
	return MenuItem(m.focus)
}

func (m *MainMenu) setFocus(i int) {
	m.buttons[m.focus].SetFocused(false)
	m.focus = i
	m.buttons[m.focus].SetFocused(true)
}

// moveFocus steps to the next enabled button in direction dir, stopping at
// either end.
func (m *MainMenu) moveFocus(dir int) {
	for i := m.focus + dir; i >= 0 && i < len(m.buttons); i += dir {
		if !m.buttons[i].Disabled() {
			m.setFocus(i)
			return
		}
	}
}

// Draw renders the card and the buttons stacked under its title.
func (m *MainMenu) Draw(screen tcell.Screen) {
	m.MenuCard.SetFocused(m.HasFocus())
	m.MenuCard.Draw(screen)

	x, y, width, height := m.GetInnerRect()
	row := y + 6
	for _, b := range m.buttons {
		if row >= y+height-2 {
			break
		}
		b.Draw(screen, x+(width-b.Width())/2, row)
		row += 2
	}

	hint := "↑↓/jk move   ⏎ select"
	hintStyle := tcell.StyleDefault.Foreground(MenuColors.Hint).Background(MenuColors.CardBG)
	if height > 8 {
		drawText(screen, x+(width-len([]rune(hint)))/2, y+height-2, hint, hintStyle)
	}
}

// InputHandler moves the focus and presses buttons.
func (m *MainMenu) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return m.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyUp, tcell.KeyBacktab:
			m.moveFocus(-1)
			return
		case tcell.KeyDown, tcell.KeyTab:
			m.moveFocus(1)
			return
		case tcell.KeyEnter:
			m.buttons[m.focus].Press()
			return
		case tcell.KeyRune:
			switch event.Rune() {
			case 'k':
				m.moveFocus(-1)
				return
			case 'j':
				m.moveFocus(1)
				return
			}
		}
		for _, b := range m.buttons {
			if b.HandleKey(event) {
				return
			}
		}
	})
}
