package ui

import (
	"github.com/gdamore/tcell/v2"
)

// MenuButton is one selectable line of the main menu.
type MenuButton struct {
	label    string
	shortcut rune
	focused  bool
	disabled bool
	onSelect func()
}

// NewMenuButton creates a new menu button. shortcut is the key that selects
// it directly, or 0 for none.
func NewMenuButton(label string, shortcut rune, onSelect func()) *MenuButton {
	return &MenuButton{
		label:    label,
		shortcut: shortcut,
		onSelect: onSelect,
	}
}

// SetFocused sets the focus state.
func (b *MenuButton) SetFocused(focused bool) {
	b.focused = focused
}

// SetDisabled greys the button out and makes it ignore input.
func (b *MenuButton) SetDisabled(disabled bool) {
	b.disabled = disabled
}

// Disabled reports whether the button ignores input.
func (b *MenuButton) Disabled() bool {
	return b.disabled
}

// Label returns the button text.
func (b *MenuButton) Label() string {
	return b.label
}

// Press runs the select callback unless the button is disabled.
func (b *MenuButton) Press() bool {
	if b.disabled || b.onSelect == nil {
		return false
	}
	b.onSelect()
	return true
}

// HandleKey processes keyboard input. Returns true if handled.
func (b *MenuButton) HandleKey(event *tcell.EventKey) bool {
	switch event.Key() {
	case tcell.KeyEnter:
		return b.Press()
	case tcell.KeyRune:
		if b.shortcut != 0 && event.Rune() == b.shortcut {
			return b.Press()
		}
	}
	return false
}

// Draw renders the button component at the given position.
// Returns the width used.
func (b *MenuButton) Draw(screen tcell.Screen, x, y int) int {
	label := b.text()
	width := len([]rune(label)) + 2

	switch {
	case b.focused && !b.disabled:
		// Filled background, bright text
		style := tcell.StyleDefault.
			Foreground(MenuColors.ButtonText).
			Background(MenuColors.ButtonFocus)
		for i := 0; i < width; i++ {
			screen.SetContent(x+i, y, ' ', nil, style)
		}
		col := x + 1
		for _, ch := range label {
			screen.SetContent(col, y, ch, nil, style)
			col++
		}
	default:
		// Dim text with brackets, no fill
		textColor := MenuColors.Label
		if b.disabled {
			textColor = MenuColors.Unselected
		}
		textStyle := tcell.StyleDefault.
			Foreground(textColor).
			Background(MenuColors.CardBG)
		bracketStyle := tcell.StyleDefault.
			Foreground(MenuColors.Border).
			Background(MenuColors.CardBG)

		screen.SetContent(x, y, '[', nil, bracketStyle)
		col := x + 1
		for _, ch := range label {
			screen.SetContent(col, y, ch, nil, textStyle)
			col++
		}
		screen.SetContent(col, y, ']', nil, bracketStyle)
	}

	return width
}

func (b *MenuButton) text() string {
	if b.shortcut == 0 {
		return b.label
	}
	return string(b.shortcut) + "  " + b.label
}

// Width returns the button width.
func (b *MenuButton) Width() int {
	return len([]rune(b.text())) + 2 // 1 padding on each side (or brackets)
}
