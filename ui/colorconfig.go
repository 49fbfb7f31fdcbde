package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termsweeper/config"
)

// ColorTarget is the part of the minefield the color screen is editing.
type ColorTarget int

const (
	TargetHidden ColorTarget = iota
	TargetRevealed
	TargetFlag
	TargetMine
	numColorTargets
)

var colorTargetNames = [...]string{"Hidden Cells", "Revealed Cells", "Flags", "Mines"}

func (t ColorTarget) String() string {
	return colorTargetNames[t]
}

// Palette offered for every target.
var cellColors = []struct {
	code int
	name string
}{
	{255, "White"},
	{253, "Light Gray"},
	{250, "Gray"},
	{246, "Medium Gray"},
	{244, "Steel Gray"},
	{240, "Dark Gray"},
	{236, "Charcoal"},
	{232, "Black"},
	{230, "Light Cream"},
	{223, "Peach"},
	{180, "Tan"},
	{136, "Dark Brown"},
	{196, "Bright Red"},
	{160, "Red"},
	{88, "Dark Red"},
	{208, "Dark Orange"},
	{220, "Bright Yellow"},
	{28, "Green"},
	{23, "Teal"},
	{25, "Blue"},
	{17, "Navy Blue"},
	{54, "Purple"},
}

// ColorConfigUI lets the player pick minefield colors with a live preview.
// Applied colors are written to the config file.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	status    *tview.TextView
	cfg       *config.Config
	onDone    func()

	target   ColorTarget
	selected int // color code under the list cursor
}

// NewColorConfig creates the color screen. onDone runs when the player leaves it.
func NewColorConfig(cfg *config.Config, onDone func()) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:    cfg,
		onDone: onDone,
	}

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.ShowSecondaryText(false)
	cc.colorList.SetHighlightFullLine(true)
	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if index >= 0 && index < len(cellColors) {
			cc.selected = cellColors[index].code
		}
	})
	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		cc.SelectColor(index)
		cc.Apply()
	})
	cc.colorList.SetInputCapture(cc.handleInput)

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetTitle(" Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	cc.status = tview.NewTextView()
	cc.status.SetDynamicColors(true)
	cc.status.SetText("  [dimgray]⏎[-] apply  [dimgray]tab[-] next part  [dimgray]q[-] back")

	top := tview.NewFlex().
		AddItem(cc.colorList, 30, 0, true).
		AddItem(cc.preview, 0, 1, false)
	cc.flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(top, 0, 1, true).
		AddItem(cc.status, 1, 0, false)

	cc.populateColorList()
	return cc
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// Target returns the part being edited.
func (cc *ColorConfigUI) Target() ColorTarget {
	return cc.target
}

// Selected returns the color code shown in the preview.
func (cc *ColorConfigUI) Selected() int {
	return cc.selected
}

// NextTarget moves on to the next part of the minefield, wrapping around.
func (cc *ColorConfigUI) NextTarget() {
	cc.target = (cc.target + 1) % numColorTargets
	cc.populateColorList()
}

// SelectColor moves the list cursor to palette entry index.
func (cc *ColorConfigUI) SelectColor(index int) {
	if index < 0 || index >= len(cellColors) {
		return
	}
	cc.colorList.SetCurrentItem(index)
	cc.selected = cellColors[index].code
}

// Apply stores the selected color for the current target and saves the config.
func (cc *ColorConfigUI) Apply() error {
	for _, slot := range cc.slots(cc.target) {
		*slot = cc.selected
	}
	if err := cc.cfg.Save(); err != nil {
		cc.status.SetText(fmt.Sprintf("  [red]%s[-]", tview.Escape(err.Error())))
		return err
	}
	cc.status.SetText(fmt.Sprintf("  %s color saved.", cc.target))
	return nil
}

// slots returns the config fields a target sets. Both checkerboard shades
// get the same color.
func (cc *ColorConfigUI) slots(t ColorTarget) []*int {
	c := &cc.cfg.Theme.Colors
	switch t {
	case TargetHidden:
		return []*int{&c.HiddenColor, &c.HiddenColorAlt}
	case TargetRevealed:
		return []*int{&c.RevealedColor, &c.RevealedColorAlt}
	case TargetFlag:
		return []*int{&c.FlagColor}
	default:
		return []*int{&c.MineColor}
	}
}

// colorFor is the preview color of t: the list selection for the current
// target, the saved color for the others.
func (cc *ColorConfigUI) colorFor(t ColorTarget) tcell.Color {
	if t == cc.target {
		return tcell.PaletteColor(cc.selected)
	}
	return tcell.PaletteColor(*cc.slots(t)[0])
}

func (cc *ColorConfigUI) populateColorList() {
	cc.colorList.Clear()
	cc.colorList.SetTitle(fmt.Sprintf(" %s (Tab: next) ", cc.target))

	current := *cc.slots(cc.target)[0]
	for _, c := range cellColors {
		cc.colorList.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
			tcell.PaletteColor(c.code).Hex(), c.name, c.code),
			"", 0, nil)
	}
	for i, c := range cellColors {
		if c.code == current {
			cc.colorList.SetCurrentItem(i)
			break
		}
	}
	cc.selected = current
}

func (cc *ColorConfigUI) handleInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyTab:
		cc.NextTarget()
		return nil
	case tcell.KeyEscape:
		if cc.onDone != nil {
			cc.onDone()
		}
		return nil
	case tcell.KeyRune:
		if event.Rune() == 'q' {
			if cc.onDone != nil {
				cc.onDone()
			}
			return nil
		}
	}
	return event
}

// previewField is a small sample board: h hidden, f flag, m mine, digits
// revealed numbers and '.' revealed empty cells.
var previewField = []string{
	"hhhfh",
	"h21hh",
	"h1.1m",
	"h1.12",
	"hh...",
}

func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	startX := x + 2
	startY := y + 1
	if width < 16 || height < len(previewField)+4 {
		return x, y, width, height
	}

	sym := cc.cfg.Theme.Symbols
	numbers := cc.cfg.Theme.Colors.NumberColors
	hidden := tcell.StyleDefault.Background(cc.colorFor(TargetHidden))
	revealed := tcell.StyleDefault.Background(cc.colorFor(TargetRevealed))

	for row, line := range previewField {
		for col, ch := range line {
			style := revealed
			r := sym.Empty
			switch {
			case ch == 'h':
				style, r = hidden, sym.Hidden
			case ch == 'f':
				style, r = hidden.Foreground(cc.colorFor(TargetFlag)).Bold(true), sym.Flag
			case ch == 'm':
				style, r = revealed.Foreground(cc.colorFor(TargetMine)), sym.Mine
			case ch >= '1' && ch <= '8':
				r = ch
				if n := int(ch - '1'); n < len(numbers) {
					style = style.Foreground(tcell.PaletteColor(numbers[n])).Bold(true)
				}
			}
			drawCell(screen, style, r, col, row, startX, startY)
		}
	}

	info := fmt.Sprintf("%s: %d", cc.target, cc.selected)
	drawText(screen, startX, startY+len(previewField)+1, info, tcell.StyleDefault)
	return x, y, width, height
}
