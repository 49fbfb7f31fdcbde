package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termsweeper/history"
)

// HistorySource lists finished games. *history.Store implements it.
type HistorySource interface {
	List(ctx context.Context, limit int) ([]history.GameRecord, error)
	Best(ctx context.Context) (history.GameRecord, error)
}

// historyLimit caps how many games the browser shows.
const historyLimit = 100

// HistoryBrowserUI provides a screen for browsing finished games.
type HistoryBrowserUI struct {
	flex     *tview.Flex
	gameList *tview.List
	details  *tview.TextView
	hint     *tview.TextView
	source   HistorySource
	games    []history.GameRecord
	best     *history.GameRecord
	selected int
	onDone   func()
}

// NewHistoryBrowser creates a new history browser screen. source may be nil
// when the history database could not be opened.
func NewHistoryBrowser(source HistorySource, onDone func()) *HistoryBrowserUI {
	hb := &HistoryBrowserUI{
		source: source,
		onDone: onDone,
	}

	// Game list (left panel)
	hb.gameList = tview.NewList()
	hb.gameList.SetBorder(true)
	hb.gameList.SetTitle(" Game History ")
	hb.gameList.ShowSecondaryText(false)
	hb.gameList.SetHighlightFullLine(true)
	hb.gameList.SetMainTextStyle(tcell.StyleDefault.Foreground(MenuColors.Label))
	hb.gameList.SetSelectedStyle(tcell.StyleDefault.
		Foreground(MenuColors.ButtonText).
		Background(MenuColors.ButtonFocus))

	// Details (right panel)
	hb.details = tview.NewTextView()
	hb.details.SetDynamicColors(true)
	hb.details.SetBorder(true)
	hb.details.SetTitle(" Details ")

	// Hint bar
	hb.hint = tview.NewTextView()
	hb.hint.SetDynamicColors(true)
	hb.hint.SetBorder(false)
	hb.hint.SetText("  [dimgray]r[-] refresh  [dimgray]q[-] back")

	hb.gameList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		hb.selected = index
		hb.showDetails()
	})

	hb.gameList.SetInputCapture(hb.handleInput)

	// Layout: list left, details right, hint bottom
	topRow := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(hb.gameList, 38, 0, true).
		AddItem(hb.details, 0, 1, false)

	hb.flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(topRow, 0, 1, true).
		AddItem(hb.hint, 1, 0, false)

	hb.loadGames()
	return hb
}

// Flex returns the flex container for this UI.
func (hb *HistoryBrowserUI) Flex() *tview.Flex {
	return hb.flex
}

// Refresh reloads the game list from the store.
func (hb *HistoryBrowserUI) Refresh() {
	hb.loadGames()
}

// Games returns the records currently listed.
func (hb *HistoryBrowserUI) Games() []history.GameRecord {
	return hb.games
}

func (hb *HistoryBrowserUI) loadGames() {
	hb.gameList.Clear()
	hb.games = nil
	hb.best = nil
	hb.selected = 0

	if hb.source == nil {
		hb.gameList.AddItem("[dimgray]History unavailable[-]", "", 0, nil)
		hb.showDetails()
		return
	}

	ctx := context.Background()
	games, err := hb.source.List(ctx, historyLimit)
	if err != nil {
		hb.gameList.AddItem("[red]Failed to load history[-]", "", 0, nil)
		hb.details.SetText(tview.Escape(err.Error()))
		return
	}
	if best, err := hb.source.Best(ctx); err == nil {
		hb.best = &best
	} else if !errors.Is(err, history.ErrNoWins) {
		hb.details.SetText(tview.Escape(err.Error()))
	}

	if len(games) == 0 {
		hb.gameList.AddItem("[dimgray]No games found[-]", "", 0, nil)
		hb.showDetails()
		return
	}

	hb.games = games
	for _, g := range games {
		hb.gameList.AddItem(gameLabel(g), "", 0, nil)
	}
	hb.showDetails()
}

func gameLabel(g history.GameRecord) string {
	result := "[red]lost[-]"
	if g.Won {
		result = "[green]won [-]"
	}
	return fmt.Sprintf("%s  %s  %4ds", g.FinishedAt.Local().Format("2006-01-02 15:04"), result, g.ElapsedSecs)
}

func (hb *HistoryBrowserUI) showDetails() {
	var text string
	if hb.selected >= 0 && hb.selected < len(hb.games) {
		g := hb.games[hb.selected]
		result := "[red::b]Lost[-:-:-]"
		if g.Won {
			result = "[green::b]Won[-:-:-]"
		}
		text += fmt.Sprintf("[white]Result:[-] %s\n", result)
		text += fmt.Sprintf("[white]Time:[-] %ds\n", g.ElapsedSecs)
		text += fmt.Sprintf("[white]Flags used:[-] %d\n", g.FlagsUsed)
		text += fmt.Sprintf("[white]Revealed:[-] %d\n", g.RevealedCells)
		text += fmt.Sprintf("[white]Finished:[-] %s\n", g.FinishedAt.Local().Format("2006-01-02 15:04:05"))
		text += fmt.Sprintf("[dimgray]%s[-]\n", g.ID)
	}
	if hb.best != nil {
		text += "\n[dimgray]──────────────────────[-:-:-]\n"
		text += fmt.Sprintf("[white::b]Best time:[-:-:-] %ds\n", hb.best.ElapsedSecs)
	}
	hb.details.SetText(text)
}

// handleInput processes keyboard input for the history browser.
func (hb *HistoryBrowserUI) handleInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape:
		if hb.onDone != nil {
			hb.onDone()
		}
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q':
			if hb.onDone != nil {
				hb.onDone()
			}
			return nil
		case 'r':
			hb.Refresh()
			return nil
		}
	}
	return event
}

// drawText writes a string to the screen at the given position.
func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	i := 0
	for _, ch := range text {
		screen.SetContent(x+i, y, ch, nil, style)
		i++
	}
}
