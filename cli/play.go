package cli

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"termsweeper/config"
	"termsweeper/engine/local"
	"termsweeper/history"
	"termsweeper/types"
	"termsweeper/ui"
)

// gameApp holds the screens of the terminal game.
type gameApp struct {
	opts  *RootOptions
	cfg   *config.Config
	log   logrus.FieldLogger
	store *history.Store
	ctx   context.Context

	app       *tview.Application
	rootPage  *tview.Pages
	field     *ui.MinefieldUI
	gameFrame *tview.Flex
	gameHint  *tview.TextView
	menu      *ui.MainMenu
	historyUI *ui.HistoryBrowserUI
	colorUI   *ui.ColorConfigUI
}

func runPlay(opts *RootOptions, cmd *cobra.Command) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	log, logFile, err := opts.openLog()
	if err != nil {
		return err
	}
	defer logFile.Close()

	st, err := history.Open(cfg.Game.HistoryFile)
	if err != nil {
		log.WithError(err).Warn("history unavailable")
		st = nil
	} else {
		defer st.Close()
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	g := newGameApp(ctx, opts, cfg, log, st)
	defer g.field.Close()

	log.WithField("save_file", cfg.Game.SaveFile).Info("starting")
	return g.app.SetRoot(g.rootPage, true).Run()
}

func newGameApp(ctx context.Context, opts *RootOptions, cfg *config.Config, log logrus.FieldLogger, st *history.Store) *gameApp {
	g := &gameApp{
		opts:  opts,
		cfg:   cfg,
		log:   log,
		store: st,
		ctx:   ctx,
	}

	g.app = tview.NewApplication()
	g.rootPage = tview.NewPages()
	g.rootPage.SetBorder(true).SetTitle(" ✹ termsweeper ")

	// Game view setup
	g.gameHint = tview.NewTextView()
	g.gameHint.SetBorderPadding(0, 0, 1, 1)
	g.field = ui.NewMinefield(g.app, cfg, g.gameHint)
	g.gameFrame = ui.CreateGameLayout(g.field, g.gameHint)
	g.field.Box.SetInputCapture(g.field.HandleKey)
	g.field.OnQuit(g.showMenu)
	g.field.OnGameEnd(g.gameOver)

	g.menu = ui.NewMainMenu(g.menuSelect)
	menuFrame := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(ui.CreateCenteredForm(g.menu, 44), 24, 0, true).
		AddItem(nil, 0, 1, false)

	var source ui.HistorySource
	if st != nil {
		source = st
	}
	g.historyUI = ui.NewHistoryBrowser(source, func() {
		g.rootPage.SwitchToPage("menu")
	})

	g.colorUI = ui.NewColorConfig(cfg, func() {
		g.field.SetConfig(g.cfg)
		g.rootPage.SwitchToPage("menu")
	})

	g.rootPage.AddPage("menu", menuFrame, true, !opts.Play)
	g.rootPage.AddPage("gameview", g.gameFrame, true, opts.Play)
	g.rootPage.AddPage("history", g.historyUI.Flex(), true, false)
	g.rootPage.AddPage("colors", g.colorUI.Flex(), true, false)

	if opts.Play {
		g.startGame()
	}
	if cfg.Game.ShowInstructions {
		g.showInstructions()
	}
	return g
}

func (g *gameApp) menuSelect(item ui.MenuItem) {
	switch item {
	case ui.MenuNewGame:
		g.startGame()
	case ui.MenuContinue:
		g.rootPage.SwitchToPage("gameview")
	case ui.MenuLoad:
		if g.field.Engine() == nil {
			g.startGame()
		}
		g.field.Load()
		g.rootPage.SwitchToPage("gameview")
	case ui.MenuHistory:
		g.historyUI.Refresh()
		g.rootPage.SwitchToPage("history")
	case ui.MenuTheme:
		g.rootPage.SwitchToPage("colors")
	case ui.MenuInstructions:
		g.showInstructions()
	case ui.MenuQuit:
		g.app.Stop()
	}
}

// startGame starts a new session with fresh mines.
func (g *gameApp) startGame() {
	eng := local.NewLocalEngine(g.opts.engineConfig(g.cfg, g.log))
	g.field.ConnectEngine(g.ctx, eng)
	g.rootPage.SwitchToPage("gameview")
}

func (g *gameApp) showMenu() {
	state := g.field.BoardState
	g.menu.SetContinueEnabled(g.field.Engine() != nil && state != nil && !state.Finished())
	g.rootPage.SwitchToPage("menu")
}

func (g *gameApp) showInstructions() {
	modal := ui.NewInstructions(func() {
		g.rootPage.RemovePage("instructions")
	})
	g.rootPage.AddPage("instructions", modal, true, true)
}

// gameOver records the game and shows the result.
func (g *gameApp) gameOver(outcome types.GameState, state *types.BoardState) {
	if g.store != nil {
		r, err := g.store.Record(g.ctx, history.NewRecord(outcome, state))
		if err != nil {
			g.log.WithError(err).Warn("record game failed")
		} else {
			g.log.WithField("id", r.ID).Debug("game recorded")
		}
	}

	text := "Boom! Game Over."
	if outcome == types.Won {
		text = fmt.Sprintf("Congratulations, you won!\n\nTime: %ds", state.ElapsedSecs)
	}
	go g.app.QueueUpdateDraw(func() {
		modal := ui.NewMessageModal(text, func() {
			g.rootPage.RemovePage("gameover")
			g.app.SetFocus(g.field.Box)
		})
		modal.SetBackgroundColor(tcell.ColorDarkSlateGray)
		g.rootPage.AddPage("gameover", modal, true, true)
	})
}
