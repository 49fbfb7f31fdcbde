// Package local implements engine.GameEngine with an in-process board.
package local

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"termsweeper/board"
	"termsweeper/engine"
	"termsweeper/types"
)

var _ engine.GameEngine = (*LocalEngine)(nil)

// LocalEngine serializes every board mutation and clock tick through one
// mutex. Callbacks run after the lock is released.
type LocalEngine struct {
	config engine.GameConfig
	board  *board.Board
	log    logrus.FieldLogger

	changeCallback func(boardState *types.BoardState)
	endCallback    func(outcome types.GameState, boardState *types.BoardState)

	cancel context.CancelFunc
	done   chan struct{}

	mu sync.Mutex
}

// NewLocalEngine creates a session with mines already placed.
func NewLocalEngine(cfg engine.GameConfig) *LocalEngine {
	if cfg.Tick <= 0 {
		cfg.Tick = time.Second
	}
	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &LocalEngine{
		config: cfg,
		board:  board.New(cfg.Rand),
		log:    log,
	}
}

// NewLocalEngineWithBoard wraps an existing board, for tests and replays.
func NewLocalEngineWithBoard(cfg engine.GameConfig, b *board.Board) *LocalEngine {
	e := NewLocalEngine(cfg)
	e.board = b
	return e
}

// Start launches the clock goroutine. Calling Start twice restarts the clock.
func (e *LocalEngine) Start(ctx context.Context) {
	e.Close()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	e.mu.Lock()
	e.cancel = cancel
	e.done = done
	e.mu.Unlock()

	go e.run(ctx, done)
}

func (e *LocalEngine) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(e.config.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.tick()
		}
	}
}

func (e *LocalEngine) tick() {
	e.mu.Lock()
	if !e.board.Tick() {
		e.mu.Unlock()
		return
	}
	state := e.board.Snapshot()
	e.mu.Unlock()

	e.notifyChange(state)
}

// GetBoardState returns a copy of the current board.
func (e *LocalEngine) GetBoardState() *types.BoardState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.board.Snapshot()
}

// Reveal opens a cell and reports game end through the OnGameEnd callback.
func (e *LocalEngine) Reveal(x, y int) types.GameState {
	e.mu.Lock()
	before := e.board.State()
	if before.Finished() || e.board.IsCellRevealed(x, y) {
		e.mu.Unlock()
		return before
	}
	after := e.board.Reveal(x, y)
	state := e.board.Snapshot()
	e.mu.Unlock()

	e.log.WithFields(logrus.Fields{
		"x":        x,
		"y":        y,
		"state":    after,
		"revealed": state.RevealedCount,
	}).Debug("reveal")

	e.notifyChange(state)
	if after.Finished() {
		e.log.WithFields(logrus.Fields{
			"outcome": after,
			"elapsed": state.ElapsedSecs,
		}).Info("game over")
		if e.endCallback != nil {
			e.endCallback(after, state)
		}
	}
	return after
}

// ToggleFlag flips the flag on a cell.
func (e *LocalEngine) ToggleFlag(x, y int) bool {
	e.mu.Lock()
	flagged, delta := e.board.ToggleFlag(x, y)
	if delta == 0 {
		e.mu.Unlock()
		return flagged
	}
	state := e.board.Snapshot()
	e.mu.Unlock()

	e.log.WithFields(logrus.Fields{
		"x":       x,
		"y":       y,
		"flagged": flagged,
		"flags":   state.FlagsUsed,
	}).Debug("toggle flag")

	e.notifyChange(state)
	return flagged
}

// Reset starts a new game.
func (e *LocalEngine) Reset() {
	e.mu.Lock()
	e.board.Reset()
	state := e.board.Snapshot()
	e.mu.Unlock()

	e.log.Debug("reset")
	e.notifyChange(state)
}

// Save writes the board to path.
func (e *LocalEngine) Save(path string) error {
	e.mu.Lock()
	err := e.board.Save(path)
	e.mu.Unlock()

	if err != nil {
		e.log.WithError(err).WithField("path", path).Warn("save failed")
		return err
	}
	e.log.WithField("path", path).Debug("saved")
	return nil
}

// Load replaces the board from path.
func (e *LocalEngine) Load(path string) error {
	e.mu.Lock()
	err := e.board.Load(path)
	state := e.board.Snapshot()
	e.mu.Unlock()

	if err != nil {
		e.log.WithError(err).WithField("path", path).Warn("load failed")
		return err
	}
	e.log.WithFields(logrus.Fields{
		"path":     path,
		"state":    state.State,
		"revealed": state.RevealedCount,
	}).Debug("loaded")
	e.notifyChange(state)
	return nil
}

// OnChange registers a callback for board changes.
func (e *LocalEngine) OnChange(callback func(boardState *types.BoardState)) {
	e.changeCallback = callback
}

// OnGameEnd registers a callback for when the game ends.
func (e *LocalEngine) OnGameEnd(callback func(outcome types.GameState, boardState *types.BoardState)) {
	e.endCallback = callback
}

func (e *LocalEngine) notifyChange(state *types.BoardState) {
	if e.changeCallback != nil {
		e.changeCallback(state)
	}
}

// Close stops the clock and waits for its goroutine to exit.
func (e *LocalEngine) Close() {
	e.mu.Lock()
	cancel, done := e.cancel, e.done
	e.cancel, e.done = nil, nil
	e.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
