package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termsweeper/history"
	"termsweeper/types"
)

type fakeHistory struct {
	games  []history.GameRecord
	err    error
	limit  int
	listed int
}

func (f *fakeHistory) List(ctx context.Context, limit int) ([]history.GameRecord, error) {
	f.limit = limit
	f.listed++
	return f.games, f.err
}

func (f *fakeHistory) Best(ctx context.Context) (history.GameRecord, error) {
	var best *history.GameRecord
	for i, g := range f.games {
		if g.Won && (best == nil || g.ElapsedSecs < best.ElapsedSecs) {
			best = &f.games[i]
		}
	}
	if best == nil {
		return history.GameRecord{}, history.ErrNoWins
	}
	return *best, nil
}

func TestHistoryBrowserLists(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	src := &fakeHistory{games: []history.GameRecord{
		{ID: "b", Won: true, ElapsedSecs: 40, FinishedAt: at.Add(time.Hour)},
		{ID: "a", Won: false, ElapsedSecs: 12, FlagsUsed: 2, RevealedCells: 30, FinishedAt: at},
		{ID: "c", Won: true, ElapsedSecs: 25, FinishedAt: at.Add(-time.Hour)},
	}}

	hb := NewHistoryBrowser(src, nil)

	assert.Equal(t, historyLimit, src.limit)
	require.Equal(t, 3, hb.gameList.GetItemCount())
	assert.Len(t, hb.Games(), 3)

	main, _ := hb.gameList.GetItemText(1)
	assert.Contains(t, main, "lost")
	assert.Contains(t, main, "12s")

	details := hb.details.GetText(true)
	assert.Contains(t, details, "Result: Won")
	assert.Contains(t, details, "Time: 40s")
	assert.Contains(t, details, "Best time: 25s")
}

func TestHistoryBrowserEmpty(t *testing.T) {
	hb := NewHistoryBrowser(&fakeHistory{}, nil)

	require.Equal(t, 1, hb.gameList.GetItemCount())
	main, _ := hb.gameList.GetItemText(0)
	assert.Contains(t, main, "No games found")
	assert.Empty(t, hb.Games())
	assert.NotContains(t, hb.details.GetText(true), "Best time")
}

func TestHistoryBrowserError(t *testing.T) {
	hb := NewHistoryBrowser(&fakeHistory{err: errors.New("disk on fire")}, nil)

	main, _ := hb.gameList.GetItemText(0)
	assert.Contains(t, main, "Failed to load history")
	assert.Contains(t, hb.details.GetText(true), "disk on fire")
}

func TestHistoryBrowserNilSource(t *testing.T) {
	hb := NewHistoryBrowser(nil, nil)
	main, _ := hb.gameList.GetItemText(0)
	assert.Contains(t, main, "History unavailable")
}

func TestHistoryBrowserKeys(t *testing.T) {
	src := &fakeHistory{}
	done := 0
	hb := NewHistoryBrowser(src, func() { done++ })

	assert.Nil(t, hb.handleInput(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone)))
	assert.Equal(t, 2, src.listed)

	src.games = []history.GameRecord{history.NewRecord(types.Won, &types.BoardState{ElapsedSecs: 9})}
	hb.Refresh()
	assert.Len(t, hb.Games(), 1)

	assert.Nil(t, hb.handleInput(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.Nil(t, hb.handleInput(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.Equal(t, 2, done)

	assert.NotNil(t, hb.handleInput(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)))
}
