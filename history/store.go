// Package history records finished games in a SQLite database.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"termsweeper/types"
)

//go:embed schema.sql
var schemaSQL string

// ErrNoWins is returned by Best when no game has been won yet.
var ErrNoWins = errors.New("no games won yet")

// GameRecord is one finished game.
type GameRecord struct {
	ID            string    `json:"id"`
	Won           bool      `json:"won"`
	ElapsedSecs   int       `json:"elapsed_seconds"`
	FlagsUsed     int       `json:"flags_used"`
	RevealedCells int       `json:"revealed_cells"`
	FinishedAt    time.Time `json:"finished_at"`
}

// NewRecord builds a record from the board a game ended on. RevealedCells
// counts the cells the player opened.
func NewRecord(outcome types.GameState, state *types.BoardState) GameRecord {
	return GameRecord{
		Won:           outcome == types.Won,
		ElapsedSecs:   state.ElapsedSecs,
		FlagsUsed:     state.FlagsUsed,
		RevealedCells: state.OpenedCount,
	}
}

// Store is a handle on the history database.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path, creating parent directories.
//
// The database runs in WAL mode with a 5 second busy timeout, so a second
// running client waits instead of failing.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect history: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	return &Store{db: db}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores a finished game. An empty ID gets a fresh uuid and a zero
// FinishedAt becomes now. The stored record is returned.
func (s *Store) Record(ctx context.Context, r GameRecord) (GameRecord, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now()
	}
	r.FinishedAt = r.FinishedAt.UTC().Truncate(time.Millisecond)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO games (id, won, elapsed_seconds, flags_used, revealed_cells, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Won, r.ElapsedSecs, r.FlagsUsed, r.RevealedCells, r.FinishedAt.UnixMilli(),
	)
	if err != nil {
		return GameRecord{}, fmt.Errorf("record game: %w", err)
	}
	return r, nil
}

// List returns up to limit records, newest first. A limit of zero or less
// returns every record.
func (s *Store) List(ctx context.Context, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, won, elapsed_seconds, flags_used, revealed_cells, finished_at
		 FROM games ORDER BY finished_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var records []GameRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list games: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return records, nil
}

// Best returns the fastest win, the earliest one on ties.
func (s *Store) Best(ctx context.Context) (GameRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, won, elapsed_seconds, flags_used, revealed_cells, finished_at
		 FROM games WHERE won = 1 ORDER BY elapsed_seconds ASC, finished_at ASC LIMIT 1`)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return GameRecord{}, ErrNoWins
	}
	if err != nil {
		return GameRecord{}, fmt.Errorf("best game: %w", err)
	}
	return r, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (GameRecord, error) {
	var r GameRecord
	var finished int64
	if err := sc.Scan(&r.ID, &r.Won, &r.ElapsedSecs, &r.FlagsUsed, &r.RevealedCells, &finished); err != nil {
		return GameRecord{}, err
	}
	r.FinishedAt = time.UnixMilli(finished).UTC()
	return r, nil
}
