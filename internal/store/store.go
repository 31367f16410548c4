package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store owns the SQLite database holding the coin ledger and the
// append-only event log.
type Store struct {
	db  *sql.DB
	seq *sequenceCounter
}

// Open connects to the SQLite database at dsn, applies the recommended
// pragmas, and creates any missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	seq, err := newSequenceCounter(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, seq: seq}, nil
}

// DB returns the underlying handle for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// LedgerRepo returns the coin ledger repository backed by this store.
func (s *Store) LedgerRepo() LedgerRepo {
	return &ledgerRepo{db: s.db}
}

// EventRepo returns the event repository backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db, seq: s.seq}
}

// applyPragmas configures SQLite for single-user desktop use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS coin_ledger (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			balance INTEGER NOT NULL DEFAULT 0 CHECK (balance >= 0)
		)`,
		`INSERT OR IGNORE INTO coin_ledger (id, balance) VALUES (1, 0)`,
		`CREATE TABLE IF NOT EXISTS llm_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sequence INTEGER NOT NULL,
			timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			provider TEXT NOT NULL,
			model TEXT NOT NULL,
			purpose TEXT NOT NULL,
			input_tokens INTEGER NOT NULL DEFAULT 0,
			output_tokens INTEGER NOT NULL DEFAULT 0,
			latency_ms INTEGER NOT NULL DEFAULT 0,
			success INTEGER NOT NULL,
			error_message TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS story_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sequence INTEGER NOT NULL,
			timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			story_id TEXT NOT NULL,
			fact_count INTEGER NOT NULL,
			character_count INTEGER NOT NULL,
			illustrated_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS quiz_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sequence INTEGER NOT NULL,
			timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			session_id TEXT NOT NULL,
			action TEXT NOT NULL,
			questions INTEGER NOT NULL DEFAULT 0,
			correct INTEGER NOT NULL DEFAULT 0,
			coins_earned INTEGER NOT NULL DEFAULT 0
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Reset drops all persisted state: the coin balance and every event.
func (s *Store) Reset(ctx context.Context) error {
	stmts := []string{
		`UPDATE coin_ledger SET balance = 0 WHERE id = 1`,
		`DELETE FROM llm_events`,
		`DELETE FROM story_events`,
		`DELETE FROM quiz_events`,
		`UPDATE global_sequence SET next_val = 1 WHERE id = 1`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// FABULA_DB, then $XDG_DATA_HOME/fabula/fabula.db, then
// ~/.local/share/fabula/fabula.db.
func DefaultDBPath() (string, error) {
	if p := os.Getenv("FABULA_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "fabula", "fabula.db")
	return p, EnsureDir(p)
}

// DefaultStoryDir returns the directory where story illustrations are
// saved, beside the database file.
func DefaultStoryDir(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), "stories")
}

// EnsureDir creates the parent directory of path if needed.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
