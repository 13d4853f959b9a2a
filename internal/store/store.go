// Package store provides SQLite persistence for tabula's view location.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// MainView names the location row of the table browser.
const MainView = "main"

// HistoryCap bounds location_history; older rows are pruned on write.
const HistoryCap = 100

// Store handles SQLite persistence. NOT an interface - concrete type.
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Store struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}

// Entry is one row of location history.
type Entry struct {
	ID        int64
	Query     string
	CreatedAt time.Time
}

// Open creates a new Store with the given database path.
// Creates tables if they don't exist.
// Uses WAL mode for file-based DBs.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Each :memory: connection is its own database.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS location (
		name TEXT PRIMARY KEY,
		query TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS location_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		query TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// ReplaceLocation overwrites the query stored under name. A history row is
// appended only when the query differs from the newest history entry, and
// history is trimmed to HistoryCap rows.
func (s *Store) ReplaceLocation(name, query string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO location (name, query, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET query = excluded.query, updated_at = excluded.updated_at
	`, name, query, now); err != nil {
		return fmt.Errorf("upsert location: %w", err)
	}

	var last string
	fresh := false
	err = tx.QueryRow(`SELECT query FROM location_history ORDER BY id DESC LIMIT 1`).Scan(&last)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		fresh = true
	case err != nil:
		return fmt.Errorf("read history: %w", err)
	}

	if fresh || last != query {
		if _, err := tx.Exec(`INSERT INTO location_history (query, created_at) VALUES (?, ?)`, query, now); err != nil {
			return fmt.Errorf("append history: %w", err)
		}
		if _, err := tx.Exec(`
			DELETE FROM location_history WHERE id NOT IN (
				SELECT id FROM location_history ORDER BY id DESC LIMIT ?
			)
		`, HistoryCap); err != nil {
			return fmt.Errorf("prune history: %w", err)
		}
	}

	return tx.Commit()
}

// Location returns the query stored under name. ok is false when nothing
// has been stored yet.
func (s *Store) Location(name string) (query string, ok bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	err = s.db.QueryRow(`SELECT query FROM location WHERE name = ?`, name).Scan(&query)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read location: %w", err)
	}
	return query, true, nil
}

// History returns up to limit entries, newest first. limit <= 0 means all.
func (s *Store) History(limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = HistoryCap
	}
	rows, err := s.db.Query(`
		SELECT id, query, created_at FROM location_history ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Query, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
