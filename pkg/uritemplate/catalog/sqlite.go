package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists catalog entries to SQLite.
// It is suitable for single-process use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore opens or creates a catalog database.
// The path should be a file path (e.g., "./templates.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A :memory: database lives in a single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS expressions (
			id TEXT NOT NULL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			source TEXT NOT NULL,
			level INTEGER NOT NULL,
			created TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Put implements Store.
func (s *SQLiteStore) Put(entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM expressions WHERE name = ?`, entry.Name).Scan(&n); err != nil {
		return fmt.Errorf("check entry name: %w", err)
	}
	if n > 0 {
		return ErrDuplicateName
	}

	_, err := s.db.Exec(`
		INSERT INTO expressions (id, name, source, level, created)
		VALUES (?, ?, ?, ?, ?)
	`, entry.ID.String(), entry.Name, entry.Source, entry.Level, entry.Created.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// Get implements Store.
func (s *SQLiteStore) Get(name string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Entry{}, ErrStoreClosed
	}

	e, err := scanEntry(s.db.QueryRow(`
		SELECT id, name, source, level, created FROM expressions
		WHERE name = ?
	`, name))
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("load entry: %w", err)
	}
	return e, nil
}

// List implements Store.
func (s *SQLiteStore) List() ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT id, name, source, level, created FROM expressions
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.Exec(`DELETE FROM expressions WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var (
		e       Entry
		id      string
		created string
	)
	if err := row.Scan(&id, &e.Name, &e.Source, &e.Level, &created); err != nil {
		return Entry{}, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return Entry{}, fmt.Errorf("parse entry id: %w", err)
	}
	e.ID = parsed
	if e.Created, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return Entry{}, fmt.Errorf("parse entry created time: %w", err)
	}
	return e, nil
}
