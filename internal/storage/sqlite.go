// Package storage keeps the pet document in SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"tamagotchi/internal/pet"
)

const schema = `CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteStore implements pet.Store on a single key/value table.
type SQLiteStore struct {
	db  *sql.DB
	key string
}

// Open opens or creates the database at path. ":memory:" opens a private in-memory database.
func Open(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := path
	if path != ":memory:" {
		path = filepath.Clean(path)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One writer; also keeps an in-memory database on a single connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db, key: pet.StorageKey}, nil
}

// Close releases the database.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load reads the saved document. An empty table is pet.ErrNoSavedPet.
func (s *SQLiteStore) Load(ctx context.Context) (pet.Document, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return pet.Document{}, pet.ErrNoSavedPet
	}
	if err != nil {
		return pet.Document{}, fmt.Errorf("load %s: %w", s.key, err)
	}
	return pet.DecodeDocument([]byte(value))
}

// Save replaces the stored document.
func (s *SQLiteStore) Save(ctx context.Context, doc pet.Document) error {
	data, err := pet.EncodeDocument(doc)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, string(data), time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}

// UpdatedAt reports when the document was last saved.
func (s *SQLiteStore) UpdatedAt(ctx context.Context) (time.Time, error) {
	var ms int64
	err := s.db.QueryRowContext(ctx, `SELECT updated_at FROM kv WHERE key = ?`, s.key).Scan(&ms)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, pet.ErrNoSavedPet
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("load %s: %w", s.key, err)
	}
	return time.UnixMilli(ms), nil
}
