package store

import (
	"database/sql"
	"log/slog"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store persists the app's three logical collections (users, tickets,
// session) as JSON documents in a single key-value table. The original
// data lived in browser localStorage under the same keys; the table
// keeps that model rather than normalizing into relational rows.
type Store struct {
	DB *sql.DB

	// Serializes read-modify-write cycles so a collection write stays
	// atomic at the granularity the callers expect.
	mu sync.Mutex
}

func NewStore(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &Store{DB: db}, nil
}

func (s *Store) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.DB.Exec(query)
	if err != nil {
		slog.Error("Error creating schema", "error", err)
		return err
	}
	return nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}
