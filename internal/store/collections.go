package store

import (
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/adekunleadebayo/ticketapp/internal/models"
)

// Collection keys, kept identical to the localStorage keys of the
// original client so exported data stays recognizable.
const (
	SessionKey = "ticketapp_session"
	UsersKey   = "ticketapp_users"
	TicketsKey = "ticketapp_tickets"
)

// loadRaw returns the stored JSON document for a collection, or nil
// when the collection has never been written.
func (s *Store) loadRaw(name string) ([]byte, error) {
	var data string
	err := s.DB.QueryRow(`SELECT data FROM collections WHERE name = ?`, name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}

func (s *Store) saveRaw(name string, data []byte) error {
	query := `
		INSERT INTO collections (name, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP
	`
	_, err := s.DB.Exec(query, name, string(data))
	return err
}

func (s *Store) deleteRaw(name string) error {
	_, err := s.DB.Exec(`DELETE FROM collections WHERE name = ?`, name)
	return err
}

// LoadUsers returns the users collection. Missing or malformed data
// yields an empty slice; corruption is recovered locally, never
// surfaced to callers.
func (s *Store) LoadUsers() []models.User {
	raw, err := s.loadRaw(UsersKey)
	if err != nil {
		slog.Debug("Failed to read users collection", "error", err)
		return nil
	}
	if raw == nil {
		return nil
	}
	var users []models.User
	if err := json.Unmarshal(raw, &users); err != nil {
		slog.Debug("Malformed users collection, substituting empty", "error", err)
		return nil
	}
	return users
}

func (s *Store) SaveUsers(users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	data, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return s.saveRaw(UsersKey, data)
}

// LoadTickets returns the tickets collection in insertion order, with
// the same empty-default recovery as LoadUsers.
func (s *Store) LoadTickets() []models.Ticket {
	raw, err := s.loadRaw(TicketsKey)
	if err != nil {
		slog.Debug("Failed to read tickets collection", "error", err)
		return nil
	}
	if raw == nil {
		return nil
	}
	var tickets []models.Ticket
	if err := json.Unmarshal(raw, &tickets); err != nil {
		slog.Debug("Malformed tickets collection, substituting empty", "error", err)
		return nil
	}
	return tickets
}

func (s *Store) SaveTickets(tickets []models.Ticket) error {
	if tickets == nil {
		tickets = []models.Ticket{}
	}
	data, err := json.Marshal(tickets)
	if err != nil {
		return err
	}
	return s.saveRaw(TicketsKey, data)
}

// LoadSession returns the active session record, or nil when absent or
// unparseable.
func (s *Store) LoadSession() *models.Session {
	raw, err := s.loadRaw(SessionKey)
	if err != nil {
		slog.Debug("Failed to read session record", "error", err)
		return nil
	}
	if raw == nil {
		return nil
	}
	var sess models.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		slog.Debug("Malformed session record, treating as absent", "error", err)
		return nil
	}
	if sess.Token == "" {
		return nil
	}
	return &sess
}

func (s *Store) SaveSession(sess *models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.saveRaw(SessionKey, data)
}

func (s *Store) ClearSession() error {
	return s.deleteRaw(SessionKey)
}
