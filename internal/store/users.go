package store

import (
	"github.com/adekunleadebayo/ticketapp/internal/models"
)

// GetUserByUsername returns the first user with an exact username
// match, or nil. Comparisons are case-sensitive on purpose: the
// original app never normalized usernames and uniqueness is enforced
// at signup, so first match is the only match.
func (s *Store) GetUserByUsername(username string) *models.User {
	for _, u := range s.LoadUsers() {
		if u.Username == username {
			user := u
			return &user
		}
	}
	return nil
}

// CreateUser appends a user record to the collection. Uniqueness is
// the caller's responsibility (the signup flow checks it first).
func (s *Store) CreateUser(user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.LoadUsers()
	users = append(users, user)
	return s.SaveUsers(users)
}
