// Package auth implements the signup, login and logout flows over the
// user collection and the session manager.
package auth

import (
	"net/http"
	"strings"

	"github.com/adekunleadebayo/ticketapp/internal/models"
	"github.com/adekunleadebayo/ticketapp/internal/session"
	"github.com/adekunleadebayo/ticketapp/internal/store"
)

// The demo bypass credentials. Always accepted at login regardless of
// the user collection, and the username is reserved at signup. This is
// a deliberate demo shortcut, not a stored account.
const (
	DemoUsername = "demo"
	DemoPassword = "demo"
)

const minPasswordLen = 6

type Service struct {
	Store    *store.Store
	Sessions *session.Manager
}

func NewService(s *store.Store, sessions *session.Manager) *Service {
	return &Service{Store: s, Sessions: sessions}
}

// Login validates the credentials and starts a session on success.
// Empty inputs yield a *models.ValidationError; a mismatch yields
// models.ErrInvalidCredentials with no state change.
func (s *Service) Login(w http.ResponseWriter, username, password string) (*models.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, models.Validation("username", "Username is required")
	}
	if password == "" {
		return nil, models.Validation("password", "Password is required")
	}

	fullname := ""
	user := s.Store.GetUserByUsername(username)
	switch {
	case user != nil && user.Password == password:
		fullname = user.Fullname
	case username == DemoUsername && password == DemoPassword:
		// Bypass account; nothing stored, no fullname.
	default:
		return nil, models.ErrInvalidCredentials
	}

	return s.Sessions.Start(w, username, fullname)
}

// Signup validates the fields in a fixed order, persists the new user
// and starts a session seeded with the new identity. The order
// matters: tests and inline error display both depend on the first
// failing rule winning.
func (s *Service) Signup(w http.ResponseWriter, fullname, username, password, confirm string) (*models.Session, error) {
	fullname = strings.TrimSpace(fullname)
	username = strings.TrimSpace(username)

	if fullname == "" {
		return nil, models.Validation("fullname", "Full name is required")
	}
	if username == "" {
		return nil, models.Validation("username", "Username is required")
	}
	if len(password) < minPasswordLen {
		return nil, models.Validation("password", "Password must be at least 6 characters")
	}
	if password != confirm {
		return nil, models.Validation("confirm_password", "Passwords do not match")
	}
	if username == DemoUsername || s.Store.GetUserByUsername(username) != nil {
		return nil, models.Validation("username", "Username already exists")
	}

	if err := s.Store.CreateUser(models.User{
		Fullname: fullname,
		Username: username,
		Password: password,
	}); err != nil {
		return nil, err
	}

	return s.Sessions.Start(w, username, fullname)
}

// Logout unconditionally ends the session.
func (s *Service) Logout(w http.ResponseWriter) {
	s.Sessions.End(w)
}
