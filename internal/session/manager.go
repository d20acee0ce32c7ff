package session

import (
	"log/slog"
	"net/http"

	"github.com/adekunleadebayo/ticketapp/internal/models"
	"github.com/adekunleadebayo/ticketapp/internal/store"
	"github.com/google/uuid"
)

// CookieName is read by the route guard, which checks only that the
// cookie exists. The cookie carries the bare token; the full session
// record lives in the store.
const CookieName = "ticketapp_session"

// cookieMaxAge is the fixed 1-day expiry applied on session start.
const cookieMaxAge = 24 * 60 * 60

// Manager owns the single active session: the persisted record and
// the cookie mirrored from it. Both are written together on Start and
// cleared together on End.
type Manager struct {
	store        *store.Store
	cookieDomain string
	cookieSecure bool
}

func NewManager(s *store.Store, cookieDomain string, cookieSecure bool) *Manager {
	return &Manager{store: s, cookieDomain: cookieDomain, cookieSecure: cookieSecure}
}

// Current returns the active session record, or nil when none exists
// or the stored record does not parse.
func (m *Manager) Current() *models.Session {
	return m.store.LoadSession()
}

// IsAuthenticated reports whether a session record exists and parses.
func (m *Manager) IsAuthenticated() bool {
	return m.Current() != nil
}

// Start creates a session for the given user: an opaque token, the
// persisted record, and the mirrored cookie. Token uniqueness is
// probabilistic, which is fine at one session per deployment.
func (m *Manager) Start(w http.ResponseWriter, username, fullname string) (*models.Session, error) {
	sess := &models.Session{
		Token:    "tok_" + uuid.NewString(),
		User:     username,
		Fullname: fullname,
	}
	if err := m.store.SaveSession(sess); err != nil {
		return nil, err
	}
	m.setCookie(w, sess.Token, cookieMaxAge)
	return sess, nil
}

// End clears the persisted record and the cookie. Safe to call when
// no session exists.
func (m *Manager) End(w http.ResponseWriter) {
	if err := m.store.ClearSession(); err != nil {
		slog.Error("Failed to clear session record", "error", err)
	}
	m.setCookie(w, "", -1)
}

func (m *Manager) setCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Domain:   m.cookieDomain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
