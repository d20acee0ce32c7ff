package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"
)

// FlashSessionName is the gorilla session carrying transient toast
// messages between a mutation and the following render.
const FlashSessionName = "flash-session"

// FlashMessage structure. Type is one of info, success, error.
type FlashMessage struct {
	Type    string
	Message string
}

// GetFlash retrieves flash messages from the session
func GetFlash(session *sessions.Session) []FlashMessage {
	flashes := session.Flashes()
	var messages []FlashMessage
	for _, f := range flashes {
		if fm, ok := f.(FlashMessage); ok {
			messages = append(messages, fm)
		}
	}
	return messages
}

// addFlash queues a single toast. Every user-initiated mutation
// outcome notifies exactly once through here.
func addFlash(store *sessions.CookieStore, w http.ResponseWriter, r *http.Request, typ, message string) {
	sess, _ := store.Get(r, FlashSessionName)
	sess.AddFlash(FlashMessage{Type: typ, Message: message})
	sess.Save(r, w)
}
