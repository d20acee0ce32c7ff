package handlers

import (
	"net/http"

	"github.com/adekunleadebayo/ticketapp/internal/session"
	"github.com/gorilla/sessions"
)

type LandingHandler struct {
	Sessions     *session.Manager
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
}

// Index renders the landing page. The "/" pattern matches every
// otherwise-unmapped path, so anything else becomes the 404 view.
func (h *LandingHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.NotFound(w, r)
		return
	}

	tmpl := h.Templates.Get("landing.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	flashSession, _ := h.SessionStore.Get(r, FlashSessionName)
	data := map[string]interface{}{
		"Flashes":         GetFlash(flashSession),
		"IsAuthenticated": h.Sessions.IsAuthenticated(),
	}
	flashSession.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *LandingHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	tmpl := h.Templates.Get("404.html")
	if tmpl == nil {
		w.Write([]byte("<h1>404 - Not Found</h1>"))
		return
	}
	tmpl.Execute(w, nil)
}
