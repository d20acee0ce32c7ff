package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/adekunleadebayo/ticketapp/internal/models"
	"github.com/adekunleadebayo/ticketapp/internal/session"
	"github.com/adekunleadebayo/ticketapp/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

// DashboardHandler renders the stats-and-table view and drives its
// shared create/edit form.
type DashboardHandler struct {
	Store        *store.Store
	Sessions     *session.Manager
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
}

// requireSession is the handler-level gate behind the cookie guard: a
// present cookie with a missing or corrupt session record still
// bounces to login, with the warning visible on the login page.
func (h *DashboardHandler) requireSession(w http.ResponseWriter, r *http.Request) *models.Session {
	sess := h.Sessions.Current()
	if sess == nil {
		addFlash(h.SessionStore, w, r, "error", "Your session has expired — please log in again.")
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return nil
	}
	return sess
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess := h.requireSession(w, r)
	if sess == nil {
		return
	}

	form := ticketForm{}
	if editStr := r.URL.Query().Get("edit"); editStr != "" {
		id, err := strconv.Atoi(editStr)
		ticket, ok := h.Store.GetTicket(id)
		if err != nil || !ok {
			addFlash(h.SessionStore, w, r, "error", "Ticket not found")
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		form = ticketFormFromTicket(ticket)
	}

	h.render(w, r, sess, form)
}

func (h *DashboardHandler) render(w http.ResponseWriter, r *http.Request, sess *models.Session, form ticketForm) {
	tmpl := h.Templates.Get("dashboard.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	statusFilter := r.URL.Query().Get("status")
	searchQuery := r.URL.Query().Get("q")

	flashSession, _ := h.SessionStore.Get(r, FlashSessionName)
	data := map[string]interface{}{
		"Session":   sess,
		"Stats":     h.Store.GetTicketStats(),
		"Tickets":   h.Store.ListTickets(store.TicketFilter{Status: statusFilter, Search: searchQuery}),
		"Filter":    statusFilter,
		"Search":    searchQuery,
		"Form":      form,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(flashSession),
	}
	flashSession.Save(r, w)
	tmpl.Execute(w, data)
}

// SubmitTicket handles the shared form: it creates when no editing id
// is present and updates otherwise.
func (h *DashboardHandler) SubmitTicket(w http.ResponseWriter, r *http.Request) {
	sess := h.requireSession(w, r)
	if sess == nil {
		return
	}

	form := ticketFormFromRequest(r)

	var err error
	if form.Editing() {
		_, err = h.Store.UpdateTicket(form.EditingID, form.input())
	} else {
		_, err = h.Store.CreateTicket(form.input())
	}

	if err != nil {
		if ve, ok := models.AsValidation(err); ok {
			form.Errors = map[string]string{ve.Field: ve.Message}
			h.render(w, r, sess, form)
			return
		}
		if errors.Is(err, models.ErrTicketNotFound) {
			addFlash(h.SessionStore, w, r, "error", "Ticket not found")
		} else {
			addFlash(h.SessionStore, w, r, "error", "Failed to save ticket")
		}
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	if form.Editing() {
		addFlash(h.SessionStore, w, r, "success", "Ticket updated")
	} else {
		addFlash(h.SessionStore, w, r, "success", "Ticket created")
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// DeleteTicket removes a ticket. The user-facing confirmation step
// happens in the page before this POST is made.
func (h *DashboardHandler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	if h.requireSession(w, r) == nil {
		return
	}

	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		addFlash(h.SessionStore, w, r, "error", "Invalid ticket id")
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	if err := h.Store.DeleteTicket(id); err != nil {
		addFlash(h.SessionStore, w, r, "error", "Failed to delete ticket")
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	addFlash(h.SessionStore, w, r, "success", "Ticket deleted")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
