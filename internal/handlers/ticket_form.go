package handlers

import (
	"net/http"
	"strconv"

	"github.com/adekunleadebayo/ticketapp/internal/models"
	"github.com/adekunleadebayo/ticketapp/internal/store"
)

// ticketForm is the transient state of an inline ticket form: the
// field values, which record is being edited (0 means create mode)
// and any field-keyed validation errors. Each view keeps its own
// instance; the state lives only in the rendered page and its query
// string, so navigating away discards it.
type ticketForm struct {
	EditingID   int
	Title       string
	Status      string
	Priority    string
	Description string
	Errors      map[string]string
}

// Editing reports whether the form is in edit mode.
func (f ticketForm) Editing() bool { return f.EditingID > 0 }

func ticketFormFromRequest(r *http.Request) ticketForm {
	editingID, _ := strconv.Atoi(r.FormValue("editing_id"))
	return ticketForm{
		EditingID:   editingID,
		Title:       r.FormValue("title"),
		Status:      r.FormValue("status"),
		Priority:    r.FormValue("priority"),
		Description: r.FormValue("description"),
	}
}

func ticketFormFromTicket(t models.Ticket) ticketForm {
	return ticketForm{
		EditingID:   t.ID,
		Title:       t.Title,
		Status:      t.Status,
		Priority:    t.DisplayPriority(),
		Description: t.Description,
	}
}

func (f ticketForm) input() store.TicketInput {
	return store.TicketInput{
		Title:       f.Title,
		Status:      f.Status,
		Priority:    f.Priority,
		Description: f.Description,
	}
}
