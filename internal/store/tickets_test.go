package store

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/adekunleadebayo/ticketapp/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewStore error: %v", err)
	}
	if err := s.InitSchema(); err != nil {
		t.Fatalf("InitSchema error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateTicket_MonotonicIDs(t *testing.T) {
	s := newTestStore(t)

	first, err := s.CreateTicket(TicketInput{Title: "Printer jam", Status: models.StatusOpen})
	if err != nil {
		t.Fatalf("CreateTicket error: %v", err)
	}
	want := models.Ticket{ID: 1, Title: "Printer jam", Status: models.StatusOpen, Priority: models.PriorityMedium}
	if first != want {
		t.Fatalf("first ticket mismatch: got %+v want %+v", first, want)
	}

	second, err := s.CreateTicket(TicketInput{Title: "VPN down", Status: models.StatusOpen})
	if err != nil {
		t.Fatalf("CreateTicket error: %v", err)
	}
	if second.ID != 2 {
		t.Fatalf("expected id 2, got %d", second.ID)
	}

	// Deleting the max id and creating again must not reuse a gap below max.
	if err := s.DeleteTicket(1); err != nil {
		t.Fatalf("DeleteTicket error: %v", err)
	}
	third, err := s.CreateTicket(TicketInput{Title: "Monitor flickers", Status: models.StatusOpen})
	if err != nil {
		t.Fatalf("CreateTicket error: %v", err)
	}
	if third.ID != 3 {
		t.Fatalf("expected id 3 (max 2 + 1), got %d", third.ID)
	}
}

func TestCreateTicket_Validation(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateTicket(TicketInput{Title: "   ", Status: models.StatusOpen})
	ve, ok := models.AsValidation(err)
	if !ok || ve.Field != "title" {
		t.Fatalf("expected title validation error, got %v", err)
	}

	_, err = s.CreateTicket(TicketInput{Title: "Ok", Status: "resolved"})
	ve, ok = models.AsValidation(err)
	if !ok || ve.Field != "status" {
		t.Fatalf("expected status validation error, got %v", err)
	}

	_, err = s.CreateTicket(TicketInput{Title: "Ok", Status: models.StatusOpen, Priority: "urgent"})
	ve, ok = models.AsValidation(err)
	if !ok || ve.Field != "priority" {
		t.Fatalf("expected priority validation error, got %v", err)
	}

	if got := s.LoadTickets(); len(got) != 0 {
		t.Fatalf("validation failures must not persist anything, got %d tickets", len(got))
	}
}

func TestUpdateTicket_PreservesOtherRecords(t *testing.T) {
	s := newTestStore(t)

	a, _ := s.CreateTicket(TicketInput{Title: "A", Status: models.StatusOpen})
	b, _ := s.CreateTicket(TicketInput{Title: "B", Status: models.StatusOpen, Description: "keep me"})
	c, _ := s.CreateTicket(TicketInput{Title: "C", Status: models.StatusClosed})

	updated, err := s.UpdateTicket(b.ID, TicketInput{
		Title:       "B2",
		Status:      models.StatusInProgress,
		Priority:    models.PriorityHigh,
		Description: "changed",
	})
	if err != nil {
		t.Fatalf("UpdateTicket error: %v", err)
	}
	if updated.ID != b.ID || updated.Title != "B2" || updated.Status != models.StatusInProgress {
		t.Fatalf("unexpected updated record: %+v", updated)
	}

	got := s.LoadTickets()
	if len(got) != 3 {
		t.Fatalf("expected 3 tickets after update, got %d", len(got))
	}
	if !reflect.DeepEqual(got[0], a) || !reflect.DeepEqual(got[2], c) {
		t.Fatalf("update touched other records: %+v", got)
	}
	if !reflect.DeepEqual(got[1], updated) {
		t.Fatalf("updated record not replaced in place: %+v", got[1])
	}
}

func TestUpdateTicket_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpdateTicket(42, TicketInput{Title: "X", Status: models.StatusOpen})
	if !errors.Is(err, models.ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
}

func TestDeleteTicket_MissingIDIsNoOp(t *testing.T) {
	s := newTestStore(t)

	a, _ := s.CreateTicket(TicketInput{Title: "A", Status: models.StatusOpen})

	if err := s.DeleteTicket(999); err != nil {
		t.Fatalf("delete of missing id must be a no-op, got %v", err)
	}
	got := s.LoadTickets()
	if len(got) != 1 || got[0].ID != a.ID {
		t.Fatalf("no-op delete changed the collection: %+v", got)
	}

	if err := s.DeleteTicket(a.ID); err != nil {
		t.Fatalf("DeleteTicket error: %v", err)
	}
	if got := s.LoadTickets(); len(got) != 0 {
		t.Fatalf("expected empty collection, got %+v", got)
	}
}

func TestListTickets_FilterAndSearch(t *testing.T) {
	s := newTestStore(t)

	s.CreateTicket(TicketInput{Title: "Printer jam", Status: models.StatusOpen})
	s.CreateTicket(TicketInput{Title: "VPN down", Status: models.StatusOpen, Description: "gateway flapping"})
	s.CreateTicket(TicketInput{Title: "Printer toner", Status: models.StatusClosed})
	s.CreateTicket(TicketInput{Title: "Email delay", Status: models.StatusInProgress})

	open := s.ListTickets(TicketFilter{Status: models.StatusOpen})
	if len(open) != 2 {
		t.Fatalf("expected 2 open tickets, got %d", len(open))
	}
	for _, ticket := range open {
		if ticket.Status != models.StatusOpen {
			t.Fatalf("status filter leaked %+v", ticket)
		}
	}

	// Search matches title or description, case-insensitively.
	printers := s.ListTickets(TicketFilter{Search: "PRINTER"})
	if len(printers) != 2 {
		t.Fatalf("expected 2 printer tickets, got %d", len(printers))
	}
	byDesc := s.ListTickets(TicketFilter{Search: "gateway"})
	if len(byDesc) != 1 || byDesc[0].Title != "VPN down" {
		t.Fatalf("description search failed: %+v", byDesc)
	}

	// Both constraints compose with AND.
	both := s.ListTickets(TicketFilter{Status: models.StatusOpen, Search: "printer"})
	if len(both) != 1 || both[0].Title != "Printer jam" {
		t.Fatalf("combined filter failed: %+v", both)
	}

	all := s.ListTickets(TicketFilter{})
	if len(all) != 4 {
		t.Fatalf("expected all 4 tickets without constraints, got %d", len(all))
	}
}

func TestImportTickets(t *testing.T) {
	s := newTestStore(t)

	n, err := s.ImportTickets([]models.Ticket{
		{ID: 3, Title: "Seeded", Status: models.StatusOpen},
		{ID: 3, Title: "Duplicate id", Status: models.StatusClosed, Priority: models.PriorityHigh},
		{Title: "No id", Status: models.StatusInProgress},
		// The last two are dropped: empty title, invalid status.
		{Title: "", Status: models.StatusOpen},
		{Title: "Bad status", Status: "wontfix"},
	})
	if err != nil {
		t.Fatalf("ImportTickets error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 imported tickets, got %d", n)
	}

	got := s.LoadTickets()
	ids := map[int]bool{}
	for _, ticket := range got {
		if ids[ticket.ID] {
			t.Fatalf("duplicate id after import: %+v", got)
		}
		ids[ticket.ID] = true
		if ticket.Priority == "" {
			t.Fatalf("priority not defaulted: %+v", ticket)
		}
	}

	// A second import against a non-empty collection is refused.
	n, err = s.ImportTickets([]models.Ticket{{Title: "Late", Status: models.StatusOpen}})
	if err != nil || n != 0 {
		t.Fatalf("expected refusal on non-empty collection, got n=%d err=%v", n, err)
	}
	if len(s.LoadTickets()) != 3 {
		t.Fatalf("second import changed the collection")
	}
}

func TestGetTicketStats(t *testing.T) {
	s := newTestStore(t)

	s.CreateTicket(TicketInput{Title: "A", Status: models.StatusOpen})
	s.CreateTicket(TicketInput{Title: "B", Status: models.StatusOpen})
	s.CreateTicket(TicketInput{Title: "C", Status: models.StatusInProgress})
	s.CreateTicket(TicketInput{Title: "D", Status: models.StatusClosed})

	stats := s.GetTicketStats()
	want := TicketStats{Total: 4, Open: 2, InProgress: 1, Closed: 1}
	if stats != want {
		t.Fatalf("stats mismatch: got %+v want %+v", stats, want)
	}
}
