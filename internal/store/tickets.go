package store

import (
	"strings"

	"github.com/adekunleadebayo/ticketapp/internal/models"
)

// TicketInput carries the editable fields of a ticket through create
// and update. ID is never caller-supplied; the store allocates it.
type TicketInput struct {
	Title       string
	Status      string
	Priority    string
	Description string
}

// TicketFilter narrows ListTickets. Zero values mean "no constraint";
// both constraints compose with logical AND.
type TicketFilter struct {
	Status string
	Search string
}

// validate trims the input and checks it against the ticket rules,
// defaulting an absent priority to medium.
func (in *TicketInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" {
		return models.Validation("title", "Title is required")
	}
	if !models.ValidStatus(in.Status) {
		return models.Validation("status", "Please select a valid status")
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	if !models.ValidPriority(in.Priority) {
		return models.Validation("priority", "Please select a valid priority")
	}
	return nil
}

// nextTicketID implements the monotonic allocation rule: one past the
// maximum existing id, or 1 on an empty collection.
func nextTicketID(tickets []models.Ticket) int {
	max := 0
	for _, t := range tickets {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}

// ListTickets returns tickets matching the filter, preserving
// insertion order. Search is a case-insensitive substring match over
// title or description.
func (s *Store) ListTickets(filter TicketFilter) []models.Ticket {
	tickets := s.LoadTickets()
	if filter.Status == "" && filter.Search == "" {
		return tickets
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	var out []models.Ticket
	for _, t := range tickets {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// GetTicket returns the ticket with the given id.
func (s *Store) GetTicket(id int) (models.Ticket, bool) {
	for _, t := range s.LoadTickets() {
		if t.ID == id {
			return t, true
		}
	}
	return models.Ticket{}, false
}

// CreateTicket validates the input, allocates an id and persists the
// new record, returning it.
func (s *Store) CreateTicket(in TicketInput) (models.Ticket, error) {
	if err := in.validate(); err != nil {
		return models.Ticket{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tickets := s.LoadTickets()
	ticket := models.Ticket{
		ID:          nextTicketID(tickets),
		Title:       in.Title,
		Status:      in.Status,
		Priority:    in.Priority,
		Description: in.Description,
	}
	tickets = append(tickets, ticket)
	if err := s.SaveTickets(tickets); err != nil {
		return models.Ticket{}, err
	}
	return ticket, nil
}

// UpdateTicket replaces the record with the given id in place. All
// other records are left untouched.
func (s *Store) UpdateTicket(id int, in TicketInput) (models.Ticket, error) {
	if err := in.validate(); err != nil {
		return models.Ticket{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tickets := s.LoadTickets()
	for i, t := range tickets {
		if t.ID != id {
			continue
		}
		tickets[i] = models.Ticket{
			ID:          id,
			Title:       in.Title,
			Status:      in.Status,
			Priority:    in.Priority,
			Description: in.Description,
		}
		if err := s.SaveTickets(tickets); err != nil {
			return models.Ticket{}, err
		}
		return tickets[i], nil
	}
	return models.Ticket{}, models.ErrTicketNotFound
}

// DeleteTicket removes the record if present. A missing id is a
// silent no-op, not an error.
func (s *Store) DeleteTicket(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets := s.LoadTickets()
	kept := tickets[:0]
	removed := false
	for _, t := range tickets {
		if t.ID == id {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	if !removed {
		return nil
	}
	return s.SaveTickets(kept)
}

// ImportTickets bulk-loads records into an empty collection, used by
// the CLI importer and the one-time seed hydration. Records are
// normalized on the way in: ids missing or already seen are
// reallocated, invalid statuses drop the record, priority defaults to
// medium. Returns the number of records stored.
func (s *Store) ImportTickets(incoming []models.Ticket) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.LoadTickets()) > 0 {
		return 0, nil
	}

	seen := make(map[int]bool)
	var tickets []models.Ticket
	for _, t := range incoming {
		t.Title = strings.TrimSpace(t.Title)
		if t.Title == "" || !models.ValidStatus(t.Status) {
			continue
		}
		if t.Priority == "" {
			t.Priority = models.PriorityMedium
		}
		if !models.ValidPriority(t.Priority) {
			t.Priority = models.PriorityMedium
		}
		if t.ID <= 0 || seen[t.ID] {
			t.ID = nextTicketID(tickets)
		}
		seen[t.ID] = true
		tickets = append(tickets, t)
	}
	if len(tickets) == 0 {
		return 0, nil
	}
	if err := s.SaveTickets(tickets); err != nil {
		return 0, err
	}
	return len(tickets), nil
}
