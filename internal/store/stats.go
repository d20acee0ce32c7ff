package store

import "github.com/adekunleadebayo/ticketapp/internal/models"

type TicketStats struct {
	Total      int
	Open       int
	InProgress int
	Closed     int
}

// GetTicketStats recomputes the dashboard counters from the current
// collection contents.
func (s *Store) GetTicketStats() TicketStats {
	var stats TicketStats
	for _, t := range s.LoadTickets() {
		stats.Total++
		switch t.Status {
		case models.StatusOpen:
			stats.Open++
		case models.StatusInProgress:
			stats.InProgress++
		case models.StatusClosed:
			stats.Closed++
		}
	}
	return stats
}
