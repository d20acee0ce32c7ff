package models

// Ticket status values. The underscore form is part of the persisted
// format, so it is never rewritten for storage, only for display.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusClosed     = "closed"
)

// Ticket priority values.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ValidStatus reports whether s is one of the allowed ticket statuses.
func ValidStatus(s string) bool {
	return s == StatusOpen || s == StatusInProgress || s == StatusClosed
}

// ValidPriority reports whether p is one of the allowed ticket priorities.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

type User struct {
	Fullname string `json:"fullname"`
	Username string `json:"username"`
	Password string `json:"password"` // Plaintext by design; this is a demo app.
}

// Session is the single active session record. Token is also mirrored
// into the ticketapp_session cookie for the server-side route guard.
type Session struct {
	Token    string `json:"token"`
	User     string `json:"user"`
	Fullname string `json:"fullname,omitempty"`
}

type Ticket struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Status      string `json:"status"`
	Priority    string `json:"priority,omitempty"`
	Description string `json:"description,omitempty"`
}

// DisplayStatus returns the human label for a stored status value.
func (t Ticket) DisplayStatus() string {
	switch t.Status {
	case StatusInProgress:
		return "in progress"
	case StatusClosed:
		return "resolved"
	default:
		return t.Status
	}
}

// DisplayPriority returns the priority with medium substituted for the
// empty value, matching how records created before the default existed
// are shown.
func (t Ticket) DisplayPriority() string {
	if t.Priority == "" {
		return PriorityMedium
	}
	return t.Priority
}
