package domain

import "time"

// TicketState enumerates lifecycle states for tickets.
type TicketState string

const (
	TicketStateOpen   TicketState = "Open"
	TicketStateClosed TicketState = "Closed"
)

// ValidState reports whether s is one of the two ticket states.
func ValidState(s TicketState) bool {
	return s == TicketStateOpen || s == TicketStateClosed
}

// TicketCategory is one of the fixed category set.
type TicketCategory string

const (
	CategoryInquiry        TicketCategory = "inquiry"
	CategoryMaintenance    TicketCategory = "maintenance"
	CategoryNewFeature     TicketCategory = "new feature"
	CategoryAdministrative TicketCategory = "administrative"
	CategoryPayment        TicketCategory = "payment"
)

// Categories returns the closed set of valid ticket categories.
func Categories() []TicketCategory {
	return []TicketCategory{
		CategoryInquiry,
		CategoryMaintenance,
		CategoryNewFeature,
		CategoryAdministrative,
		CategoryPayment,
	}
}

// ValidCategory reports whether c belongs to the fixed category set.
func ValidCategory(c TicketCategory) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Ticket is the aggregate for support requests. Tickets are never deleted.
type Ticket struct {
	ID          int64
	OwnerID     int64
	OwnerName   string
	Title       string
	Category    TicketCategory
	InitialText string
	State       TicketState
	SubmittedAt time.Time
	Replies     []Reply
}

// Reply is a timestamped message appended to a ticket's thread. Replies are
// immutable once created and ordered by submission time within a ticket.
type Reply struct {
	ID          int64
	TicketID    int64
	AuthorID    int64
	AuthorName  string
	Text        string
	SubmittedAt time.Time
}
