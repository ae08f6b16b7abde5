package domain

// Authorization policy for ticket mutations. All enforcement, on both the
// API side and the client side, goes through these three predicates so the
// rules cannot drift between layers.

// CanSetState reports whether user may move ticket to the target state.
// Admins may flip in either direction; the owner may only close.
func CanSetState(user User, ticket Ticket, target TicketState) bool {
	if user.IsAdmin {
		return true
	}
	return ticket.OwnerID == user.ID && target == TicketStateClosed
}

// CanEditCategory reports whether user may change a ticket's category.
func CanEditCategory(user User) bool {
	return user.IsAdmin
}

// CanReply reports whether user may append a reply to ticket. Replies are
// only accepted while the ticket is open, from its owner or an admin.
func CanReply(user User, ticket Ticket) bool {
	if ticket.State != TicketStateOpen {
		return false
	}
	return user.IsAdmin || ticket.OwnerID == user.ID
}
