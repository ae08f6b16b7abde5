package dto

import (
	"time"

	"github.com/spec-kit/ticket-desk/internal/domain"
)

// CreateTicketRequest payload for POST /api/create-ticket.
type CreateTicketRequest struct {
	Title       string `json:"title" validate:"required"`
	Category    string `json:"category" validate:"required,oneof=inquiry maintenance 'new feature' administrative payment"`
	Description string `json:"description" validate:"required"`
}

// PatchTicketRequest payload for PATCH /api/ticket/:id. Exactly one of
// State or Category is expected.
type PatchTicketRequest struct {
	State    *string `json:"state"`
	Category *string `json:"category"`
}

// AddReplyRequest payload for POST /api/ticket/:id/text-block.
type AddReplyRequest struct {
	Text string `json:"text" validate:"required"`
}

// ReplyResponse is a text block on the wire. The author field carries the
// author's display name.
type ReplyResponse struct {
	ID          int64     `json:"text_block_id"`
	Text        string    `json:"text"`
	Author      string    `json:"author"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// TicketResponse is a ticket with its reply thread on the wire. The owner
// field carries the owner's display name.
type TicketResponse struct {
	ID          int64           `json:"ticket_id"`
	State       string          `json:"state"`
	Category    string          `json:"category"`
	Title       string          `json:"title"`
	InitialText string          `json:"initial_text"`
	SubmittedAt time.Time       `json:"submitted_at"`
	Owner       string          `json:"owner"`
	OwnerID     int64           `json:"owner_id"`
	TextBlocks  []ReplyResponse `json:"text_blocks"`
}

// FromTicket converts a domain ticket to its wire shape.
func FromTicket(t domain.Ticket) TicketResponse {
	blocks := make([]ReplyResponse, 0, len(t.Replies))
	for _, reply := range t.Replies {
		blocks = append(blocks, ReplyResponse{
			ID:          reply.ID,
			Text:        reply.Text,
			Author:      reply.AuthorName,
			SubmittedAt: reply.SubmittedAt,
		})
	}
	return TicketResponse{
		ID:          t.ID,
		State:       string(t.State),
		Category:    string(t.Category),
		Title:       t.Title,
		InitialText: t.InitialText,
		SubmittedAt: t.SubmittedAt,
		Owner:       t.OwnerName,
		OwnerID:     t.OwnerID,
		TextBlocks:  blocks,
	}
}

// FromTickets converts a ticket list.
func FromTickets(tickets []domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, FromTicket(t))
	}
	return out
}
