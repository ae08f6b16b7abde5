package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-desk/internal/domain"
	"github.com/spec-kit/ticket-desk/internal/repository"
	"github.com/spec-kit/ticket-desk/pkg/errorutil"
)

// TicketService coordinates the ticket lifecycle: it loads state for
// authorization decisions, applies the central policy, and delegates the
// single logical write to the repository.
type TicketService struct {
	tickets repository.TicketRepository
	logger  *zap.Logger
}

// NewTicketService builds the service.
func NewTicketService(tickets repository.TicketRepository, logger *zap.Logger) *TicketService {
	return &TicketService{tickets: tickets, logger: logger}
}

// TicketCreateInput carries validated ticket fields.
type TicketCreateInput struct {
	Title       string
	Category    domain.TicketCategory
	Description string
}

// List returns all tickets with their reply threads, newest first.
func (s *TicketService) List(ctx context.Context) ([]domain.Ticket, error) {
	return s.tickets.List(ctx)
}

// Create inserts a new open ticket owned by user.
func (s *TicketService) Create(ctx context.Context, user domain.User, input TicketCreateInput) error {
	if err := s.tickets.Create(ctx, user.ID, input.Title, input.Category, input.Description); err != nil {
		return err
	}
	s.logger.Info("ticket created",
		zap.Int64("owner", user.ID),
		zap.String("category", string(input.Category)))
	return nil
}

// SetState transitions a ticket between Open and Closed. The owner may only
// close; admins may flip in either direction.
func (s *TicketService) SetState(ctx context.Context, user domain.User, ticketID int64, state domain.TicketState) error {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if !domain.CanSetState(user, ticket, state) {
		return errorutil.NewAuthorization("Not allowed to change the state of this ticket")
	}
	return s.tickets.SetState(ctx, ticketID, state)
}

// SetCategory changes a ticket's category. Admin only.
func (s *TicketService) SetCategory(ctx context.Context, user domain.User, ticketID int64, category domain.TicketCategory) error {
	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		return err
	}
	if !domain.CanEditCategory(user) {
		return errorutil.NewAuthorization("Only administrators may change the category")
	}
	return s.tickets.SetCategory(ctx, ticketID, category)
}

// AddReply appends a text block to an open ticket's thread.
func (s *TicketService) AddReply(ctx context.Context, user domain.User, ticketID int64, text string) error {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if ticket.State != domain.TicketStateOpen {
		return errorutil.NewValidation("Cannot add a text block to a closed ticket")
	}
	if !domain.CanReply(user, ticket) {
		return errorutil.NewAuthorization("Only the ticket owner or an administrator may reply")
	}
	return s.tickets.AddReply(ctx, ticketID, user.ID, text)
}
