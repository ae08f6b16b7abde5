package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-desk/internal/api/dto"
	"github.com/spec-kit/ticket-desk/internal/auth"
	"github.com/spec-kit/ticket-desk/internal/domain"
	"github.com/spec-kit/ticket-desk/internal/service"
	"github.com/spec-kit/ticket-desk/pkg/errorutil"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// List GET /api/tickets. Anonymous browsing is allowed.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	tickets, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.FromTickets(tickets))
}

// Create POST /api/create-ticket.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return errorutil.NewAuthentication("Not authenticated")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidation("Invalid request body")
	}
	if msgs := dto.Validate(req); msgs != nil {
		return errorutil.NewValidation(msgs...)
	}

	input := service.TicketCreateInput{
		Title:       req.Title,
		Category:    domain.TicketCategory(req.Category),
		Description: req.Description,
	}
	if err := h.service.Create(c.Context(), user, input); err != nil {
		return err
	}
	return c.SendStatus(http.StatusCreated)
}

// Patch PATCH /api/ticket/:id. The body carries either {state} or
// {category}; the two updates have different authorization rules.
func (h *TicketsHandler) Patch(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return errorutil.NewAuthentication("Not authenticated")
	}
	ticketID, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.PatchTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidation("Invalid request body")
	}

	switch {
	case req.State != nil:
		state := domain.TicketState(*req.State)
		if !domain.ValidState(state) {
			return errorutil.NewValidation(`Invalid state. State must be either "Open" or "Closed"`)
		}
		if err := h.service.SetState(c.Context(), user, ticketID, state); err != nil {
			return err
		}
	case req.Category != nil:
		category := domain.TicketCategory(*req.Category)
		if !domain.ValidCategory(category) {
			return errorutil.NewValidation("Invalid category")
		}
		if err := h.service.SetCategory(c.Context(), user, ticketID, category); err != nil {
			return err
		}
	default:
		return errorutil.NewValidation("Either state or category is required")
	}

	return c.SendStatus(http.StatusOK)
}

// AddReply POST /api/ticket/:id/text-block.
func (h *TicketsHandler) AddReply(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return errorutil.NewAuthentication("Not authenticated")
	}
	ticketID, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.AddReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidation("Invalid request body")
	}
	if msgs := dto.Validate(req); msgs != nil {
		return errorutil.NewValidation(msgs...)
	}

	if err := h.service.AddReply(c.Context(), user, ticketID, req.Text); err != nil {
		return err
	}
	return c.SendStatus(http.StatusCreated)
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errorutil.NewValidation("Invalid ticket id")
	}
	return id, nil
}
