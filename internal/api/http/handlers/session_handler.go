package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/spec-kit/ticket-desk/internal/api/dto"
	"github.com/spec-kit/ticket-desk/internal/auth"
	"github.com/spec-kit/ticket-desk/internal/service"
	"github.com/spec-kit/ticket-desk/pkg/errorutil"
)

// SessionHandler exposes login, logout and the current-user probe.
type SessionHandler struct {
	auth  *service.AuthService
	store *session.Store
}

// NewSessionHandler constructs handler.
func NewSessionHandler(authService *service.AuthService, store *session.Store) *SessionHandler {
	return &SessionHandler{auth: authService, store: store}
}

// Login POST /api/session.
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidation("Invalid request body")
	}
	if msgs := dto.Validate(req); msgs != nil {
		return errorutil.NewValidation(msgs...)
	}

	user, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	if err := auth.EstablishSession(c, h.store, user.ID); err != nil {
		return errorutil.NewInternal(err)
	}
	return c.JSON(dto.FromUser(user))
}

// Logout DELETE /api/session.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	if err := auth.DestroySession(c, h.store); err != nil {
		return errorutil.NewInternal(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Current GET /api/session/current.
func (h *SessionHandler) Current(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return errorutil.NewAuthentication("Not authenticated")
	}
	return c.JSON(dto.FromUser(user))
}
