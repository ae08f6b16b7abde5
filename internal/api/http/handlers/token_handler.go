package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-desk/internal/api/dto"
	"github.com/spec-kit/ticket-desk/internal/auth"
	"github.com/spec-kit/ticket-desk/internal/service"
	"github.com/spec-kit/ticket-desk/pkg/errorutil"
)

// TokenHandler issues short-lived estimation tokens to logged-in users.
type TokenHandler struct {
	auth *service.AuthService
}

// NewTokenHandler constructs handler.
func NewTokenHandler(authService *service.AuthService) *TokenHandler {
	return &TokenHandler{auth: authService}
}

// Issue GET /api/auth-token.
func (h *TokenHandler) Issue(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return errorutil.NewAuthentication("Not authenticated")
	}
	token, _, err := h.auth.IssueEstimationToken(user.ID)
	if err != nil {
		return errorutil.NewInternal(err)
	}
	return c.JSON(dto.TokenResponse{Token: token})
}
