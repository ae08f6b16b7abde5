package estimate

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-desk/internal/api/dto"
	"github.com/spec-kit/ticket-desk/internal/auth"
	"github.com/spec-kit/ticket-desk/pkg/errorutil"
)

// Handler serves the single estimation endpoint.
type Handler struct {
	estimator *Estimator
}

// NewHandler constructs handler.
func NewHandler(estimator *Estimator) *Handler {
	return &Handler{estimator: estimator}
}

// EstimateTime POST /api/estimate-time. Admin callers get hours, everyone
// else gets whole days.
func (h *Handler) EstimateTime(c *fiber.Ctx) error {
	var req dto.EstimateRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidation("Invalid request body")
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Category) == "" {
		return errorutil.NewValidation("Title and category are required")
	}

	hours := h.estimator.Hours(req.Title, req.Category)
	if req.IsAdmin == 1 {
		return c.JSON(dto.EstimateHoursResponse{EstimatedHours: hours})
	}
	return c.JSON(dto.EstimateDaysResponse{EstimatedDays: DaysFromHours(hours)})
}

// BearerAuth verifies the Authorization header against the shared secret.
// Signature verification here is authoritative; the issuing service and the
// client only track expiry as a hint.
func BearerAuth(tokens *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return errorutil.NewAuthentication("Authorization error")
		}
		if _, err := tokens.ParseToken(parts[1]); err != nil {
			return errorutil.NewAuthentication("Authorization error")
		}
		return c.Next()
	}
}

// NewApp assembles the estimation service's fiber application. Global
// middlewares must be passed here so they register ahead of the routes.
func NewApp(tokens *auth.TokenManager, handler *Handler, middlewares ...fiber.Handler) *fiber.App {
	app := fiber.New()
	for _, m := range middlewares {
		app.Use(m)
	}

	api := app.Group("/api", BearerAuth(tokens))
	api.Post("/estimate-time", handler.EstimateTime)
	return app
}
