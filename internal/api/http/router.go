package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-desk/internal/api/http/handlers"
	"github.com/spec-kit/ticket-desk/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Session *handlers.SessionHandler
	Tickets *handlers.TicketsHandler
	Token   *handlers.TokenHandler
	Guard   *auth.SessionGuard
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	api.Get("/tickets", cfg.Tickets.List)
	api.Post("/create-ticket", cfg.Guard.RequireSession, cfg.Tickets.Create)
	api.Patch("/ticket/:id", cfg.Guard.RequireSession, cfg.Tickets.Patch)
	api.Post("/ticket/:id/text-block", cfg.Guard.RequireSession, cfg.Tickets.AddReply)

	api.Post("/session", cfg.Session.Login)
	api.Delete("/session", cfg.Guard.RequireSession, cfg.Session.Logout)
	api.Get("/session/current", cfg.Guard.RequireSession, cfg.Session.Current)

	api.Get("/auth-token", cfg.Guard.RequireSession, cfg.Token.Issue)
}
