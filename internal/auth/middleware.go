package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/spec-kit/ticket-desk/internal/domain"
	"github.com/spec-kit/ticket-desk/pkg/errorutil"
)

const principalKey = "auth_principal"

// UserSource resolves a session user id to a full user record.
type UserSource interface {
	GetByID(ctx context.Context, id int64) (domain.User, error)
}

// SessionGuard rejects requests without a valid session before they reach
// business logic.
type SessionGuard struct {
	store *session.Store
	users UserSource
}

// NewSessionGuard constructs the guard.
func NewSessionGuard(store *session.Store, users UserSource) *SessionGuard {
	return &SessionGuard{store: store, users: users}
}

// RequireSession loads the session user and stashes it in request locals.
func (g *SessionGuard) RequireSession(c *fiber.Ctx) error {
	userID, ok := SessionUserID(c, g.store)
	if !ok {
		return errorutil.NewAuthentication("Not authenticated")
	}

	user, err := g.users.GetByID(c.Context(), userID)
	if err != nil {
		if errorutil.IsKind(err, errorutil.KindNotFound) {
			return errorutil.NewAuthentication("Not authenticated")
		}
		return err
	}

	c.Locals(principalKey, user)
	return c.Next()
}

// CurrentUser retrieves the authenticated user placed by RequireSession.
func CurrentUser(c *fiber.Ctx) (domain.User, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return domain.User{}, false
	}
	user, ok := val.(domain.User)
	return user, ok
}
