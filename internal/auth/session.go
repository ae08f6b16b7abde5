package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"

	"github.com/spec-kit/ticket-desk/internal/config"
)

const sessionUserKey = "user_id"

// NewSessionStore builds the cookie session store. With a nil storage the
// middleware keeps sessions in process memory.
func NewSessionStore(cfg config.SessionConfig, storage fiber.Storage) *session.Store {
	return session.New(session.Config{
		Storage:        storage,
		Expiration:     cfg.TTL(),
		KeyLookup:      "cookie:" + cfg.CookieName,
		KeyGenerator:   uuid.NewString,
		CookieDomain:   cfg.CookieDomain,
		CookieSecure:   cfg.CookieSecure,
		CookieHTTPOnly: true,
		CookieSameSite: cfg.CookieSameSite,
	})
}

// EstablishSession associates the request's session with the user id.
func EstablishSession(c *fiber.Ctx, store *session.Store, userID int64) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(sessionUserKey, userID)
	return sess.Save()
}

// DestroySession invalidates the request's session.
func DestroySession(c *fiber.Ctx, store *session.Store) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// SessionUserID returns the user id bound to the request's session, if any.
func SessionUserID(c *fiber.Ctx, store *session.Store) (int64, bool) {
	sess, err := store.Get(c)
	if err != nil {
		return 0, false
	}
	val := sess.Get(sessionUserKey)
	if val == nil {
		return 0, false
	}
	id, ok := val.(int64)
	return id, ok
}
