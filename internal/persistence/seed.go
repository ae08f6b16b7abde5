package persistence

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-desk/internal/auth"
)

type demoUser struct {
	email    string
	name     string
	password string
	isAdmin  int
}

var demoUsers = []demoUser{
	{email: "admin@ticket.desk", name: "Ada Admin", password: "password", isAdmin: 1},
	{email: "mario@ticket.desk", name: "Mario Rossi", password: "password", isAdmin: 0},
	{email: "lucia@ticket.desk", name: "Lucia Bianchi", password: "password", isAdmin: 0},
}

// SeedDemoUsers inserts a small fixed user set when the users table is
// empty. Accounts are otherwise created out of band; this exists so a fresh
// checkout is usable without hand-crafting scrypt hashes.
func SeedDemoUsers(ctx context.Context, db *sqlx.DB, logger *zap.Logger) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, u := range demoUsers {
		salt, err := auth.NewSalt()
		if err != nil {
			return err
		}
		hash, err := auth.HashPassword(u.password, salt)
		if err != nil {
			return err
		}
		_, err = db.ExecContext(ctx,
			`INSERT INTO users (email, name, salt, hash, is_admin) VALUES (?, ?, ?, ?, ?)`,
			u.email, u.name, salt, hash, u.isAdmin)
		if err != nil {
			return err
		}
	}

	logger.Info("seeded demo users", zap.Int("count", len(demoUsers)))
	return nil
}
