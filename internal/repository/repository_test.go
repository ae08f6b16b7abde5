package repository

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-desk/internal/auth"
	"github.com/spec-kit/ticket-desk/internal/persistence"
)

// newTestDB opens an in-memory database with the full schema and two known
// users: alice (admin, id 1) and bob (id 2), both with password "pw".
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite3", "file::memory:?_fk=1&_loc=UTC")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(persistence.Schema)
	require.NoError(t, err)

	seedUser(t, db, "alice@example.com", "Alice", "pw", 1)
	seedUser(t, db, "bob@example.com", "Bob", "pw", 0)
	return db
}

func seedUser(t *testing.T, db *sqlx.DB, email, name, password string, isAdmin int) {
	t.Helper()
	salt, err := auth.NewSalt()
	require.NoError(t, err)
	hash, err := auth.HashPassword(password, salt)
	require.NoError(t, err)
	_, err = db.Exec(
		`INSERT INTO users (email, name, salt, hash, is_admin) VALUES (?, ?, ?, ?, ?)`,
		email, name, salt, hash, isAdmin)
	require.NoError(t, err)
}

func ctx() context.Context {
	return context.Background()
}
