package persistence

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-desk/internal/auth"
)

func newMemoryDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", "file::memory:?_fk=1&_loc=UTC")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(Schema)
	require.NoError(t, err)
	return db
}

func TestSeedDemoUsers(t *testing.T) {
	db := newMemoryDB(t)

	require.NoError(t, SeedDemoUsers(context.Background(), db, zap.NewNop()))

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM users`))
	assert.Equal(t, 3, count)

	var row struct {
		Salt    string `db:"salt"`
		Hash    string `db:"hash"`
		IsAdmin int    `db:"is_admin"`
	}
	require.NoError(t, db.Get(&row,
		`SELECT salt, hash, is_admin FROM users WHERE email = 'admin@ticket.desk'`))
	assert.Equal(t, 1, row.IsAdmin)

	ok, err := auth.VerifyPassword("password", row.Salt, row.Hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSeedDemoUsersSkipsNonEmptyTable(t *testing.T) {
	db := newMemoryDB(t)

	_, err := db.Exec(
		`INSERT INTO users (email, name, salt, hash, is_admin) VALUES ('x@y.z', 'X', 's', 'h', 0)`)
	require.NoError(t, err)

	require.NoError(t, SeedDemoUsers(context.Background(), db, zap.NewNop()))

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM users`))
	assert.Equal(t, 1, count)
}

func TestSchemaIsIdempotent(t *testing.T) {
	db := newMemoryDB(t)

	_, err := db.Exec(Schema)
	assert.NoError(t, err)
}
