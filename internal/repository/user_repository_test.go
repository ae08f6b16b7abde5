package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-desk/pkg/errorutil"
)

func TestAuthenticateSuccess(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	user, ok, err := repo.Authenticate(ctx(), "alice@example.com", "pw")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.True(t, user.IsAdmin)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	// Wrong password must resolve to the not-found sentinel, never an error.
	user, ok, err := repo.Authenticate(ctx(), "alice@example.com", "nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, user)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	_, ok, err := repo.Authenticate(ctx(), "ghost@example.com", "pw")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetUserByID(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	user, err := repo.GetByID(ctx(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Bob", user.Name)
	assert.False(t, user.IsAdmin)
}

func TestGetUserByIDNotFound(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	_, err := repo.GetByID(ctx(), 999)
	require.Error(t, err)
	assert.True(t, errorutil.IsKind(err, errorutil.KindNotFound))
}
