package dto

import "github.com/spec-kit/ticket-desk/internal/domain"

// LoginRequest payload for POST /api/session. The username field carries
// the account email.
type LoginRequest struct {
	Username string `json:"username" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of a user. is_admin is 0/1 on the wire.
type UserResponse struct {
	ID      int64  `json:"id"`
	IsAdmin int    `json:"is_admin"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

// FromUser converts a domain user to its wire shape.
func FromUser(u domain.User) UserResponse {
	isAdmin := 0
	if u.IsAdmin {
		isAdmin = 1
	}
	return UserResponse{ID: u.ID, IsAdmin: isAdmin, Email: u.Email, Name: u.Name}
}

// TokenResponse carries the estimation bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}
