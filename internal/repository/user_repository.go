package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/spec-kit/ticket-desk/internal/auth"
	"github.com/spec-kit/ticket-desk/internal/domain"
	"github.com/spec-kit/ticket-desk/pkg/errorutil"
)

// UserRepository encapsulates user persistence and credential checks.
type UserRepository interface {
	// Authenticate looks up the user by email and verifies the password
	// against the stored salted hash. Unknown email and wrong password both
	// yield ok=false without an error; only I/O faults return an error.
	Authenticate(ctx context.Context, email, password string) (domain.User, bool, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
}

type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository instantiates the repository.
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

type userRow struct {
	ID      int64  `db:"user_id"`
	Email   string `db:"email"`
	Name    string `db:"name"`
	Salt    string `db:"salt"`
	Hash    string `db:"hash"`
	IsAdmin int    `db:"is_admin"`
}

func (r userRow) toDomain() domain.User {
	return domain.User{
		ID:      r.ID,
		Email:   r.Email,
		Name:    r.Name,
		IsAdmin: r.IsAdmin != 0,
	}
}

func (r *userRepository) Authenticate(ctx context.Context, email, password string) (domain.User, bool, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row,
		`SELECT user_id, email, name, salt, hash, is_admin FROM users WHERE email = ?`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, errorutil.NewStorage(err)
	}

	match, err := auth.VerifyPassword(password, row.Salt, row.Hash)
	if err != nil {
		return domain.User{}, false, errorutil.NewStorage(err)
	}
	if !match {
		return domain.User{}, false, nil
	}
	return row.toDomain(), true, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row,
		`SELECT user_id, email, name, salt, hash, is_admin FROM users WHERE user_id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, errorutil.NewNotFound("user")
	}
	if err != nil {
		return domain.User{}, errorutil.NewStorage(err)
	}
	return row.toDomain(), nil
}
