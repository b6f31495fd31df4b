package usecase

import (
	"context"

	"github.com/finbharat/finbharat/internal/domain/entity"
)

// UserUseCase defines registration and credential verification
type UserUseCase interface {
	// Register creates a new user with a bcrypt-hashed password and the
	// configured starting cash. The confirmation must match the password.
	Register(ctx context.Context, username, password, confirmation string) (*entity.User, error)

	// Authenticate verifies a username/password pair and returns the
	// user on success
	Authenticate(ctx context.Context, username, password string) (*entity.User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, userID uint64) (*entity.User, error)
}
