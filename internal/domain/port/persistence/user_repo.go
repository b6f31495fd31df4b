package persistence

import (
	"context"

	"github.com/finbharat/finbharat/internal/domain/entity"
)

// UserRepository defines the persistence operations for users
type UserRepository interface {
	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: if no user has this ID
	// - ErrDatabaseConnection: if the database cannot be reached
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// GetByUsername retrieves a user by username, used during login
	//
	// Possible errors:
	// - ErrUserNotFound: if no user has this username
	// - ErrDatabaseConnection: if the database cannot be reached
	GetByUsername(ctx context.Context, username string) (*entity.User, error)

	// Create persists a new user created by registration
	//
	// Possible errors:
	// - ErrDuplicateUsername: if the username is already taken
	// - ErrDatabaseConnection: if the database cannot be reached
	Create(ctx context.Context, user *entity.User) error

	// AdjustCash atomically applies a signed cash delta (in cents) to a
	// user's balance under a row lock, rejecting any change that would
	// leave the balance negative. Returns the updated user.
	//
	// Possible errors:
	// - ErrUserNotFound: if no user has this ID
	// - ErrInsufficientFunds: if the delta would make cash negative
	// - ErrUserLocked: if the row is locked by another operation
	// - ErrDatabaseConnection: if the database cannot be reached
	AdjustCash(ctx context.Context, userID uint64, deltaInCents int64) (*entity.User, error)
}
