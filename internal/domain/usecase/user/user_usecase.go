package user

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/finbharat/finbharat/internal/domain/entity"
	errs "github.com/finbharat/finbharat/internal/domain/error"
	coreport "github.com/finbharat/finbharat/internal/domain/port/core"
	"github.com/finbharat/finbharat/internal/domain/port/persistence"
)

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 4

// UserUseCase handles registration and credential verification
type UserUseCase struct {
	userRepo            persistence.UserRepository
	timeProvider        coreport.TimeProvider
	logger              coreport.Logger
	startingCashInCents int64
	bcryptCost          int
}

// NewUserUseCase creates a new UserUseCase. startingCashInCents is the
// fictional cash granted to every new account.
func NewUserUseCase(
	userRepo persistence.UserRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	startingCashInCents int64,
	bcryptCost int,
) *UserUseCase {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserUseCase{
		userRepo:            userRepo,
		timeProvider:        timeProvider,
		logger:              logger,
		startingCashInCents: startingCashInCents,
		bcryptCost:          bcryptCost,
	}
}

// Register creates a new user with a bcrypt-hashed password and the
// configured starting cash
func (u *UserUseCase) Register(ctx context.Context, username, password, confirmation string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errs.ErrInvalidUsername
	}
	if len(password) < MinPasswordLength {
		return nil, errs.ErrInvalidCredentials
	}
	if password != confirmation {
		return nil, errs.ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), u.bcryptCost)
	if err != nil {
		u.logger.Error("Failed to hash password", map[string]any{
			"error": err.Error(),
		})
		return nil, errs.ErrInternalServer
	}

	user, err := entity.NewUser(username, string(hash), u.startingCashInCents, u.timeProvider)
	if err != nil {
		return nil, err
	}

	// Uniqueness is enforced by the store's unique index; a pre-check
	// here would still race with concurrent registrations.
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, errs.ErrDuplicateUsername) {
			u.logger.Warn("Registration rejected, username taken", map[string]any{
				"username": username,
			})
		}
		return nil, err
	}

	u.logger.Info("User registered", map[string]any{
		"user_id":  user.ID,
		"username": username,
	})

	return user, nil
}

// Authenticate verifies a username/password pair. A missing user and a
// wrong password both surface as ErrInvalidCredentials so the response
// does not leak which usernames exist.
func (u *UserUseCase) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errs.ErrInvalidCredentials
	}

	user, err := u.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash()), []byte(password)); err != nil {
		u.logger.Warn("Login failed", map[string]any{
			"username": username,
		})
		return nil, errs.ErrInvalidCredentials
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (u *UserUseCase) GetByID(ctx context.Context, userID uint64) (*entity.User, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	return u.userRepo.GetByID(ctx, userID)
}
