package entity

import (
	"strings"
	"time"

	errs "github.com/finbharat/finbharat/internal/domain/error"
	coreport "github.com/finbharat/finbharat/internal/domain/port/core"
)

// User represents a registered trader with a fictional cash balance
type User struct {
	ID               uint64    // Unique identifier, assigned by the store
	Username         string    // Unique login name, immutable after creation
	cash             int64     // Cash balance in cents (private, invariant: >= 0 after commit)
	passwordHash     string    // bcrypt hash, never the plaintext
	CreatedAt        time.Time // When the user registered
	UpdatedAt        time.Time // When the user was last updated
	TransactionCount uint64    // Count of committed trades for this user
}

// NewUser creates a new user with the given username, password hash and
// starting cash in cents
func NewUser(username, passwordHash string, startingCashInCents int64, timeProvider coreport.TimeProvider) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errs.ErrInvalidUsername
	}
	if passwordHash == "" {
		return nil, errs.ErrInvalidCredentials
	}
	if startingCashInCents < 0 {
		return nil, errs.ErrNegativeAmount
	}

	now := timeProvider.Now()
	return &User{
		Username:     username,
		cash:         startingCashInCents,
		passwordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Cash returns the current cash balance in cents
func (u *User) Cash() int64 {
	return u.cash
}

// FormattedCash returns the cash balance as a string with 2 decimal places
func (u *User) FormattedCash() string {
	return CentsToString(u.cash)
}

// RehydrateUser rebuilds a user from stored fields, bypassing the
// creation-time validation. For repository use only.
func RehydrateUser(id uint64, username, passwordHash string, cashInCents int64, createdAt, updatedAt time.Time, transactionCount uint64) *User {
	return &User{
		ID:               id,
		Username:         username,
		cash:             cashInCents,
		passwordHash:     passwordHash,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
		TransactionCount: transactionCount,
	}
}

// PasswordHash returns the stored bcrypt hash
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// CanAfford checks whether the user has enough cash for a cost in cents
func (u *User) CanAfford(costInCents int64) bool {
	return u.cash >= costInCents
}

// Debit subtracts a trade cost from the cash balance.
// Returns ErrInsufficientFunds if cash would go negative.
func (u *User) Debit(costInCents int64, timeProvider coreport.TimeProvider) error {
	if u.cash < costInCents {
		return errs.ErrInsufficientFunds
	}

	u.cash -= costInCents
	u.UpdatedAt = timeProvider.Now()
	u.TransactionCount++
	return nil
}

// Credit adds sale proceeds to the cash balance
func (u *User) Credit(proceedsInCents int64, timeProvider coreport.TimeProvider) {
	u.cash += proceedsInCents
	u.UpdatedAt = timeProvider.Now()
	u.TransactionCount++
}
