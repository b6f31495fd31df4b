package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientFunds  = 4001
	CodeInsufficientShares = 4002
	CodeInvalidShareCount  = 4003
	CodeInvalidSymbol      = 4004
	CodeInvalidAmount      = 4005
	CodeAmountOverflow     = 4006
	CodeInvalidCredentials = 4010
	CodeNotAuthenticated   = 4011
	CodeDuplicateUsername  = 4090
	CodeUserNotFound       = 4040
	CodeUserLocked         = 4230

	// 5xxx - Server and upstream errors
	CodeInternalServer   = 5000
	CodeQuoteUnavailable = 5020
)

// Base error types
var (
	// ErrInsufficientFunds is returned when a buy would cost more than the user's cash
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientShares is returned when a sell exceeds the user's holding
	ErrInsufficientShares = errors.New("insufficient shares")

	// ErrInvalidShareCount is returned when the share count is not a positive integer
	ErrInvalidShareCount = errors.New("share count must be a positive integer")

	// ErrInvalidSymbol is returned when the ticker symbol is empty or malformed
	ErrInvalidSymbol = errors.New("invalid ticker symbol")

	// ErrInvalidAmount is returned when a monetary amount has an invalid format
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when a monetary amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrAmountOverflow is returned when a computed cost would overflow int64 cents
	ErrAmountOverflow = errors.New("amount is too large and would cause overflow")

	// ErrInvalidUserID is returned when the user ID is not a positive integer
	ErrInvalidUserID = errors.New("user ID must be positive")

	// ErrInvalidUsername is returned when the username is empty or malformed
	ErrInvalidUsername = errors.New("invalid username")

	// ErrInvalidCredentials is returned when username/password verification fails
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrPasswordMismatch is returned when password and confirmation differ
	ErrPasswordMismatch = errors.New("password and confirmation do not match")

	// ErrNotAuthenticated is returned when a request carries no valid session
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrDuplicateUsername is returned when registering an already taken username
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrTransactionNotFound is returned when the requested ledger row doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrUserLocked is returned when a user row is locked by another operation
	ErrUserLocked = errors.New("user is locked by another operation")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrStore is returned when a persistence operation fails; it is never
	// collapsed into an empty result
	ErrStore = errors.New("store failure")

	// ErrDatabaseConnection is returned when the database cannot be reached
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")
)

// Quote lookup failure taxonomy
var (
	// ErrTransport is returned on network/HTTP failure; not retryable
	ErrTransport = errors.New("market data transport failure")

	// ErrRateLimited signals an upstream rate limit; retryable with backoff
	ErrRateLimited = errors.New("market data rate limited")

	// ErrDataUnavailable is returned when the response parsed but lacked the
	// expected fields; not retryable
	ErrDataUnavailable = errors.New("market data missing expected fields")

	// ErrRetriesExhausted is returned after the retry budget is spent
	ErrRetriesExhausted = errors.New("market data retries exhausted")

	// ErrQuoteUnavailable is the umbrella error surfaced to callers when a
	// quote could not be obtained for any reason
	ErrQuoteUnavailable = errors.New("quote unavailable")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrInsufficientShares):
		return CodeInsufficientShares
	case errors.Is(err, ErrInvalidShareCount):
		return CodeInvalidShareCount
	case errors.Is(err, ErrInvalidSymbol):
		return CodeInvalidSymbol
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrAmountOverflow):
		return CodeAmountOverflow
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrPasswordMismatch):
		return CodeInvalidCredentials
	case errors.Is(err, ErrNotAuthenticated):
		return CodeNotAuthenticated
	case errors.Is(err, ErrDuplicateUsername):
		return CodeDuplicateUsername
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrUserLocked):
		return CodeUserLocked
	case errors.Is(err, ErrQuoteUnavailable):
		return CodeQuoteUnavailable
	default:
		return CodeInternalServer
	}
}

// InsufficientFundsError carries the balance details of a rejected buy
type InsufficientFundsError struct {
	UserID       uint64
	CostInCents  int64
	CashInCents  int64
	Symbol       string
	ShareCount   int64
	PriceInCents int64
}

// Error implements the error interface
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds for user %d: need %d cents to buy %d %s at %d, have %d",
		e.UserID, e.CostInCents, e.ShareCount, e.Symbol, e.PriceInCents, e.CashInCents)
}

// Is checks if the target error is an ErrInsufficientFunds
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientFundsError) LogFields() map[string]any {
	return map[string]any{
		"error_type":  "insufficient_funds",
		"user_id":     e.UserID,
		"symbol":      e.Symbol,
		"shares":      e.ShareCount,
		"price_cents": e.PriceInCents,
		"cost_cents":  e.CostInCents,
		"cash_cents":  e.CashInCents,
		"error_code":  CodeInsufficientFunds,
	}
}

// InsufficientSharesError carries the holding details of a rejected sell
type InsufficientSharesError struct {
	UserID    uint64
	Symbol    string
	Requested int64
	Held      int64
}

// Error implements the error interface
func (e *InsufficientSharesError) Error() string {
	return fmt.Sprintf("insufficient shares of %s for user %d: requested %d, holding %d",
		e.Symbol, e.UserID, e.Requested, e.Held)
}

// Is checks if the target error is an ErrInsufficientShares
func (e *InsufficientSharesError) Is(target error) bool {
	return target == ErrInsufficientShares
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientSharesError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "insufficient_shares",
		"user_id":    e.UserID,
		"symbol":     e.Symbol,
		"requested":  e.Requested,
		"held":       e.Held,
		"error_code": CodeInsufficientShares,
	}
}

// QuoteError describes a failed quote lookup, including how it failed and
// how many attempts were made
type QuoteError struct {
	Symbol   string
	Attempts int
	Err      error
}

// Error implements the error interface
func (e *QuoteError) Error() string {
	return fmt.Sprintf("quote lookup failed for %s after %d attempt(s): %v", e.Symbol, e.Attempts, e.Err)
}

// Unwrap returns the underlying failure cause
func (e *QuoteError) Unwrap() error {
	return e.Err
}

// Is lets QuoteError match the umbrella ErrQuoteUnavailable as well as its cause
func (e *QuoteError) Is(target error) bool {
	return target == ErrQuoteUnavailable
}

// LogFields returns a map of fields for structured logging
func (e *QuoteError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "quote_error",
		"symbol":     e.Symbol,
		"attempts":   e.Attempts,
		"error":      e.Err.Error(),
		"error_code": CodeQuoteUnavailable,
	}
}

// NewInsufficientFundsError creates a detailed insufficient funds error
func NewInsufficientFundsError(userID uint64, symbol string, shares, priceInCents, costInCents, cashInCents int64) error {
	return &InsufficientFundsError{
		UserID:       userID,
		Symbol:       symbol,
		ShareCount:   shares,
		PriceInCents: priceInCents,
		CostInCents:  costInCents,
		CashInCents:  cashInCents,
	}
}

// NewInsufficientSharesError creates a detailed insufficient shares error
func NewInsufficientSharesError(userID uint64, symbol string, requested, held int64) error {
	return &InsufficientSharesError{
		UserID:    userID,
		Symbol:    symbol,
		Requested: requested,
		Held:      held,
	}
}

// NewQuoteError wraps a quote lookup failure with its attempt count
func NewQuoteError(symbol string, attempts int, err error) error {
	return &QuoteError{
		Symbol:   symbol,
		Attempts: attempts,
		Err:      err,
	}
}

// IsInsufficientFundsError checks if the error is an insufficient funds error
func IsInsufficientFundsError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsInsufficientSharesError checks if the error is an insufficient shares error
func IsInsufficientSharesError(err error) bool {
	return errors.Is(err, ErrInsufficientShares)
}

// IsQuoteUnavailableError checks if the error is any quote lookup failure
func IsQuoteUnavailableError(err error) bool {
	return errors.Is(err, ErrQuoteUnavailable)
}

// IsUserNotFoundError checks if the error is a user not found error
func IsUserNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}

// IsValidationError checks if the error comes from malformed user input
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidShareCount) ||
		errors.Is(err, ErrInvalidSymbol) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrNegativeAmount) ||
		errors.Is(err, ErrAmountOverflow) ||
		errors.Is(err, ErrInvalidUsername) ||
		errors.Is(err, ErrPasswordMismatch) ||
		errors.Is(err, ErrInvalidRequest)
}

// IsAuthError checks if the error is an authentication/registration failure
func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrNotAuthenticated) ||
		errors.Is(err, ErrDuplicateUsername)
}

// IsUserLockedError checks if the error is related to a locked user
func IsUserLockedError(err error) bool {
	return errors.Is(err, ErrUserLocked)
}
