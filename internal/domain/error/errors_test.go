package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{ErrInsufficientFunds, CodeInsufficientFunds},
		{ErrInsufficientShares, CodeInsufficientShares},
		{ErrInvalidShareCount, CodeInvalidShareCount},
		{ErrInvalidSymbol, CodeInvalidSymbol},
		{ErrInvalidAmount, CodeInvalidAmount},
		{ErrNegativeAmount, CodeInvalidAmount},
		{ErrAmountOverflow, CodeAmountOverflow},
		{ErrInvalidCredentials, CodeInvalidCredentials},
		{ErrPasswordMismatch, CodeInvalidCredentials},
		{ErrNotAuthenticated, CodeNotAuthenticated},
		{ErrDuplicateUsername, CodeDuplicateUsername},
		{ErrUserNotFound, CodeUserNotFound},
		{ErrUserLocked, CodeUserLocked},
		{ErrQuoteUnavailable, CodeQuoteUnavailable},
		{ErrInternalServer, CodeInternalServer},
		{errors.New("anything else"), CodeInternalServer},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.code, ErrorCode(tc.err), "error %v", tc.err)
	}
}

func TestErrorCodeSeesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", ErrInsufficientFunds)
	assert.Equal(t, CodeInsufficientFunds, ErrorCode(wrapped))
}

func TestInsufficientFundsError(t *testing.T) {
	err := NewInsufficientFundsError(42, "NFLX", 10, 10000, 100000, 50000)

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.True(t, IsInsufficientFundsError(err))
	assert.Equal(t, CodeInsufficientFunds, ErrorCode(err))

	var typed *InsufficientFundsError
	assert.ErrorAs(t, err, &typed)
	assert.Equal(t, uint64(42), typed.UserID)
	assert.Equal(t, int64(100000), typed.CostInCents)
	assert.Equal(t, int64(50000), typed.CashInCents)

	fields := typed.LogFields()
	assert.Equal(t, "insufficient_funds", fields["error_type"])
	assert.Equal(t, int64(100000), fields["cost_cents"])
}

func TestInsufficientSharesError(t *testing.T) {
	err := NewInsufficientSharesError(42, "NFLX", 10, 3)

	assert.ErrorIs(t, err, ErrInsufficientShares)
	assert.True(t, IsInsufficientSharesError(err))

	var typed *InsufficientSharesError
	assert.ErrorAs(t, err, &typed)
	assert.Equal(t, int64(10), typed.Requested)
	assert.Equal(t, int64(3), typed.Held)
	assert.Contains(t, err.Error(), "requested 10")
}

func TestQuoteError(t *testing.T) {
	t.Run("Matches the umbrella and its cause", func(t *testing.T) {
		err := NewQuoteError("NFLX", 5, ErrRetriesExhausted)

		assert.ErrorIs(t, err, ErrQuoteUnavailable)
		assert.ErrorIs(t, err, ErrRetriesExhausted)
		assert.True(t, IsQuoteUnavailableError(err))
		assert.Equal(t, CodeQuoteUnavailable, ErrorCode(err))
	})

	t.Run("Transport cause stays visible", func(t *testing.T) {
		cause := fmt.Errorf("%w: connection refused", ErrTransport)
		err := NewQuoteError("NFLX", 1, cause)

		assert.ErrorIs(t, err, ErrTransport)
		assert.NotErrorIs(t, err, ErrRateLimited)

		var typed *QuoteError
		assert.ErrorAs(t, err, &typed)
		assert.Equal(t, 1, typed.Attempts)
	})
}

func TestErrorClassHelpers(t *testing.T) {
	assert.True(t, IsValidationError(ErrInvalidSymbol))
	assert.True(t, IsValidationError(ErrPasswordMismatch))
	assert.False(t, IsValidationError(ErrInsufficientFunds))

	assert.True(t, IsAuthError(ErrInvalidCredentials))
	assert.True(t, IsAuthError(ErrDuplicateUsername))
	assert.False(t, IsAuthError(ErrUserNotFound))

	assert.True(t, IsNotFoundError(ErrUserNotFound))
	assert.True(t, IsNotFoundError(ErrTransactionNotFound))

	assert.True(t, IsUserLockedError(ErrUserLocked))
	assert.True(t, IsUserNotFoundError(fmt.Errorf("load: %w", ErrUserNotFound)))
}
