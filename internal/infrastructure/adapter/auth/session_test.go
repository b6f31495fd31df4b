package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/finbharat/finbharat/internal/domain/error"
	coremocks "github.com/finbharat/finbharat/mocks/port/core"
)

func TestNewSessionManager(t *testing.T) {
	mockTime := coremocks.NewMockTimeProvider(t)

	t.Run("Empty secret is rejected", func(t *testing.T) {
		manager, err := NewSessionManager("", time.Hour, mockTime)
		assert.Error(t, err)
		assert.Nil(t, manager)
	})

	t.Run("Non-positive TTL falls back to the default", func(t *testing.T) {
		manager, err := NewSessionManager("secret", 0, mockTime)
		require.NoError(t, err)
		assert.Equal(t, DefaultSessionTTL, manager.TTL())
	})
}

func TestIssueAndVerify(t *testing.T) {
	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Round trip", func(t *testing.T) {
		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.EXPECT().Now().Return(issuedAt)

		manager, err := NewSessionManager("secret", time.Hour, mockTime)
		require.NoError(t, err)

		token, err := manager.Issue(42, "harshita")
		require.NoError(t, err)

		claims, err := manager.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), claims.UserID)
		assert.Equal(t, "harshita", claims.Username)
	})

	t.Run("Expired token", func(t *testing.T) {
		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.EXPECT().Now().Return(issuedAt).Once()

		manager, err := NewSessionManager("secret", time.Hour, mockTime)
		require.NoError(t, err)

		token, err := manager.Issue(42, "harshita")
		require.NoError(t, err)

		// The clock jumps past the one hour TTL
		mockTime.EXPECT().Now().Return(issuedAt.Add(2 * time.Hour)).Once()

		claims, err := manager.Verify(token)
		assert.ErrorIs(t, err, errs.ErrNotAuthenticated)
		assert.Nil(t, claims)
	})

	t.Run("Tampered token", func(t *testing.T) {
		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.EXPECT().Now().Return(issuedAt)

		manager, err := NewSessionManager("secret", time.Hour, mockTime)
		require.NoError(t, err)

		token, err := manager.Issue(42, "harshita")
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		tampered := parts[0] + "." + parts[1] + "x." + parts[2]

		claims, err := manager.Verify(tampered)
		assert.ErrorIs(t, err, errs.ErrNotAuthenticated)
		assert.Nil(t, claims)
	})

	t.Run("Token signed with a different secret", func(t *testing.T) {
		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.EXPECT().Now().Return(issuedAt)

		manager, err := NewSessionManager("secret", time.Hour, mockTime)
		require.NoError(t, err)
		other, err := NewSessionManager("another-secret", time.Hour, mockTime)
		require.NoError(t, err)

		token, err := other.Issue(42, "harshita")
		require.NoError(t, err)

		claims, err := manager.Verify(token)
		assert.ErrorIs(t, err, errs.ErrNotAuthenticated)
		assert.Nil(t, claims)
	})

	t.Run("Garbage token", func(t *testing.T) {
		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.EXPECT().Now().Return(issuedAt).Maybe()

		manager, err := NewSessionManager("secret", time.Hour, mockTime)
		require.NoError(t, err)

		claims, err := manager.Verify("not-a-token")
		assert.ErrorIs(t, err, errs.ErrNotAuthenticated)
		assert.Nil(t, claims)
	})
}
