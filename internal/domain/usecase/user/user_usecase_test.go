package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/finbharat/finbharat/internal/domain/entity"
	errs "github.com/finbharat/finbharat/internal/domain/error"
	coremocks "github.com/finbharat/finbharat/mocks/port/core"
	persistencemocks "github.com/finbharat/finbharat/mocks/port/persistence"
)

const startingCash = int64(1000000) // 10000.00

func TestRegister(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Successful registration", func(t *testing.T) {
		mockRepo := persistencemocks.NewMockUserRepository(t)
		mockTime := coremocks.NewMockTimeProvider(t)
		mockLogger := coremocks.NewMockLogger(t)

		mockTime.EXPECT().Now().Return(fixedTime).Once()
		mockRepo.EXPECT().Create(mock.Anything, mock.MatchedBy(func(user *entity.User) bool {
			if user.Username != "harshita" || user.Cash() != startingCash {
				return false
			}
			// The stored hash must verify against the original password
			return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash()), []byte("s3cret")) == nil
		})).Return(nil).Once()
		mockLogger.EXPECT().Info(mock.Anything, mock.Anything).Once()

		userUseCase := NewUserUseCase(mockRepo, mockTime, mockLogger, startingCash, bcrypt.MinCost)

		user, err := userUseCase.Register(ctx, " harshita ", "s3cret", "s3cret")

		require.NoError(t, err)
		assert.Equal(t, "harshita", user.Username)
		assert.Equal(t, startingCash, user.Cash())
	})

	t.Run("Blank username", func(t *testing.T) {
		mockRepo := persistencemocks.NewMockUserRepository(t)
		mockTime := coremocks.NewMockTimeProvider(t)
		mockLogger := coremocks.NewMockLogger(t)

		userUseCase := NewUserUseCase(mockRepo, mockTime, mockLogger, startingCash, bcrypt.MinCost)

		user, err := userUseCase.Register(ctx, "   ", "s3cret", "s3cret")

		assert.ErrorIs(t, err, errs.ErrInvalidUsername)
		assert.Nil(t, user)
	})

	t.Run("Password too short", func(t *testing.T) {
		mockRepo := persistencemocks.NewMockUserRepository(t)
		mockTime := coremocks.NewMockTimeProvider(t)
		mockLogger := coremocks.NewMockLogger(t)

		userUseCase := NewUserUseCase(mockRepo, mockTime, mockLogger, startingCash, bcrypt.MinCost)

		user, err := userUseCase.Register(ctx, "harshita", "abc", "abc")

		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
		assert.Nil(t, user)
	})

	t.Run("Confirmation mismatch", func(t *testing.T) {
		mockRepo := persistencemocks.NewMockUserRepository(t)
		mockTime := coremocks.NewMockTimeProvider(t)
		mockLogger := coremocks.NewMockLogger(t)

		userUseCase := NewUserUseCase(mockRepo, mockTime, mockLogger, startingCash, bcrypt.MinCost)

		user, err := userUseCase.Register(ctx, "harshita", "s3cret", "s3cre7")

		assert.ErrorIs(t, err, errs.ErrPasswordMismatch)
		assert.Nil(t, user)
	})

	t.Run("Username already taken", func(t *testing.T) {
		mockRepo := persistencemocks.NewMockUserRepository(t)
		mockTime := coremocks.NewMockTimeProvider(t)
		mockLogger := coremocks.NewMockLogger(t)

		mockTime.EXPECT().Now().Return(fixedTime).Once()
		mockRepo.EXPECT().Create(mock.Anything, mock.Anything).Return(errs.ErrDuplicateUsername).Once()
		mockLogger.EXPECT().Warn(mock.Anything, mock.Anything).Once()

		userUseCase := NewUserUseCase(mockRepo, mockTime, mockLogger, startingCash, bcrypt.MinCost)

		user, err := userUseCase.Register(ctx, "harshita", "s3cret", "s3cret")

		assert.ErrorIs(t, err, errs.ErrDuplicateUsername)
		assert.Nil(t, user)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := entity.RehydrateUser(1, "harshita", string(hash), startingCash, fixedTime, fixedTime, 0)

	t.Run("Valid credentials", func(t *testing.T) {
		mockRepo := persistencemocks.NewMockUserRepository(t)
		mockTime := coremocks.NewMockTimeProvider(t)
		mockLogger := coremocks.NewMockLogger(t)

		mockRepo.EXPECT().GetByUsername(mock.Anything, "harshita").Return(stored, nil).Once()

		userUseCase := NewUserUseCase(mockRepo, mockTime, mockLogger, startingCash, bcrypt.MinCost)

		user, err := userUseCase.Authenticate(ctx, "harshita", "s3cret")

		require.NoError(t, err)
		assert.Equal(t, uint64(1), user.ID)
	})

	t.Run("Wrong password", func(t *testing.T) {
		mockRepo := persistencemocks.NewMockUserRepository(t)
		mockTime := coremocks.NewMockTimeProvider(t)
		mockLogger := coremocks.NewMockLogger(t)

		mockRepo.EXPECT().GetByUsername(mock.Anything, "harshita").Return(stored, nil).Once()
		mockLogger.EXPECT().Warn(mock.Anything, mock.Anything).Once()

		userUseCase := NewUserUseCase(mockRepo, mockTime, mockLogger, startingCash, bcrypt.MinCost)

		user, err := userUseCase.Authenticate(ctx, "harshita", "wrong")

		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
		assert.Nil(t, user)
	})

	t.Run("Unknown user maps to the same credentials error", func(t *testing.T) {
		mockRepo := persistencemocks.NewMockUserRepository(t)
		mockTime := coremocks.NewMockTimeProvider(t)
		mockLogger := coremocks.NewMockLogger(t)

		mockRepo.EXPECT().GetByUsername(mock.Anything, "nobody").Return(nil, errs.ErrUserNotFound).Once()

		userUseCase := NewUserUseCase(mockRepo, mockTime, mockLogger, startingCash, bcrypt.MinCost)

		user, err := userUseCase.Authenticate(ctx, "nobody", "s3cret")

		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
		assert.NotErrorIs(t, err, errs.ErrUserNotFound)
		assert.Nil(t, user)
	})

	t.Run("Blank inputs", func(t *testing.T) {
		mockRepo := persistencemocks.NewMockUserRepository(t)
		mockTime := coremocks.NewMockTimeProvider(t)
		mockLogger := coremocks.NewMockLogger(t)

		userUseCase := NewUserUseCase(mockRepo, mockTime, mockLogger, startingCash, bcrypt.MinCost)

		_, err := userUseCase.Authenticate(ctx, "", "s3cret")
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)

		_, err = userUseCase.Authenticate(ctx, "harshita", "")
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Found", func(t *testing.T) {
		mockRepo := persistencemocks.NewMockUserRepository(t)
		mockTime := coremocks.NewMockTimeProvider(t)
		mockLogger := coremocks.NewMockLogger(t)

		stored := entity.RehydrateUser(1, "harshita", "hash", startingCash, fixedTime, fixedTime, 0)
		mockRepo.EXPECT().GetByID(mock.Anything, uint64(1)).Return(stored, nil).Once()

		userUseCase := NewUserUseCase(mockRepo, mockTime, mockLogger, startingCash, bcrypt.MinCost)

		user, err := userUseCase.GetByID(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, "harshita", user.Username)
	})

	t.Run("Zero ID", func(t *testing.T) {
		mockRepo := persistencemocks.NewMockUserRepository(t)
		mockTime := coremocks.NewMockTimeProvider(t)
		mockLogger := coremocks.NewMockLogger(t)

		userUseCase := NewUserUseCase(mockRepo, mockTime, mockLogger, startingCash, bcrypt.MinCost)

		_, err := userUseCase.GetByID(ctx, 0)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})
}
