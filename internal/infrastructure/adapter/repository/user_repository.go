package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finbharat/finbharat/internal/domain/entity"
	errs "github.com/finbharat/finbharat/internal/domain/error"
	coreport "github.com/finbharat/finbharat/internal/domain/port/core"
	"github.com/finbharat/finbharat/internal/domain/port/persistence"
	"github.com/finbharat/finbharat/internal/infrastructure/adapter/model"
)

// UserRepository implements persistence.UserRepository with GORM
type UserRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	classifier   *ErrorClassifier
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) persistence.UserRepository {
	return &UserRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
		classifier:   NewErrorClassifier(),
	}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	var m model.User
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, r.storeError("get user by id", err)
	}
	return r.toEntity(&m), nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var m model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, r.storeError("get user by username", err)
	}
	return r.toEntity(&m), nil
}

// Create persists a new user. Uniqueness is enforced by the username
// index, not a read-then-write check, so concurrent registrations of
// the same name cannot race past each other.
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	m := r.toModel(user)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if r.classifier.IsDuplicateKeyError(err) {
			return errs.ErrDuplicateUsername
		}
		return r.storeError("create user", err)
	}

	user.ID = m.ID
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

// AdjustCash applies a signed cash delta under a row lock. The caller
// is expected to run this inside a unit of work so the lock is held
// until the surrounding trade commits.
func (r *UserRepository) AdjustCash(ctx context.Context, userID uint64, deltaInCents int64) (*entity.User, error) {
	var m model.User

	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		if r.classifier.IsLockError(err) {
			return nil, errs.ErrUserLocked
		}
		return nil, r.storeError("lock user row", err)
	}

	newCash := m.Cash + deltaInCents
	if newCash < 0 {
		return nil, errs.ErrInsufficientFunds
	}

	now := r.timeProvider.Now()
	updates := map[string]any{
		"cash":              newCash,
		"transaction_count": m.TransactionCount + 1,
		"updated_at":        now,
	}
	if err := r.db.WithContext(ctx).Model(&m).Updates(updates).Error; err != nil {
		if r.classifier.IsLockError(err) {
			return nil, errs.ErrUserLocked
		}
		if r.classifier.IsCheckConstraintError(err) {
			return nil, errs.ErrInsufficientFunds
		}
		return nil, r.storeError("adjust cash", err)
	}

	m.Cash = newCash
	m.TransactionCount++
	m.UpdatedAt = now
	return r.toEntity(&m), nil
}

func (r *UserRepository) storeError(operation string, err error) error {
	r.logger.Error(fmt.Sprintf("%s failed", operation), map[string]any{
		"error": err.Error(),
	})
	if r.classifier.IsConnectionError(err) {
		return errs.ErrDatabaseConnection
	}
	return fmt.Errorf("%w: %s: %v", errs.ErrStore, operation, err)
}

func (r *UserRepository) toEntity(m *model.User) *entity.User {
	return entity.RehydrateUser(m.ID, m.Username, m.PasswordHash, m.Cash, m.CreatedAt, m.UpdatedAt, m.TransactionCount)
}

func (r *UserRepository) toModel(user *entity.User) *model.User {
	return &model.User{
		ID:               user.ID,
		Username:         user.Username,
		PasswordHash:     user.PasswordHash(),
		Cash:             user.Cash(),
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
		TransactionCount: user.TransactionCount,
	}
}
