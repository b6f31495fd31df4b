package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/finbharat/finbharat/internal/domain/entity"
	errs "github.com/finbharat/finbharat/internal/domain/error"
	coreport "github.com/finbharat/finbharat/internal/domain/port/core"
	"github.com/finbharat/finbharat/internal/domain/port/persistence"
	"github.com/finbharat/finbharat/internal/infrastructure/adapter/model"
)

// TransactionRepository implements persistence.TransactionRepository
// with GORM. The ledger is append-only: this repository exposes no
// update or delete.
type TransactionRepository struct {
	db         *gorm.DB
	logger     coreport.Logger
	classifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) persistence.TransactionRepository {
	return &TransactionRepository{
		db:         db,
		logger:     logger,
		classifier: NewErrorClassifier(),
	}
}

// Create appends a new ledger row
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	m := &model.Transaction{
		UserID:       transaction.UserID,
		Symbol:       transaction.Symbol,
		Shares:       transaction.Shares,
		PriceInCents: transaction.PriceInCents,
		ExecutedAt:   transaction.ExecutedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if r.classifier.IsCheckConstraintError(err) {
			return errs.ErrConstraintViolation
		}
		return r.storeError("create transaction", err)
	}

	transaction.ID = m.ID
	return nil
}

// ListByUser returns all ledger rows for a user, newest first
func (r *TransactionRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.Transaction, error) {
	var models []model.Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&models).Error
	if err != nil {
		return nil, r.storeError("list transactions", err)
	}

	transactions := make([]*entity.Transaction, 0, len(models))
	for i := range models {
		transactions = append(transactions, r.toEntity(&models[i]))
	}
	return transactions, nil
}

// HoldingForSymbol sums the signed share counts for one user/symbol pair
func (r *TransactionRepository) HoldingForSymbol(ctx context.Context, userID uint64, symbol string) (int64, error) {
	var held int64
	err := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Select("COALESCE(SUM(shares), 0)").
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Scan(&held).Error
	if err != nil {
		return 0, r.storeError("sum holding", err)
	}
	return held, nil
}

// Positions derives the user's current holdings by summing the ledger
// per symbol and pairing each positive sum with the price of that
// symbol's most recent row.
func (r *TransactionRepository) Positions(ctx context.Context, userID uint64) ([]entity.Position, error) {
	type positionRow struct {
		Symbol       string
		Shares       int64
		PriceInCents int64
	}

	var rows []positionRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT h.symbol,
		       h.shares,
		       t.price_in_cents
		FROM (
			SELECT symbol, SUM(shares) AS shares, MAX(id) AS last_id
			FROM transactions
			WHERE user_id = ?
			GROUP BY symbol
			HAVING SUM(shares) > 0
		) h
		JOIN transactions t ON t.id = h.last_id
		ORDER BY h.symbol`, userID).Scan(&rows).Error
	if err != nil {
		return nil, r.storeError("derive positions", err)
	}

	positions := make([]entity.Position, 0, len(rows))
	for _, row := range rows {
		positions = append(positions, entity.Position{
			Symbol:       row.Symbol,
			Shares:       row.Shares,
			PriceInCents: row.PriceInCents,
		})
	}
	return positions, nil
}

func (r *TransactionRepository) storeError(operation string, err error) error {
	r.logger.Error(fmt.Sprintf("%s failed", operation), map[string]any{
		"error": err.Error(),
	})
	if r.classifier.IsConnectionError(err) {
		return errs.ErrDatabaseConnection
	}
	return fmt.Errorf("%w: %s: %v", errs.ErrStore, operation, err)
}

func (r *TransactionRepository) toEntity(m *model.Transaction) *entity.Transaction {
	return &entity.Transaction{
		ID:           m.ID,
		UserID:       m.UserID,
		Symbol:       m.Symbol,
		Shares:       m.Shares,
		PriceInCents: m.PriceInCents,
		ExecutedAt:   m.ExecutedAt,
	}
}
