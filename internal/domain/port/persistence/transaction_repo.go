package persistence

import (
	"context"

	"github.com/finbharat/finbharat/internal/domain/entity"
)

// TransactionRepository defines the persistence operations for the
// append-only trade ledger. Ledger rows are never updated or deleted;
// holdings and cash are derivable by replaying them.
type TransactionRepository interface {
	// Create appends a new ledger row
	//
	// Possible errors:
	// - ErrConstraintViolation: if the row violates a schema constraint
	// - ErrDatabaseConnection: if the database cannot be reached
	Create(ctx context.Context, transaction *entity.Transaction) error

	// ListByUser returns all ledger rows for a user, newest first
	ListByUser(ctx context.Context, userID uint64) ([]*entity.Transaction, error)

	// HoldingForSymbol returns the summed signed share count for one
	// user/symbol pair. Zero with no error means no holding.
	HoldingForSymbol(ctx context.Context, userID uint64, symbol string) (int64, error)

	// Positions groups the user's ledger by symbol, sums shares, keeps
	// symbols with a positive sum and pairs each with the price of the
	// most recent transaction for that symbol. An empty slice (not nil
	// error) means an empty portfolio.
	Positions(ctx context.Context, userID uint64) ([]entity.Position, error)
}
