package persistence

import (
	"context"
)

// UnitOfWork coordinates the ledger mutations of a single trade so that
// the cash update and the transaction insert commit or fail together.
type UnitOfWork interface {
	// Begin starts a new database transaction and returns a context
	// carrying it
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// Users returns a user repository bound to the transaction in ctx,
	// or to the base connection when ctx carries none
	Users(ctx context.Context) UserRepository

	// Transactions returns a ledger repository bound to the transaction
	// in ctx, or to the base connection when ctx carries none
	Transactions(ctx context.Context) TransactionRepository
}
