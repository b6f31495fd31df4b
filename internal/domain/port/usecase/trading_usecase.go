package usecase

import (
	"context"

	"github.com/finbharat/finbharat/internal/domain/entity"
)

// TradeResult contains the outcome of a committed buy or sell
type TradeResult struct {
	Transaction *entity.Transaction
	CashInCents int64 // cash balance after the trade
}

// PortfolioView is the portfolio grouped by symbol plus the cash balance.
// An empty Positions slice is a valid, distinct "no stocks" state.
type PortfolioView struct {
	Positions   []entity.Position
	CashInCents int64
}

// TradingUseCase defines the buy/sell/report operations of the
// transaction engine
type TradingUseCase interface {
	// Buy purchases shares at the current quoted price, atomically
	// debiting cash and appending a positive ledger row
	Buy(ctx context.Context, userID uint64, symbol string, shares int64) (*TradeResult, error)

	// Sell disposes shares at the current quoted price, atomically
	// crediting cash and appending a negative ledger row
	Sell(ctx context.Context, userID uint64, symbol string, shares int64) (*TradeResult, error)

	// Portfolio returns the user's current positions and cash
	Portfolio(ctx context.Context, userID uint64) (*PortfolioView, error)

	// History returns every ledger row for the user, newest first
	History(ctx context.Context, userID uint64) ([]*entity.Transaction, error)

	// HeldSymbols returns the symbols with a positive holding, for the
	// sell form
	HeldSymbols(ctx context.Context, userID uint64) ([]string, error)
}
