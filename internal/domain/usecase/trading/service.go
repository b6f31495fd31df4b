package trading

import (
	"context"
	"errors"
	"fmt"

	"github.com/finbharat/finbharat/internal/domain/entity"
	errs "github.com/finbharat/finbharat/internal/domain/error"
	coreport "github.com/finbharat/finbharat/internal/domain/port/core"
	"github.com/finbharat/finbharat/internal/domain/port/marketdata"
	"github.com/finbharat/finbharat/internal/domain/port/persistence"
	"github.com/finbharat/finbharat/internal/domain/port/usecase"
)

// Service is the transaction engine: it prices trades against live
// quotes, validates cash and holdings, and commits balance update plus
// ledger append as one atomic unit.
type Service struct {
	uow          persistence.UnitOfWork
	quotes       marketdata.QuoteProvider
	serializer   *UserSerializer
	validator    *TradeValidator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates the trading service
func NewService(
	uow persistence.UnitOfWork,
	quotes marketdata.QuoteProvider,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		quotes:       quotes,
		serializer:   NewUserSerializer(logger),
		validator:    NewTradeValidator(),
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Buy purchases shares at the current quoted price. The quote is
// fetched before entering the user's queue so a slow market-data call
// does not stall the user's other trades; the cash check and both
// mutations then run serialized and inside one database transaction.
func (s *Service) Buy(ctx context.Context, userID uint64, symbol string, shares int64) (*usecase.TradeResult, error) {
	normalized, err := s.validator.ValidateTrade(userID, symbol, shares)
	if err != nil {
		return nil, err
	}

	quote, err := s.quotes.Lookup(ctx, normalized)
	if err != nil {
		return nil, err
	}

	cost, err := entity.TradeCost(shares, quote.PriceInCents)
	if err != nil {
		return nil, err
	}

	return s.serializer.Do(ctx, userID, func(ctx context.Context) (*usecase.TradeResult, error) {
		return s.executeBuy(ctx, userID, normalized, shares, quote.PriceInCents, cost)
	})
}

// executeBuy runs inside the user's queue. Both mutations commit or
// neither does.
func (s *Service) executeBuy(ctx context.Context, userID uint64, symbol string, shares, priceInCents, cost int64) (*usecase.TradeResult, error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	users := s.uow.Users(txCtx)
	ledger := s.uow.Transactions(txCtx)

	user, err := users.AdjustCash(txCtx, userID, -cost)
	if err != nil {
		s.rollback(txCtx)
		if errors.Is(err, errs.ErrInsufficientFunds) {
			current, lookupErr := s.currentCash(ctx, userID)
			if lookupErr == nil {
				return nil, errs.NewInsufficientFundsError(userID, symbol, shares, priceInCents, cost, current)
			}
			return nil, errs.NewInsufficientFundsError(userID, symbol, shares, priceInCents, cost, -1)
		}
		return nil, err
	}

	row, err := entity.NewBuyTransaction(userID, symbol, shares, priceInCents, s.timeProvider)
	if err != nil {
		s.rollback(txCtx)
		return nil, err
	}

	if err := ledger.Create(txCtx, row); err != nil {
		s.rollback(txCtx)
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	s.logger.Info("Buy committed", map[string]any{
		"user_id":     userID,
		"symbol":      symbol,
		"shares":      shares,
		"price_cents": priceInCents,
		"cost_cents":  cost,
		"cash_cents":  user.Cash(),
	})

	return &usecase.TradeResult{
		Transaction: row,
		CashInCents: user.Cash(),
	}, nil
}

// Sell disposes shares at the current quoted price. The holding check
// runs inside the same database transaction as the mutations, after
// the user row is locked, so a concurrent sell cannot oversell.
func (s *Service) Sell(ctx context.Context, userID uint64, symbol string, shares int64) (*usecase.TradeResult, error) {
	normalized, err := s.validator.ValidateTrade(userID, symbol, shares)
	if err != nil {
		return nil, err
	}

	quote, err := s.quotes.Lookup(ctx, normalized)
	if err != nil {
		return nil, err
	}

	proceeds, err := entity.TradeCost(shares, quote.PriceInCents)
	if err != nil {
		return nil, err
	}

	return s.serializer.Do(ctx, userID, func(ctx context.Context) (*usecase.TradeResult, error) {
		return s.executeSell(ctx, userID, normalized, shares, quote.PriceInCents, proceeds)
	})
}

func (s *Service) executeSell(ctx context.Context, userID uint64, symbol string, shares, priceInCents, proceeds int64) (*usecase.TradeResult, error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	users := s.uow.Users(txCtx)
	ledger := s.uow.Transactions(txCtx)

	held, err := ledger.HoldingForSymbol(txCtx, userID, symbol)
	if err != nil {
		s.rollback(txCtx)
		return nil, err
	}
	if held < shares {
		s.rollback(txCtx)
		return nil, errs.NewInsufficientSharesError(userID, symbol, shares, held)
	}

	user, err := users.AdjustCash(txCtx, userID, proceeds)
	if err != nil {
		s.rollback(txCtx)
		return nil, err
	}

	row, err := entity.NewSellTransaction(userID, symbol, shares, priceInCents, s.timeProvider)
	if err != nil {
		s.rollback(txCtx)
		return nil, err
	}

	if err := ledger.Create(txCtx, row); err != nil {
		s.rollback(txCtx)
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	s.logger.Info("Sell committed", map[string]any{
		"user_id":        userID,
		"symbol":         symbol,
		"shares":         shares,
		"price_cents":    priceInCents,
		"proceeds_cents": proceeds,
		"cash_cents":     user.Cash(),
	})

	return &usecase.TradeResult{
		Transaction: row,
		CashInCents: user.Cash(),
	}, nil
}

// Portfolio returns the user's positive positions paired with the most
// recent transaction price per symbol, plus the cash balance. An empty
// Positions slice is the distinct "no stocks" state, not an error.
func (s *Service) Portfolio(ctx context.Context, userID uint64) (*usecase.PortfolioView, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	user, err := s.uow.Users(ctx).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	positions, err := s.uow.Transactions(ctx).Positions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading positions: %s", errs.ErrStore, err.Error())
	}

	return &usecase.PortfolioView{
		Positions:   positions,
		CashInCents: user.Cash(),
	}, nil
}

// History returns every ledger row for the user, newest first
func (s *Service) History(ctx context.Context, userID uint64) ([]*entity.Transaction, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	return s.uow.Transactions(ctx).ListByUser(ctx, userID)
}

// HeldSymbols returns the symbols with a positive holding, for the
// sell form
func (s *Service) HeldSymbols(ctx context.Context, userID uint64) ([]string, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	positions, err := s.uow.Transactions(ctx).Positions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading positions: %s", errs.ErrStore, err.Error())
	}

	symbols := make([]string, 0, len(positions))
	for _, p := range positions {
		symbols = append(symbols, p.Symbol)
	}
	return symbols, nil
}

// Shutdown drains the per-user trade queues
func (s *Service) Shutdown() {
	s.serializer.Shutdown()
}

// currentCash re-reads the cash balance for error reporting; failures
// here must not mask the original business error
func (s *Service) currentCash(ctx context.Context, userID uint64) (int64, error) {
	user, err := s.uow.Users(ctx).GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.Cash(), nil
}

// rollback logs rollback failures instead of returning them, so the
// business error stays visible to the caller
func (s *Service) rollback(ctx context.Context) {
	if err := s.uow.Rollback(ctx); err != nil {
		s.logger.Error("Failed to roll back trade", map[string]any{
			"error": err.Error(),
		})
	}
}
