package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finbharat/finbharat/internal/domain/entity"
	domainerr "github.com/finbharat/finbharat/internal/domain/error"
	coreport "github.com/finbharat/finbharat/internal/domain/port/core"
	"github.com/finbharat/finbharat/internal/domain/port/usecase"
	"github.com/finbharat/finbharat/internal/domain/usecase/trading"
	"github.com/finbharat/finbharat/internal/infrastructure/adapter/api/dto"
	"github.com/finbharat/finbharat/internal/infrastructure/adapter/api/middleware"
)

// TradingHandler handles portfolio, buy, sell and history requests
type TradingHandler struct {
	tradingService usecase.TradingUseCase
	logger         coreport.Logger
}

// NewTradingHandler creates a new trading handler instance
func NewTradingHandler(tradingService usecase.TradingUseCase, logger coreport.Logger) *TradingHandler {
	return &TradingHandler{
		tradingService: tradingService,
		logger:         logger,
	}
}

// Portfolio handles the GET / endpoint: the user's current positions,
// cash and grand total
func (h *TradingHandler) Portfolio(c *gin.Context) {
	userID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		respondError(c, h.logger, domainerr.ErrNotAuthenticated)
		return
	}

	view, err := h.tradingService.Portfolio(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	positions := make([]dto.PositionResponse, 0, len(view.Positions))
	total := view.CashInCents
	for _, p := range view.Positions {
		positions = append(positions, dto.PositionResponse{
			Symbol: p.Symbol,
			Shares: p.Shares,
			Price:  entity.CentsToString(p.PriceInCents),
			Value:  entity.CentsToString(p.Value()),
		})
		total += p.Value()
	}

	c.JSON(http.StatusOK, dto.PortfolioResponse{
		Positions: positions,
		Cash:      entity.CentsToString(view.CashInCents),
		Total:     entity.CentsToString(total),
	})
}

// Buy handles the POST /buy endpoint
func (h *TradingHandler) Buy(c *gin.Context) {
	h.trade(c, h.tradingService.Buy, "buy")
}

// Sell handles the POST /sell endpoint
func (h *TradingHandler) Sell(c *gin.Context) {
	h.trade(c, h.tradingService.Sell, "sell")
}

// SellForm handles the GET /sell endpoint: the symbols the user can sell
func (h *TradingHandler) SellForm(c *gin.Context) {
	userID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		respondError(c, h.logger, domainerr.ErrNotAuthenticated)
		return
	}

	symbols, err := h.tradingService.HeldSymbols(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SellFormResponse{Symbols: symbols})
}

// History handles the GET /history endpoint: every trade, newest first
func (h *TradingHandler) History(c *gin.Context) {
	userID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		respondError(c, h.logger, domainerr.ErrNotAuthenticated)
		return
	}

	transactions, err := h.tradingService.History(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	entries := make([]dto.HistoryEntryResponse, 0, len(transactions))
	for _, t := range transactions {
		side := "buy"
		shares := t.Shares
		if t.IsSell() {
			side = "sell"
			shares = -shares
		}
		entries = append(entries, dto.HistoryEntryResponse{
			Symbol:     t.Symbol,
			Shares:     shares,
			Side:       side,
			Price:      entity.CentsToString(t.PriceInCents),
			ExecutedAt: t.ExecutedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, dto.HistoryResponse{Transactions: entries})
}

func (h *TradingHandler) trade(
	c *gin.Context,
	execute func(ctx context.Context, userID uint64, symbol string, shares int64) (*usecase.TradeResult, error),
	side string,
) {
	userID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		respondError(c, h.logger, domainerr.ErrNotAuthenticated)
		return
	}

	var req dto.TradeRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Debug("Invalid trade request format", map[string]any{
			"error": err.Error(),
		})
		respondError(c, h.logger, domainerr.ErrInvalidRequest)
		return
	}

	shares, err := trading.ParseShareCount(req.Shares)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, err := execute(c.Request.Context(), userID, req.Symbol, shares)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	t := result.Transaction
	c.JSON(http.StatusOK, dto.TradeResponse{
		Symbol:     t.Symbol,
		Shares:     shares,
		Side:       side,
		Price:      entity.CentsToString(t.PriceInCents),
		Total:      entity.CentsToString(t.Value()),
		Cash:       entity.CentsToString(result.CashInCents),
		ExecutedAt: t.ExecutedAt.Format(time.RFC3339),
	})
}
