package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finbharat/finbharat/internal/domain/entity"
	domainerr "github.com/finbharat/finbharat/internal/domain/error"
	coreport "github.com/finbharat/finbharat/internal/domain/port/core"
	"github.com/finbharat/finbharat/internal/domain/port/marketdata"
	"github.com/finbharat/finbharat/internal/infrastructure/adapter/api/dto"
)

// QuoteHandler handles live price lookups
type QuoteHandler struct {
	quotes marketdata.QuoteProvider
	logger coreport.Logger
}

// NewQuoteHandler creates a new quote handler instance
func NewQuoteHandler(quotes marketdata.QuoteProvider, logger coreport.Logger) *QuoteHandler {
	return &QuoteHandler{
		quotes: quotes,
		logger: logger,
	}
}

// Quote handles the GET|POST /quote endpoint. The symbol arrives as a
// query parameter or form field.
func (h *QuoteHandler) Quote(c *gin.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, h.logger, domainerr.ErrInvalidSymbol)
		return
	}

	symbol := entity.NormalizeSymbol(req.Symbol)
	if !entity.ValidSymbol(symbol) {
		respondError(c, h.logger, domainerr.ErrInvalidSymbol)
		return
	}

	quote, err := h.quotes.Lookup(c.Request.Context(), symbol)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.QuoteResponse{
		Symbol:  quote.Symbol,
		Name:    quote.Name,
		Price:   entity.CentsToString(quote.PriceInCents),
		Display: entity.FormatINR(quote.PriceInCents),
	})
}
