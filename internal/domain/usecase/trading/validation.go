package trading

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/finbharat/finbharat/internal/domain/entity"
	errs "github.com/finbharat/finbharat/internal/domain/error"
)

// TradeValidator validates buy/sell request fields before any quote is
// fetched or lock taken
type TradeValidator struct{}

// NewTradeValidator creates a new TradeValidator
func NewTradeValidator() *TradeValidator {
	return &TradeValidator{}
}

// ValidateTrade checks the user, symbol and share count of a trade
// request. Returns the normalized symbol.
func (v *TradeValidator) ValidateTrade(userID uint64, symbol string, shares int64) (string, error) {
	if userID == 0 {
		return "", errs.ErrInvalidUserID
	}

	normalized := entity.NormalizeSymbol(symbol)
	if !entity.ValidSymbol(normalized) {
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidSymbol, symbol)
	}

	if shares <= 0 {
		return "", errs.ErrInvalidShareCount
	}

	return normalized, nil
}

// ParseShareCount converts the "shares" form field into a positive
// integer. The field arrives as a string and anything non-numeric,
// zero, negative or fractional is rejected.
func ParseShareCount(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errs.ErrInvalidShareCount
	}

	shares, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || shares <= 0 {
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidShareCount, raw)
	}

	return shares, nil
}
