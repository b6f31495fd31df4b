package entity

import (
	"strings"
	"time"

	errs "github.com/finbharat/finbharat/internal/domain/error"
	coreport "github.com/finbharat/finbharat/internal/domain/port/core"
)

// MaxSymbolLength bounds ticker symbols; real market tickers are short
const MaxSymbolLength = 12

// Transaction is one immutable row of the trade ledger. Shares is
// signed: positive for a buy, negative for a sell. Price is the quote
// price at execution time and is never recomputed.
type Transaction struct {
	ID           uint64    // Unique identifier, assigned by the store
	UserID       uint64    // Owner of the trade
	Symbol       string    // Uppercase ticker symbol
	Shares       int64     // Signed share count
	PriceInCents int64     // Per-share price snapshot at execution
	ExecutedAt   time.Time // When the trade committed
}

// NormalizeSymbol uppercases and trims a ticker symbol
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// ValidSymbol reports whether a normalized symbol is a plausible ticker:
// non-empty, bounded length, letters/digits with optional '.' or '-'
// segment separators.
func ValidSymbol(symbol string) bool {
	if symbol == "" || len(symbol) > MaxSymbolLength {
		return false
	}
	for _, r := range symbol {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '-':
		default:
			return false
		}
	}
	return true
}

// NewBuyTransaction builds a ledger row for a purchase of shares at the
// given quoted price
func NewBuyTransaction(userID uint64, symbol string, shares, priceInCents int64, timeProvider coreport.TimeProvider) (*Transaction, error) {
	return newTransaction(userID, symbol, shares, priceInCents, timeProvider)
}

// NewSellTransaction builds a ledger row for a disposal of shares; the
// stored share count is negated
func NewSellTransaction(userID uint64, symbol string, shares, priceInCents int64, timeProvider coreport.TimeProvider) (*Transaction, error) {
	t, err := newTransaction(userID, symbol, shares, priceInCents, timeProvider)
	if err != nil {
		return nil, err
	}
	t.Shares = -t.Shares
	return t, nil
}

func newTransaction(userID uint64, symbol string, shares, priceInCents int64, timeProvider coreport.TimeProvider) (*Transaction, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	symbol = NormalizeSymbol(symbol)
	if !ValidSymbol(symbol) {
		return nil, errs.ErrInvalidSymbol
	}

	if shares <= 0 {
		return nil, errs.ErrInvalidShareCount
	}
	if priceInCents < 0 {
		return nil, errs.ErrNegativeAmount
	}

	return &Transaction{
		UserID:       userID,
		Symbol:       symbol,
		Shares:       shares,
		PriceInCents: priceInCents,
		ExecutedAt:   timeProvider.Now(),
	}, nil
}

// IsBuy reports whether this row increased the holding
func (t *Transaction) IsBuy() bool {
	return t.Shares > 0
}

// IsSell reports whether this row decreased the holding
func (t *Transaction) IsSell() bool {
	return t.Shares < 0
}

// Value returns the absolute cash moved by this row in cents
func (t *Transaction) Value() int64 {
	shares := t.Shares
	if shares < 0 {
		shares = -shares
	}
	return shares * t.PriceInCents
}

// Position is a derived holding for one user/symbol pair. It is never
// stored; it is the summed ledger paired with the most recent
// transaction price for that symbol.
type Position struct {
	Symbol       string
	Shares       int64
	PriceInCents int64 // most recent transaction price, not a live re-quote
}

// Value returns the position's worth at its recorded price in cents
func (p Position) Value() int64 {
	return p.Shares * p.PriceInCents
}
