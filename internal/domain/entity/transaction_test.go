package entity

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/finbharat/finbharat/internal/domain/error"
	coremocks "github.com/finbharat/finbharat/mocks/port/core"
)

func TestNormalizeSymbol(t *testing.T) {
	assert.Equal(t, "NFLX", NormalizeSymbol("nflx"))
	assert.Equal(t, "NFLX", NormalizeSymbol("  NfLx "))
	assert.Equal(t, "BRK.B", NormalizeSymbol("brk.b"))
	assert.Equal(t, "", NormalizeSymbol("   "))
}

func TestValidSymbol(t *testing.T) {
	valid := []string{"A", "NFLX", "BRK.B", "RDS-A", "123", "TATAMOTORS.NS"}
	for _, s := range valid {
		assert.True(t, ValidSymbol(s), "symbol %q", s)
	}

	invalid := []string{"", "nflx", "NF LX", "NFLX!", strings.Repeat("A", MaxSymbolLength+1), "₹INR"}
	for _, s := range invalid {
		assert.False(t, ValidSymbol(s), "symbol %q", s)
	}
}

func TestNewBuyTransaction(t *testing.T) {
	fixedTime := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Successful buy row", func(t *testing.T) {
		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.EXPECT().Now().Return(fixedTime).Once()

		tx, err := NewBuyTransaction(1, "nflx", 10, 10000, mockTime)

		require.NoError(t, err)
		assert.Equal(t, "NFLX", tx.Symbol)
		assert.Equal(t, int64(10), tx.Shares)
		assert.True(t, tx.IsBuy())
		assert.False(t, tx.IsSell())
		assert.Equal(t, int64(100000), tx.Value())
		assert.Equal(t, fixedTime, tx.ExecutedAt)
	})

	t.Run("Invalid user", func(t *testing.T) {
		mockTime := coremocks.NewMockTimeProvider(t)

		_, err := NewBuyTransaction(0, "NFLX", 10, 10000, mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})

	t.Run("Invalid symbol", func(t *testing.T) {
		mockTime := coremocks.NewMockTimeProvider(t)

		_, err := NewBuyTransaction(1, "N F L X", 10, 10000, mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidSymbol)
	})

	t.Run("Non-positive shares", func(t *testing.T) {
		mockTime := coremocks.NewMockTimeProvider(t)

		_, err := NewBuyTransaction(1, "NFLX", 0, 10000, mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidShareCount)
	})
}

func TestNewSellTransaction(t *testing.T) {
	fixedTime := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Shares are stored negated", func(t *testing.T) {
		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.EXPECT().Now().Return(fixedTime).Once()

		tx, err := NewSellTransaction(1, "NFLX", 10, 12000, mockTime)

		require.NoError(t, err)
		assert.Equal(t, int64(-10), tx.Shares)
		assert.True(t, tx.IsSell())
		assert.False(t, tx.IsBuy())
		assert.Equal(t, int64(120000), tx.Value())
	})

	t.Run("Sell count must be positive", func(t *testing.T) {
		mockTime := coremocks.NewMockTimeProvider(t)

		_, err := NewSellTransaction(1, "NFLX", -10, 12000, mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidShareCount)
	})
}

func TestPositionValue(t *testing.T) {
	p := Position{Symbol: "NFLX", Shares: 10, PriceInCents: 10050}
	assert.Equal(t, int64(100500), p.Value())
}
