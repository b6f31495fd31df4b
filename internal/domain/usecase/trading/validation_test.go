package trading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/finbharat/finbharat/internal/domain/error"
)

func TestValidateTrade(t *testing.T) {
	validator := NewTradeValidator()

	t.Run("Valid trade normalizes the symbol", func(t *testing.T) {
		symbol, err := validator.ValidateTrade(1, " nflx ", 10)
		require.NoError(t, err)
		assert.Equal(t, "NFLX", symbol)
	})

	t.Run("Zero user ID", func(t *testing.T) {
		_, err := validator.ValidateTrade(0, "NFLX", 10)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})

	t.Run("Blank symbol", func(t *testing.T) {
		_, err := validator.ValidateTrade(1, "   ", 10)
		assert.ErrorIs(t, err, errs.ErrInvalidSymbol)
	})

	t.Run("Malformed symbol", func(t *testing.T) {
		_, err := validator.ValidateTrade(1, "NF LX", 10)
		assert.ErrorIs(t, err, errs.ErrInvalidSymbol)
	})

	t.Run("Non-positive shares", func(t *testing.T) {
		_, err := validator.ValidateTrade(1, "NFLX", 0)
		assert.ErrorIs(t, err, errs.ErrInvalidShareCount)

		_, err = validator.ValidateTrade(1, "NFLX", -3)
		assert.ErrorIs(t, err, errs.ErrInvalidShareCount)
	})
}

func TestParseShareCount(t *testing.T) {
	t.Run("Valid counts", func(t *testing.T) {
		cases := map[string]int64{
			"1":    1,
			"10":   10,
			" 25 ": 25,
		}
		for input, want := range cases {
			got, err := ParseShareCount(input)
			require.NoError(t, err, "input %q", input)
			assert.Equal(t, want, got)
		}
	})

	t.Run("Rejected counts", func(t *testing.T) {
		for _, input := range []string{"", "0", "-5", "1.5", "ten", "1e3", "+ 1"} {
			_, err := ParseShareCount(input)
			assert.ErrorIs(t, err, errs.ErrInvalidShareCount, "input %q", input)
		}
	})
}
