package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/finbharat/finbharat/internal/domain/error"
)

func TestParseAmount(t *testing.T) {
	t.Run("Valid amounts", func(t *testing.T) {
		cases := map[string]int64{
			"10000.00": 1000000,
			"10":       1000,
			"10.5":     1050,
			"0":        0,
			"0.01":     1,
			" 25.00 ":  2500,
		}
		for input, want := range cases {
			got, err := ParseAmount(input)
			require.NoError(t, err, "input %q", input)
			assert.Equal(t, want, got, "input %q", input)
		}
	})

	t.Run("Empty amount", func(t *testing.T) {
		_, err := ParseAmount("")
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("Non-numeric amount", func(t *testing.T) {
		_, err := ParseAmount("ten rupees")
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("Negative amount", func(t *testing.T) {
		_, err := ParseAmount("-5.00")
		assert.ErrorIs(t, err, errs.ErrNegativeAmount)
	})

	t.Run("Too many decimal places", func(t *testing.T) {
		_, err := ParseAmount("1.999")
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})
}

func TestPriceToCents(t *testing.T) {
	t.Run("Rounds half up to two places", func(t *testing.T) {
		cases := map[float64]int64{
			100.00:  10000,
			100.005: 10001,
			0.1:     10,
			0:       0,
		}
		for input, want := range cases {
			got, err := PriceToCents(input)
			require.NoError(t, err)
			assert.Equal(t, want, got, "input %v", input)
		}
	})

	t.Run("Negative price", func(t *testing.T) {
		_, err := PriceToCents(-1.5)
		assert.ErrorIs(t, err, errs.ErrNegativeAmount)
	})
}

func TestCentsToString(t *testing.T) {
	assert.Equal(t, "10.15", CentsToString(1015))
	assert.Equal(t, "0.00", CentsToString(0))
	assert.Equal(t, "0.05", CentsToString(5))
	assert.Equal(t, "10000.00", CentsToString(1000000))
	assert.Equal(t, "-3.50", CentsToString(-350))
}

func TestFormatINR(t *testing.T) {
	assert.Equal(t, "₹10,000.00", FormatINR(1000000))
	assert.Equal(t, "₹0.00", FormatINR(0))
	assert.Equal(t, "₹999.99", FormatINR(99999))
	assert.Equal(t, "₹1,234,567.89", FormatINR(123456789))
	assert.Equal(t, "-₹1,000.00", FormatINR(-100000))
}

func TestTradeCost(t *testing.T) {
	t.Run("Simple cost", func(t *testing.T) {
		cost, err := TradeCost(10, 10000)
		require.NoError(t, err)
		assert.Equal(t, int64(100000), cost)
	})

	t.Run("Zero price is allowed", func(t *testing.T) {
		cost, err := TradeCost(3, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), cost)
	})

	t.Run("Non-positive shares", func(t *testing.T) {
		_, err := TradeCost(0, 10000)
		assert.ErrorIs(t, err, errs.ErrInvalidShareCount)

		_, err = TradeCost(-5, 10000)
		assert.ErrorIs(t, err, errs.ErrInvalidShareCount)
	})

	t.Run("Negative price", func(t *testing.T) {
		_, err := TradeCost(5, -1)
		assert.ErrorIs(t, err, errs.ErrNegativeAmount)
	})

	t.Run("Overflow is detected", func(t *testing.T) {
		_, err := TradeCost(1<<40, 1<<40)
		assert.ErrorIs(t, err, errs.ErrAmountOverflow)
	})
}
