package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	errs "github.com/finbharat/finbharat/internal/domain/error"
)

// Monetary values are carried as int64 cents (paise) to avoid floating
// point drift in the ledger. Conversion to and from decimal form goes
// through shopspring/decimal.

// MaxDecimalPlaces defines the maximum number of decimal places allowed
// for money amounts
const MaxDecimalPlaces = 2

// ParseAmount validates a decimal string amount ("10", "10.5", "10.50")
// and converts it to cents. Negative amounts and more than two decimal
// places are rejected.
func ParseAmount(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}

	if d.IsNegative() {
		return 0, errs.ErrNegativeAmount
	}

	if d.Exponent() < -MaxDecimalPlaces {
		return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
	}

	cents := d.Shift(MaxDecimalPlaces)
	if !cents.IsInteger() || !cents.BigInt().IsInt64() {
		return 0, errs.ErrAmountOverflow
	}

	return cents.IntPart(), nil
}

// PriceToCents converts an upstream floating-point price into cents,
// rounding half up to two decimal places the way the quote source
// presents prices.
func PriceToCents(price float64) (int64, error) {
	if price < 0 {
		return 0, errs.ErrNegativeAmount
	}

	cents := decimal.NewFromFloat(price).Shift(MaxDecimalPlaces).Round(0)
	if !cents.BigInt().IsInt64() {
		return 0, errs.ErrAmountOverflow
	}

	return cents.IntPart(), nil
}

// CentsToString renders cents as a plain decimal string with exactly
// two decimal places, e.g. 1015 -> "10.15".
func CentsToString(cents int64) string {
	return decimal.New(cents, -MaxDecimalPlaces).StringFixed(MaxDecimalPlaces)
}

// FormatINR renders cents as a rupee amount with thousands separators,
// e.g. 1000000 -> "₹10,000.00".
func FormatINR(cents int64) string {
	d := decimal.New(cents, -MaxDecimalPlaces)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	fixed := d.StringFixed(MaxDecimalPlaces)
	dot := strings.Index(fixed, ".")
	whole, frac := fixed[:dot], fixed[dot:]

	var grouped strings.Builder
	lead := len(whole) % 3
	if lead > 0 {
		grouped.WriteString(whole[:lead])
	}
	for i := lead; i < len(whole); i += 3 {
		if grouped.Len() > 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteString(whole[i : i+3])
	}

	return sign + "₹" + grouped.String() + frac
}

// TradeCost computes shares x price in cents with overflow detection.
// Shares must already be validated positive.
func TradeCost(shares, priceInCents int64) (int64, error) {
	if shares <= 0 {
		return 0, errs.ErrInvalidShareCount
	}
	if priceInCents < 0 {
		return 0, errs.ErrNegativeAmount
	}

	cost := shares * priceInCents
	if priceInCents != 0 && cost/priceInCents != shares {
		return 0, errs.ErrAmountOverflow
	}

	return cost, nil
}
