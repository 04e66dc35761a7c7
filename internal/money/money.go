// Package money holds the exact decimal arithmetic every report computation
// routes through. Amounts are never represented as binary floats.
package money

import (
	"github.com/shopspring/decimal"

	apperrors "github.com/tdhoang/centavo/internal/errors"
)

// Parse converts a signed decimal string into an exact decimal. An unparsable
// value returns ErrMalformedDecimal rather than a zero amount.
func Parse(value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, &apperrors.ErrMalformedDecimal{Value: value}
	}
	return d, nil
}

// Add returns a+b with full precision.
func Add(a, b decimal.Decimal) decimal.Decimal {
	return a.Add(b)
}

// Compare returns -1, 0 or 1 when a is less than, equal to or greater than b.
func Compare(a, b decimal.Decimal) int {
	return a.Cmp(b)
}

// Positive returns the absolute value of an amount, precision preserved.
func Positive(amount decimal.Decimal) decimal.Decimal {
	return amount.Abs()
}
