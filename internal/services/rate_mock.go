package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/tdhoang/centavo/internal/errors"
)

// MockRateSource serves hardcoded exchange rates for tests and development.
type MockRateSource struct {
	rates map[string]decimal.Decimal
}

// NewMockRateSource creates a mock rate source with a fixed rate table.
func NewMockRateSource() *MockRateSource {
	return &MockRateSource{
		rates: map[string]decimal.Decimal{
			"EUR:USD": decimal.NewFromFloat(1.10),
			"GBP:USD": decimal.NewFromFloat(1.27),
			"USD:VND": decimal.NewFromInt(24000),
			"EUR:VND": decimal.NewFromInt(26400),
			"USD:EUR": decimal.NewFromFloat(0.91),
			"GBP:EUR": decimal.NewFromFloat(1.15),
		},
	}
}

// SetRate overrides or adds a rate for a pair.
func (s *MockRateSource) SetRate(from, to string, rate decimal.Decimal) {
	s.rates[strings.ToUpper(from)+":"+strings.ToUpper(to)] = rate
}

// GetRate retrieves the rate for a pair, trying the inverse pair before
// giving up.
func (s *MockRateSource) GetRate(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	if rate, ok := s.rates[from+":"+to]; ok {
		return rate, nil
	}
	if inverse, ok := s.rates[to+":"+from]; ok && !inverse.IsZero() {
		return decimal.NewFromInt(1).Div(inverse), nil
	}
	return decimal.Zero, &apperrors.ErrRateUnavailable{From: from, To: to, Date: date}
}
