package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tdhoang/centavo/internal/models"
)

// Converter converts amounts between currencies using the rate effective on
// or before a date. Lookups are cached for the lifetime of one converter, so
// one report run never asks the rate source twice for the same pair and date.
// Not safe for concurrent use; create one per aggregation run.
type Converter struct {
	source RateSource
	rates  map[string]decimal.Decimal
}

// NewConverter creates a converter around a rate source.
func NewConverter(source RateSource) *Converter {
	return &Converter{
		source: source,
		rates:  make(map[string]decimal.Decimal),
	}
}

// Convert converts amount from one currency into another at the rate
// effective on the given date, rounded half-up to the target currency's
// decimal places. Converting a currency into itself returns the amount
// unchanged without a lookup.
func (c *Converter) Convert(ctx context.Context, from, to models.Currency, date time.Time, amount decimal.Decimal) (decimal.Decimal, error) {
	if from.Code == to.Code {
		return amount, nil
	}

	rate, err := c.rate(ctx, from.Code, to.Code, date)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate).Round(to.DecimalPlaces), nil
}

func (c *Converter) rate(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, error) {
	key := from + ":" + to + ":" + date.Format("2006-01-02")
	if rate, ok := c.rates[key]; ok {
		return rate, nil
	}

	rate, err := c.source.GetRate(ctx, from, to, date)
	if err != nil {
		return decimal.Zero, err
	}
	c.rates[key] = rate
	return rate, nil
}
