package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tdhoang/centavo/internal/models"
)

var (
	testUSD = models.Currency{ID: 1, Code: "USD", Symbol: "$", Name: "US Dollar", DecimalPlaces: 2}
	testEUR = models.Currency{ID: 2, Code: "EUR", Symbol: "€", Name: "Euro", DecimalPlaces: 2}
	testVND = models.Currency{ID: 3, Code: "VND", Symbol: "₫", Name: "Vietnamese Dong", DecimalPlaces: 0}
)

func testDate(day int) time.Time {
	return time.Date(2023, time.June, day, 0, 0, 0, 0, time.UTC)
}

func testJournal(id string, currency models.Currency, amount string, day int) *models.Journal {
	return &models.Journal{
		ID:       id,
		Date:     testDate(day),
		Amount:   decimal.RequireFromString(amount),
		Currency: currency,
	}
}

func flatGroup(currency models.Currency, journals ...*models.Journal) *models.CurrencyGroup {
	return &models.CurrencyGroup{Currency: currency, Journals: journals}
}

func dimensionGroup(currency models.Currency, items ...*models.DimensionGroup) *models.CurrencyGroup {
	return &models.CurrencyGroup{Currency: currency, Groups: items}
}

// countingRateSource wraps a rate source and counts lookups, so tests can
// assert on converter cache behavior.
type countingRateSource struct {
	inner RateSource
	calls int
}

func (s *countingRateSource) GetRate(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, error) {
	s.calls++
	return s.inner.GetRate(ctx, from, to, date)
}
