package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tdhoang/centavo/internal/models"
)

// Dimension selects the secondary grouping axis of an operations listing.
type Dimension int

const (
	DimensionNone Dimension = iota
	DimensionBudget
	DimensionCategory
	DimensionTag
)

// OperationsRepository lists journals for a date range and account set,
// pre-grouped by currency and optionally by a grouping dimension. Amounts come
// out signed: negative for money leaving the account set, positive for money
// entering it.
type OperationsRepository interface {
	// ListByType returns every journal of one transaction type in the range,
	// unscoped by account, for the transaction-overview charts.
	ListByType(ctx context.Context, start, end time.Time, transactionType string) ([]*models.CurrencyGroup, error)
	ListExpenses(ctx context.Context, start, end time.Time, accountIDs []int, dim Dimension, dimensionIDs []int) ([]*models.CurrencyGroup, error)
	ListIncome(ctx context.Context, start, end time.Time, accountIDs []int, dim Dimension, dimensionIDs []int) ([]*models.CurrencyGroup, error)
	ListTransferredIn(ctx context.Context, start, end time.Time, accountIDs []int, dim Dimension, dimensionIDs []int) ([]*models.CurrencyGroup, error)
	ListTransferredOut(ctx context.Context, start, end time.Time, accountIDs []int, dim Dimension, dimensionIDs []int) ([]*models.CurrencyGroup, error)
}

// CurrencyRepository serves currency reference data and the user's primary
// currency preferences.
type CurrencyRepository interface {
	List(ctx context.Context) ([]*models.Currency, error)
	GetByID(ctx context.Context, id int) (*models.Currency, error)
	GetByCode(ctx context.Context, code string) (*models.Currency, error)
	GetPrimaryCurrency(ctx context.Context) (*models.Currency, error)
	ConvertToPrimary(ctx context.Context) (bool, error)
}

// RateRepository resolves the exchange rate effective on or before a date.
// A missing rate surfaces as ErrRateUnavailable.
type RateRepository interface {
	GetRate(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, error)
	StoreRate(ctx context.Context, rate *models.FXRate) error
}
