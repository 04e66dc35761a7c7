package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tdhoang/centavo/internal/models"
)

// RateSource provides the exchange rate for a currency pair effective on or
// before a date. The database-backed implementation lives in the repositories
// package; a mock source is available for tests and development.
type RateSource interface {
	GetRate(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, error)
}

// Labels carries the externally supplied display strings the reporting core
// treats as opaque: placeholders for missing classifications and the format
// strings for time-series data set labels.
type Labels struct {
	NoBudget   string
	NoCategory string
	Empty      string

	// Format strings taking the entity name and the currency name.
	SpentInBudget    string
	SpentInCategory  string
	EarnedInCategory string
	SpentInTag       string
	EarnedInTag      string
}

// DefaultLabels returns the English defaults used when no translation layer
// is wired in.
func DefaultLabels() Labels {
	return Labels{
		NoBudget:         "(no budget)",
		NoCategory:       "(no category)",
		Empty:            "(empty)",
		SpentInBudget:    "Spent in budget %s (%s)",
		SpentInCategory:  "Spent in category %s (%s)",
		EarnedInCategory: "Earned in category %s (%s)",
		SpentInTag:       "Spent in tag %s (%s)",
		EarnedInTag:      "Earned in tag %s (%s)",
	}
}

// BudgetChartService builds the budget report charts.
type BudgetChartService interface {
	BudgetExpense(ctx context.Context, accountIDs, budgetIDs []int, start, end time.Time) ([]*models.PieSlice, error)
	CategoryExpense(ctx context.Context, accountIDs, budgetIDs []int, start, end time.Time) ([]*models.PieSlice, error)
	SourceAccountExpense(ctx context.Context, accountIDs, budgetIDs []int, start, end time.Time) ([]*models.PieSlice, error)
	DestinationAccountExpense(ctx context.Context, accountIDs, budgetIDs []int, start, end time.Time) ([]*models.PieSlice, error)
	MainChart(ctx context.Context, accountIDs []int, budget *models.Budget, start, end time.Time) ([]*models.ChartSeries, error)
}

// CategoryChartService builds the category report charts.
type CategoryChartService interface {
	CategoryExpense(ctx context.Context, accountIDs, categoryIDs []int, start, end time.Time) ([]*models.PieSlice, error)
	CategoryIncome(ctx context.Context, accountIDs, categoryIDs []int, start, end time.Time) ([]*models.PieSlice, error)
	BudgetExpense(ctx context.Context, accountIDs, categoryIDs []int, start, end time.Time) ([]*models.PieSlice, error)
	SourceExpense(ctx context.Context, accountIDs, categoryIDs []int, start, end time.Time) ([]*models.PieSlice, error)
	SourceIncome(ctx context.Context, accountIDs, categoryIDs []int, start, end time.Time) ([]*models.PieSlice, error)
	DestinationExpense(ctx context.Context, accountIDs, categoryIDs []int, start, end time.Time) ([]*models.PieSlice, error)
	DestinationIncome(ctx context.Context, accountIDs, categoryIDs []int, start, end time.Time) ([]*models.PieSlice, error)
	MainChart(ctx context.Context, accountIDs []int, category *models.Category, start, end time.Time) ([]*models.ChartSeries, error)
}

// TransactionChartService builds the transaction overview pie charts. They
// cover every journal of one transaction type in the range, unscoped by
// account, unlike the report charts above.
type TransactionChartService interface {
	Budgets(ctx context.Context, start, end time.Time) ([]*models.PieSlice, error)
	Categories(ctx context.Context, transactionType string, start, end time.Time) ([]*models.PieSlice, error)
	SourceAccounts(ctx context.Context, transactionType string, start, end time.Time) ([]*models.PieSlice, error)
	DestinationAccounts(ctx context.Context, transactionType string, start, end time.Time) ([]*models.PieSlice, error)
}

// TagChartService builds the tag report charts.
type TagChartService interface {
	TagExpense(ctx context.Context, accountIDs, tagIDs []int, start, end time.Time) ([]*models.PieSlice, error)
	TagIncome(ctx context.Context, accountIDs, tagIDs []int, start, end time.Time) ([]*models.PieSlice, error)
	BudgetExpense(ctx context.Context, accountIDs, tagIDs []int, start, end time.Time) ([]*models.PieSlice, error)
	CategoryExpense(ctx context.Context, accountIDs, tagIDs []int, start, end time.Time) ([]*models.PieSlice, error)
	CategoryIncome(ctx context.Context, accountIDs, tagIDs []int, start, end time.Time) ([]*models.PieSlice, error)
	SourceExpense(ctx context.Context, accountIDs, tagIDs []int, start, end time.Time) ([]*models.PieSlice, error)
	SourceIncome(ctx context.Context, accountIDs, tagIDs []int, start, end time.Time) ([]*models.PieSlice, error)
	DestinationExpense(ctx context.Context, accountIDs, tagIDs []int, start, end time.Time) ([]*models.PieSlice, error)
	DestinationIncome(ctx context.Context, accountIDs, tagIDs []int, start, end time.Time) ([]*models.PieSlice, error)
	MainChart(ctx context.Context, accountIDs []int, tag *models.Tag, start, end time.Time) ([]*models.ChartSeries, error)
}
