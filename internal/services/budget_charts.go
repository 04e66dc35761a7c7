package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tdhoang/centavo/internal/models"
	"github.com/tdhoang/centavo/internal/periods"
	"github.com/tdhoang/centavo/internal/repositories"
)

type budgetChartService struct {
	chartBase
}

// NewBudgetChartService creates the budget report chart service.
func NewBudgetChartService(ops repositories.OperationsRepository, currencies repositories.CurrencyRepository, rates RateSource, labels Labels, logger *zap.Logger) BudgetChartService {
	return &budgetChartService{chartBase: newChartBase(ops, currencies, rates, labels, logger)}
}

// BudgetExpense groups the budget report's expenses by budget.
func (s *budgetChartService) BudgetExpense(ctx context.Context, accountIDs, budgetIDs []int, start, end time.Time) ([]*models.PieSlice, error) {
	groups, err := s.ops.ListExpenses(ctx, start, end, accountIDs, repositories.DimensionBudget, budgetIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return s.pie(ctx, groups, s.budgetTitle)
}

// CategoryExpense groups the budget report's expenses by category.
func (s *budgetChartService) CategoryExpense(ctx context.Context, accountIDs, budgetIDs []int, start, end time.Time) ([]*models.PieSlice, error) {
	groups, err := s.ops.ListExpenses(ctx, start, end, accountIDs, repositories.DimensionBudget, budgetIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return s.pie(ctx, groups, s.categoryTitle)
}

// SourceAccountExpense groups the budget report's expenses by source account.
func (s *budgetChartService) SourceAccountExpense(ctx context.Context, accountIDs, budgetIDs []int, start, end time.Time) ([]*models.PieSlice, error) {
	groups, err := s.ops.ListExpenses(ctx, start, end, accountIDs, repositories.DimensionBudget, budgetIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return s.pie(ctx, groups, s.sourceTitle)
}

// DestinationAccountExpense groups the budget report's expenses by destination
// account.
func (s *budgetChartService) DestinationAccountExpense(ctx context.Context, accountIDs, budgetIDs []int, start, end time.Time) ([]*models.PieSlice, error) {
	groups, err := s.ops.ListExpenses(ctx, start, end, accountIDs, repositories.DimensionBudget, budgetIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return s.pie(ctx, groups, s.destinationTitle)
}

// MainChart builds the spent-over-time bar series for a single budget.
func (s *budgetChartService) MainChart(ctx context.Context, accountIDs []int, budget *models.Budget, start, end time.Time) ([]*models.ChartSeries, error) {
	opts, err := s.options(ctx)
	if err != nil {
		return nil, err
	}
	builder, err := NewSeriesBuilder(start, end, periods.Preferred(start, end))
	if err != nil {
		return nil, err
	}
	groups, err := s.ops.ListExpenses(ctx, start, end, accountIDs, repositories.DimensionBudget, []int{budget.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	agg := s.aggregator.NewAggregation(opts)
	err = s.addSeries(ctx, builder, agg, opts, groups, func(currency models.Currency) string {
		return fmt.Sprintf(s.labels.SpentInBudget, budget.Name, currency.Name)
	})
	if err != nil {
		return nil, err
	}
	return builder.Series(), nil
}
